package style

import (
	"fmt"
	"strings"

	"github.com/bento-build/bento/pkg/bundler"
	"github.com/bento-build/bento/pkg/manifest"
	"github.com/bento-build/bento/pkg/operations"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderResolution(res *manifest.Resolution) string
	RenderResults(results []operations.OperationResult) string
	RenderInvocation(inv bundler.Invocation) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer. In plain mode it prints the
// bracket-tag status lines the original build scripts used; in terminal
// mode it adds color and indicators.
type TerminalRenderer struct {
	plain bool
}

// NewTerminalRenderer creates a renderer for the given output format.
func NewTerminalRenderer(format Format) *TerminalRenderer {
	return &TerminalRenderer{plain: format == FormatText}
}

// RenderResolution renders the found/missing report for a resolution.
func (r *TerminalRenderer) RenderResolution(res *manifest.Resolution) string {
	var b strings.Builder

	b.WriteString(r.title("Bundle contents") + "\n")

	if len(res.Included) == 0 && len(res.Missing) == 0 {
		b.WriteString(r.muted("No data entries in manifest") + "\n")
	}

	for _, entry := range res.Included {
		if r.plain {
			fmt.Fprintf(&b, "[FOUND] %s -> %s\n", entry.Source, entry.Dest)
		} else {
			fmt.Fprintf(&b, "%s %s %s %s\n",
				SuccessIndicator,
				PathStyle.Render(entry.Source),
				MutedStyle.Render("->"),
				entry.Dest)
		}
	}
	for _, entry := range res.Missing {
		if r.plain {
			fmt.Fprintf(&b, "[MISSING] %s\n", entry.Source)
		} else {
			fmt.Fprintf(&b, "%s %s %s\n",
				WarningIndicator,
				PathStyle.Render(entry.Source),
				MutedStyle.Render("(not found, dropped)"))
		}
	}

	if len(res.HiddenImports) > 0 {
		b.WriteString(r.title("Hidden imports") + "\n")
		b.WriteString(r.list(res.HiddenImports))
	}
	if len(res.Excludes) > 0 {
		b.WriteString(r.title("Excluded modules") + "\n")
		b.WriteString(r.list(res.Excludes))
	}

	summary := fmt.Sprintf("%d included, %d missing", len(res.Included), len(res.Missing))
	if r.plain {
		fmt.Fprintf(&b, "%s\n", summary)
	} else {
		b.WriteString(MutedStyle.Render(summary) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderResults renders executed operation results, one status line each.
func (r *TerminalRenderer) RenderResults(results []operations.OperationResult) string {
	if len(results) == 0 {
		return r.muted("No operations to perform")
	}

	var b strings.Builder
	for _, result := range results {
		message := result.Message
		if message == "" && result.Error != nil {
			message = result.Error.Error()
		}
		if r.plain {
			fmt.Fprintf(&b, "[%s] %s\n", result.Status, message)
			continue
		}
		switch result.Status {
		case operations.StatusDone:
			fmt.Fprintf(&b, "%s %s\n", SuccessIndicator, message)
		case operations.StatusSkipped:
			fmt.Fprintf(&b, "%s %s\n", MutedStyle.Render("-"), MutedStyle.Render(message))
		default:
			fmt.Fprintf(&b, "%s %s\n", ErrorIndicator, ErrorStyle.Render(message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderInvocation renders the external tool command line, one argument
// pair per line so long --add-data lists stay readable.
func (r *TerminalRenderer) RenderInvocation(inv bundler.Invocation) string {
	var b strings.Builder
	if r.plain {
		fmt.Fprintf(&b, "%s %s", inv.Tool, strings.Join(inv.Args, " "))
		return b.String()
	}

	b.WriteString(r.title("Bundler invocation") + "\n")
	fmt.Fprintf(&b, "%s %s\n", pterm.Info.Prefix.Text, Bold(inv.Tool))
	for _, arg := range inv.Args {
		if strings.HasPrefix(arg, "--") {
			b.WriteString("\n" + Indent(InfoStyle.Render(arg), 1))
		} else {
			b.WriteString(" " + arg)
		}
	}
	return b.String()
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if r.plain {
		return fmt.Sprintf("[ERROR] %v", err)
	}
	return fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render(err.Error()))
}

func (r *TerminalRenderer) title(s string) string {
	if r.plain {
		return strings.ToUpper(s)
	}
	return TitleStyle.Render(s)
}

func (r *TerminalRenderer) muted(s string) string {
	if r.plain {
		return s
	}
	return MutedStyle.Render(s)
}

func (r *TerminalRenderer) list(items []string) string {
	var b strings.Builder
	for _, item := range items {
		if r.plain {
			fmt.Fprintf(&b, "  - %s\n", item)
		} else {
			fmt.Fprintf(&b, "%s\n", Indent(InfoIndicator+" "+item, 1))
		}
	}
	return b.String()
}
