// Package appmeta generates application metadata for the bundled
// executable. Currently this is the Windows side-by-side manifest that
// sits next to the exe and declares DPI awareness and the themed common
// controls dependency.
package appmeta

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/bento-build/bento/pkg/errors"
)

const (
	nsAsmV1             = "urn:schemas-microsoft-com:asm.v1"
	nsAsmV3             = "urn:schemas-microsoft-com:asm.v3"
	nsWindowsSettings   = "http://schemas.microsoft.com/SMI/2005/WindowsSettings"
	commonControlsName  = "Microsoft.Windows.Common-Controls"
	commonControlsToken = "6595b64144ccf1df"
)

// Manifest renders the side-by-side manifest XML for an application.
// The version is normalized to the four-component form Windows expects.
func Manifest(appName, version string) ([]byte, error) {
	if appName == "" {
		return nil, errors.New(errors.ErrInvalidInput, "app name must not be empty")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	assembly := doc.CreateElement("assembly")
	assembly.CreateAttr("xmlns", nsAsmV1)
	assembly.CreateAttr("manifestVersion", "1.0")

	identity := assembly.CreateElement("assemblyIdentity")
	identity.CreateAttr("type", "win32")
	identity.CreateAttr("name", assemblyName(appName))
	identity.CreateAttr("version", NormalizeVersion(version))
	identity.CreateAttr("processorArchitecture", "*")

	dependency := assembly.CreateElement("dependency")
	dependent := dependency.CreateElement("dependentAssembly")
	controls := dependent.CreateElement("assemblyIdentity")
	controls.CreateAttr("type", "win32")
	controls.CreateAttr("name", commonControlsName)
	controls.CreateAttr("version", "6.0.0.0")
	controls.CreateAttr("publicKeyToken", commonControlsToken)
	controls.CreateAttr("language", "*")
	controls.CreateAttr("processorArchitecture", "*")

	application := assembly.CreateElement("application")
	application.CreateAttr("xmlns", nsAsmV3)
	settings := application.CreateElement("windowsSettings")
	dpiAware := settings.CreateElement("dpiAware")
	dpiAware.CreateAttr("xmlns", nsWindowsSettings)
	dpiAware.SetText("true")

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to serialize application manifest")
	}
	return out, nil
}

// FileName returns the manifest file name for an executable name.
func FileName(exeName string) string {
	return exeName + ".manifest"
}

// NormalizeVersion pads or trims a dotted version to exactly four numeric
// components. Non-numeric components collapse to zero.
func NormalizeVersion(version string) string {
	parts := strings.Split(version, ".")
	out := make([]string, 4)
	for i := 0; i < 4; i++ {
		out[i] = "0"
		if i < len(parts) {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[i])); err == nil && n >= 0 {
				out[i] = strconv.Itoa(n)
			}
		}
	}
	return strings.Join(out, ".")
}

// assemblyName converts an app name to a dotted assembly identity name.
func assemblyName(appName string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '.'
		}
	}, appName)
	for strings.Contains(cleaned, "..") {
		cleaned = strings.ReplaceAll(cleaned, "..", ".")
	}
	return strings.Trim(cleaned, ".")
}
