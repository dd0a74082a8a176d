package operations

// OperationType represents the fundamental filesystem operations bento
// performs during staging. Everything else is orchestration.
type OperationType int

const (
	// CopyFile copies a single file, creating the destination directory.
	CopyFile OperationType = iota

	// CopyTree copies a directory recursively.
	CopyTree

	// MoveDir moves a directory, replacing the target when it exists.
	MoveDir

	// RemoveTree removes a directory tree (best effort, reported).
	RemoveTree

	// WriteFile writes generated content to a file.
	WriteFile
)

// Operation represents a single atomic unit of staging work.
type Operation struct {
	Type   OperationType
	Source string
	Target string

	// Label is the name used in status lines ("settings.json").
	Label string

	// Content is the payload for WriteFile operations.
	Content []byte

	// Optional operations are skipped with a notice, never failed, when
	// their source or the target's parent directory is absent.
	Optional bool
}

// Status classifies the outcome of one operation.
type Status int

const (
	StatusDone Status = iota
	StatusSkipped
	StatusFailed
)

// String returns the status tag used in console output.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "OK"
	case StatusSkipped:
		return "SKIP"
	case StatusFailed:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// OperationResult captures the outcome of executing an operation.
// Used for status reporting and dry-run output.
type OperationResult struct {
	Operation Operation
	Status    Status
	Message   string
	Error     error
}

func operationTypeName(t OperationType) string {
	switch t {
	case CopyFile:
		return "copy-file"
	case CopyTree:
		return "copy-tree"
	case MoveDir:
		return "move-dir"
	case RemoveTree:
		return "remove-tree"
	case WriteFile:
		return "write-file"
	default:
		return "unknown"
	}
}
