package inventory

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes reported by the loader. They share the numbering used by the
// CLI so a LoadError code can be surfaced unchanged.
const (
	ErrCodeLoadFailed  = "E004" // CUE or YAML could not be read
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeUnsupported = "E201" // Unknown file extension
	ErrCodeInvalidItem = "E202" // Item or container field invalid
	ErrCodeDuplicateID = "E203" // Container id used twice
)

// LoadError represents an error that occurred while loading an inventory.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
