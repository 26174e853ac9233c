package scraper

import (
	"errors"
	"fmt"
)

var ErrStructuralNotFound = errors.New("structural element not found")

var (
	ErrHeadingNotFound         = fmt.Errorf("%w: war status heading", ErrStructuralNotFound)
	ErrStatusParagraphNotFound = fmt.Errorf("%w: war status text", ErrStructuralNotFound)
	ErrTableNotFound           = fmt.Errorf("%w: warlords table", ErrStructuralNotFound)
	ErrInvalidSideCount        = errors.New("invalid side of war count")
	ErrInvalidHeaderCount      = errors.New("invalid header count")
)

// ExtractionError reports a structural mismatch in the status page. Kind is
// one of the Err* values above and can be matched with errors.Is.
type ExtractionError struct {
	Kind   error
	Detail string
}

func (e *ExtractionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("extract failed: %v", e.Kind)
	}
	return fmt.Sprintf("extract failed: %v: %s", e.Kind, e.Detail)
}

func (e *ExtractionError) Unwrap() error {
	return e.Kind
}
