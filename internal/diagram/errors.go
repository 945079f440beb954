package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for construction defects. A *ValidationError wraps one or
// more of these, so callers classify with errors.Is.
var (
	ErrEmptyID        = errors.New("diagram: empty id")
	ErrDuplicateNode  = errors.New("diagram: duplicate node id")
	ErrDuplicateEdge  = errors.New("diagram: duplicate edge id")
	ErrDanglingEdge   = errors.New("diagram: edge references unknown node")
	ErrUnknownFlow    = errors.New("diagram: unknown flow")
	ErrDuplicateFlow  = errors.New("diagram: duplicate flow declaration")
	ErrReservedFlow   = errors.New("diagram: reserved flow id")
	ErrDuplicateStore = errors.New("diagram: duplicate diagram id")
	ErrNotFound       = errors.New("diagram: not found")
)

// ValidationError collects every defect found while building one diagram.
type ValidationError struct {
	// Diagram is the id of the offending diagram (may be empty)
	Diagram  string
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	name := e.Diagram
	if name == "" {
		name = "<unnamed>"
	}
	fmt.Fprintf(&b, "diagram %q is invalid (%d problem", name, len(e.Problems))
	if len(e.Problems) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// problems accumulates defects in authoring order.
type problems []error

func (p *problems) add(sentinel error, format string, args ...any) {
	*p = append(*p, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}
