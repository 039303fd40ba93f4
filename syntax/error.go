package syntax

import (
	"fmt"
	"testing"
)

type Error struct {
	Message   string
	Reason    string
	Committed string
	Span      Span
}

func (e *Error) String() string {
	s := ""

	if testing.Testing() {
		s = fmt.Sprintf("%v: %s", e.Span, e.Message)
	} else {
		s = e.Message
	}

	if e.Committed != "" {
		s += fmt.Sprintf(" %s", e.Committed)
	}

	return s
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%v: %s", e.Span, e.Message)

	if e.Committed != "" {
		s += fmt.Sprintf(" %s", e.Committed)
	}

	if e.Reason != "" {
		s += fmt.Sprintf(" (%s)", e.Reason)
	}

	return s
}
