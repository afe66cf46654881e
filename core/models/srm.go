package models

import (
	"fmt"
	"slices"
	"strings"
)

// SWAN classification tags
const (
	ClassSource = "source"
	ClassSink   = "sink"
)

type Kind int

const (
	KindNone Kind = iota
	KindSource
	KindSink
	KindBoth
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	case KindBoth:
		return "both"
	default:
		return "none"
	}
}

// Srm is a single Security-Relevant Method as read from a SWAN file.
// Nil pointers and nil slices mean the key was absent from the input. The
// SWAN keys are "name", "srm", "parameters" and "return".
type Srm struct {
	Name       *string
	Classes    []string
	Parameters []string
	ReturnType *string
}

func (s *Srm) IsSource() bool {
	return slices.Contains(s.Classes, ClassSource)
}

func (s *Srm) IsSink() bool {
	return slices.Contains(s.Classes, ClassSink)
}

func (s *Srm) Kind() Kind {
	source, sink := s.IsSource(), s.IsSink()
	switch {
	case source && sink:
		return KindBoth
	case source:
		return KindSource
	case sink:
		return KindSink
	default:
		return KindNone
	}
}

// String renders the record for humans; it is not the FlowDroid format.
func (s *Srm) String() string {
	return fmt.Sprintf("%s %s %s %s",
		orNull(s.Name),
		list(s.Classes),
		list(s.Parameters),
		orNull(s.ReturnType),
	)
}

func orNull(v *string) string {
	if v == nil {
		return "null"
	}
	return *v
}

func list(v []string) string {
	if v == nil {
		return "null"
	}
	return "[" + strings.Join(v, ", ") + "]"
}
