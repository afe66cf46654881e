// Package flowdroid renders SRMs in FlowDroid's SourcesAndSinks.txt format:
//
//	<com.example.Foo: boolean bar(java.lang.String)> -> _SOURCE_
package flowdroid

import (
	"errors"
	"strings"

	"github.com/tristendillon/swan2flowdroid/core/models"
)

const (
	SuffixSource = "_SOURCE_"
	SuffixSink   = "_SINK_"
	SuffixBoth   = "_BOTH_"

	Unknown     = "unknown"
	Void        = "void"
	Constructor = "<init>"
)

var (
	ErrMissingParameters = errors.New("parameters are missing")
	ErrUnclassified      = errors.New("method is neither a source nor a sink")
)

// Format returns the FlowDroid line for s, without a trailing newline.
func Format(s *models.Srm) (string, error) {
	suffix, err := Suffix(s.Kind())
	if err != nil {
		return "", err
	}
	if s.Parameters == nil {
		return "", ErrMissingParameters
	}

	pkg, method := SplitName(s.Name)

	returnType := Void
	if s.ReturnType != nil {
		returnType = *s.ReturnType
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(pkg)
	b.WriteString(": ")
	b.WriteString(returnType)
	b.WriteString(" ")
	b.WriteString(method)
	b.WriteString("(")
	b.WriteString(strings.Join(s.Parameters, ","))
	b.WriteString(")> -> ")
	b.WriteString(suffix)
	return b.String(), nil
}

func Suffix(kind models.Kind) (string, error) {
	switch kind {
	case models.KindBoth:
		return SuffixBoth, nil
	case models.KindSource:
		return SuffixSource, nil
	case models.KindSink:
		return SuffixSink, nil
	default:
		return "", ErrUnclassified
	}
}

// SplitName splits a fully-qualified method name on its last dot. The part
// before it is the declaring class as FlowDroid expects it; a method named
// after the last segment of that class is a constructor.
func SplitName(name *string) (pkg, method string) {
	if name == nil {
		return Unknown, Unknown
	}

	i := strings.LastIndex(*name, ".")
	if i == -1 {
		return Unknown, *name
	}

	pkg, method = (*name)[:i], (*name)[i+1:]
	class := pkg[strings.LastIndex(pkg, ".")+1:]
	if method != "" && method == class {
		method = Constructor
	}
	return pkg, method
}
