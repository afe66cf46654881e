// Package swan reads the SWAN JSON export: a top-level object whose
// "methods" array holds one object per security-relevant method.
package swan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tristendillon/swan2flowdroid/core/models"
)

var (
	ErrNoMethods = errors.New(`missing "methods" array`)
	ErrNotObject = errors.New("method entry is not a JSON object")
)

const maxRawLen = 120

// DecodeError reports a single methods entry that could not be decoded.
type DecodeError struct {
	Index int
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("method #%d: %v: %s", e.Index, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeDocument returns the raw entries of the "methods" array. Entries are
// left undecoded so a bad one can be skipped without losing the rest.
func DecodeDocument(data []byte) ([]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse SWAN document: %w", err)
	}

	var methods []json.RawMessage
	if raw, ok := doc["methods"]; ok {
		if err := json.Unmarshal(raw, &methods); err != nil {
			return nil, fmt.Errorf("failed to parse SWAN document: methods: %w", err)
		}
	}
	if methods == nil {
		return nil, ErrNoMethods
	}
	return methods, nil
}

func DecodeRecord(index int, raw json.RawMessage) (*models.Srm, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, newDecodeError(index, trimmed, ErrNotObject)
	}

	// encoding/json matches struct tags case-insensitively; SWAN keys are
	// exact, so "Name" or "SRM" must be ignored like any other unknown key.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, newDecodeError(index, trimmed, err)
	}

	var srm models.Srm
	for _, f := range []struct {
		key string
		dst any
	}{
		{"name", &srm.Name},
		{"srm", &srm.Classes},
		{"parameters", &srm.Parameters},
		{"return", &srm.ReturnType},
	} {
		value, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return nil, newDecodeError(index, trimmed, fmt.Errorf("field %q: %w", f.key, err))
		}
	}
	return &srm, nil
}

func newDecodeError(index int, raw []byte, err error) *DecodeError {
	s := string(raw)
	if len(s) > maxRawLen {
		cut := maxRawLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return &DecodeError{Index: index, Raw: s, Err: err}
}
