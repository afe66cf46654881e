package converter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/tristendillon/swan2flowdroid/core/flowdroid"
	"github.com/tristendillon/swan2flowdroid/core/logger"
	"github.com/tristendillon/swan2flowdroid/core/models"
	"github.com/tristendillon/swan2flowdroid/core/swan"
)

// Result is the outcome for one entry of the methods array. Exactly one of
// Line, Skipped or Err is meaningful.
type Result struct {
	Index   int
	Srm     *models.Srm
	Line    string
	Skipped bool
	Err     error
}

type Stats struct {
	Total   int
	Written int
	Skipped int
	Failed  int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d methods: %d written, %d skipped, %d failed", s.Total, s.Written, s.Skipped, s.Failed)
}

// Results decodes, filters and formats methods lazily, in input order.
// Records that are neither source nor sink are reported as skipped and never
// reach the formatter.
func Results(methods []json.RawMessage) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for i, raw := range methods {
			if !yield(convertOne(i, raw)) {
				return
			}
		}
	}
}

func convertOne(index int, raw json.RawMessage) Result {
	srm, err := swan.DecodeRecord(index, raw)
	if err != nil {
		return Result{Index: index, Err: err}
	}
	if !(srm.IsSource() || srm.IsSink()) {
		return Result{Index: index, Srm: srm, Skipped: true}
	}

	line, err := flowdroid.Format(srm)
	if err != nil {
		return Result{Index: index, Srm: srm, Err: fmt.Errorf("method #%d (%s): %w", index, srm, err)}
	}
	return Result{Index: index, Srm: srm, Line: line}
}

// Convert writes one line per source or sink to w. Record level failures,
// including failed writes, are logged and counted but never stop the run.
func Convert(methods []json.RawMessage, w io.Writer) Stats {
	var stats Stats
	for res := range Results(methods) {
		stats.Total++
		switch {
		case res.Err != nil:
			stats.Failed++
			logger.Error("Skipping %v", res.Err)
		case res.Skipped:
			stats.Skipped++
			logger.Debug("Skipping method #%d, neither source nor sink: %s", res.Index, res.Srm)
		default:
			if _, err := io.WriteString(w, res.Line+"\n"); err != nil {
				stats.Failed++
				logger.Error("Failed to write method #%d: %v", res.Index, err)
				continue
			}
			stats.Written++
			logger.Debug("Converted method #%d: %s", res.Index, res.Line)
		}
	}
	return stats
}

// ConvertFile converts the SWAN file at input into a FlowDroid file at output.
// Errors returned here are fatal; per-record problems only show up in Stats.
func ConvertFile(input, output string) (stats Stats, err error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return stats, fmt.Errorf("error reading SWAN file %s: %w", input, err)
	}
	methods, err := swan.DecodeDocument(data)
	if err != nil {
		return stats, fmt.Errorf("error reading SWAN file %s: %w", input, err)
	}

	f, err := os.Create(output)
	if err != nil {
		return stats, fmt.Errorf("error opening output file %s: %w", output, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file %s: %w", output, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	stats = Convert(methods, w)
	if ferr := w.Flush(); ferr != nil {
		return stats, fmt.Errorf("error writing to output file %s: %w", output, ferr)
	}
	return stats, nil
}

// DefaultOutputPath keeps everything before the first dot of input and
// appends suffix, e.g. "swan-srm.json" -> "swan-srm.flowdroid.txt".
func DefaultOutputPath(input, suffix string) string {
	base, _, _ := strings.Cut(input, ".")
	return base + suffix
}

var ErrSameFile = errors.New("output path is the same as input path")

// ResolveOutput picks the output path and refuses to overwrite the input.
func ResolveOutput(input, output, suffix string) (string, error) {
	if output == "" {
		output = DefaultOutputPath(input, suffix)
	}
	if sameFile(input, output) {
		return "", fmt.Errorf("%w: %s", ErrSameFile, output)
	}
	return output, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
