package html2pdf

import (
	"errors"
	"time"
)

// Failure classifies why a conversion did not produce a PDF.
type Failure int

// Failure kinds.
const (
	FailureNone      Failure = iota
	FailureNotFound          // source missing
	FailureDecode            // not text, or undecodable
	FailureDirectory         // destination directory could not be created
	FailureRender            // engine error, timeout, cancellation, panic
	FailureWrite             // PDF bytes could not be written
)

var failureNames = [...]string{
	FailureNone:      "none",
	FailureNotFound:  "not_found",
	FailureDecode:    "decode",
	FailureDirectory: "directory",
	FailureRender:    "render",
	FailureWrite:     "write",
}

func (f Failure) String() string {
	if f < 0 || int(f) >= len(failureNames) {
		return "unknown"
	}
	return failureNames[f]
}

// classify maps an error to its Failure kind.
func classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrSourceNotFound):
		return FailureNotFound
	case errors.Is(err, ErrDecode):
		return FailureDecode
	case errors.Is(err, ErrCreateOutputDir):
		return FailureDirectory
	case errors.Is(err, ErrWritePDF):
		return FailureWrite
	default:
		return FailureRender
	}
}

// Result is the outcome of converting one file. Every conversion attempt
// yields exactly one Result, successful or not.
type Result struct {
	Source      string
	Destination string
	Duration    time.Duration
	Err         error
	Failure     Failure
}

// OK reports whether the PDF was written.
func (r Result) OK() bool {
	return r.Err == nil && r.Failure == FailureNone
}

// Progress is reported after each completed task of a batch.
type Progress struct {
	Completed int
	Total     int
	Result    Result // the task that just finished
}

// Percent returns completion in [0, 100]. An empty batch is complete.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 100
	}
	return float64(p.Completed) * 100 / float64(p.Total)
}

// BatchReport summarizes a ConvertAll run.
type BatchReport struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []Result // sorted by Source
	Duration  time.Duration
}

// Failures returns the unsuccessful results.
func (r *BatchReport) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}
