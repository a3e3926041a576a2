package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	html2pdf "github.com/alnah/go-html2pdf"
)

// progressReporter prints batch progress. Calls are serialized by
// ConvertAll, so it needs no locking.
type progressReporter struct {
	out   io.Writer
	quiet bool
	bar   *progressbar.ProgressBar
}

// newProgressReporter returns a reporter for total files. With useBar the
// progress lines are replaced by a progress bar drawn on errOut; per-file
// timing still goes to out.
func newProgressReporter(out, errOut io.Writer, total int, quiet, useBar bool) *progressReporter {
	r := &progressReporter{out: out, quiet: quiet}
	if useBar && !quiet {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(errOut),
			progressbar.OptionSetDescription("Converting files"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(errOut)
			}),
		)
	}
	return r
}

// report handles one completed task.
func (r *progressReporter) report(p html2pdf.Progress) {
	if r.quiet {
		return
	}
	if p.Result.OK() {
		fmt.Fprintf(r.out, "Converted %s to %s in %.2f seconds\n",
			p.Result.Source, p.Result.Destination, p.Result.Duration.Seconds())
	}
	if r.bar != nil {
		_ = r.bar.Add(1)
		return
	}
	fmt.Fprintf(r.out, "Progress: %d/%d files (%.1f%%)\n", p.Completed, p.Total, p.Percent())
}

// finish completes the bar, if any.
func (r *progressReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
