package html2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// BatchOptions configures ConvertAll.
type BatchOptions struct {
	InputDir   string
	OutputDir  string // defaults to InputDir
	Recursive  bool
	OnProgress func(Progress) // called after each completed task, serialized
}

// ConvertAll converts every HTML file under opts.InputDir using converters
// from pool. Individual failures are reported in the BatchReport and never
// abort sibling tasks. The returned error is non-nil only when the batch
// could not start (missing input, unwritable output).
func ConvertAll(ctx context.Context, pool Pool, opts BatchOptions) (*BatchReport, error) {
	start := time.Now()

	tasks, err := DiscoverTasks(opts.InputDir, opts.OutputDir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	// The output root exists even when there is nothing to convert.
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = opts.InputDir
	}
	if err := os.MkdirAll(outputDir, fileutil.DirPerm); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCreateOutputDir, outputDir, err)
	}

	report := &BatchReport{Total: len(tasks)}
	if len(tasks) == 0 {
		Logger().Info("no HTML files found", "dir", opts.InputDir)
		report.Duration = time.Since(start)
		return report, nil
	}

	if err := createOutputDirs(tasks); err != nil {
		return nil, err
	}

	Logger().Info("batch started", "files", len(tasks), "workers", pool.Size())

	var (
		mu        sync.Mutex
		completed int
		results   = make([]Result, 0, len(tasks))
	)
	record := func(res Result) {
		mu.Lock()
		defer mu.Unlock()

		completed++
		results = append(results, res)
		p := Progress{Completed: completed, Total: len(tasks), Result: res}
		Logger().Info("progress",
			"completed", p.Completed,
			"total", p.Total,
			"percent", fmt.Sprintf("%.1f", p.Percent()))
		if opts.OnProgress != nil {
			opts.OnProgress(p)
		}
	}

	var g errgroup.Group
	g.SetLimit(pool.Size())
	for _, task := range tasks {
		g.Go(func() error {
			record(runTask(ctx, pool, task))
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors; failures live in Results

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })
	for _, res := range results {
		if res.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	report.Results = results
	report.Duration = time.Since(start)

	Logger().Info("batch finished",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"seconds", report.Duration.Seconds())
	return report, nil
}

// runTask converts one task, turning cancellation and pool errors into a
// failed Result.
func runTask(ctx context.Context, pool Pool, task Task) Result {
	if err := ctx.Err(); err != nil {
		return Result{
			Source:      task.Source,
			Destination: task.Destination,
			Err:         err,
			Failure:     FailureRender,
		}
	}

	conv, err := pool.Acquire()
	if err != nil {
		return Result{
			Source:      task.Source,
			Destination: task.Destination,
			Err:         fmt.Errorf("%w: %v", ErrBrowserConnect, err),
			Failure:     FailureRender,
		}
	}
	defer pool.Release(conv)

	return conv.ConvertFile(ctx, task.Source, task.Destination)
}

// createOutputDirs creates every destination directory up front.
func createOutputDirs(tasks []Task) error {
	done := make(map[string]bool)
	for _, t := range tasks {
		dir := filepath.Dir(t.Destination)
		if done[dir] {
			continue
		}
		if err := os.MkdirAll(dir, fileutil.DirPerm); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCreateOutputDir, dir, err)
		}
		done[dir] = true
	}
	return nil
}
