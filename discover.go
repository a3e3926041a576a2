package html2pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Task is one source file and the PDF it produces.
type Task struct {
	Source      string
	Destination string
}

// IsHTMLFile reports whether path has a .html or .htm extension, in any case.
func IsHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// DiscoverTasks lists the HTML files under inputDir and maps each to a PDF
// under outputDir (inputDir when empty). Flat mode reads only the top level;
// recursive mode walks the tree and mirrors subdirectories. Tasks are
// sorted by source path.
func DiscoverTasks(inputDir, outputDir string, recursive bool) ([]Task, error) {
	if !fileutil.DirExists(inputDir) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputDir)
	}
	if outputDir == "" {
		outputDir = inputDir
	}

	var rels []string
	if recursive {
		err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !IsHTMLFile(path) {
				return nil
			}
			rel, err := filepath.Rel(inputDir, path)
			if err != nil {
				return err
			}
			rels = append(rels, rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputDir)
			}
			return nil, fmt.Errorf("scanning %s: %w", inputDir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !IsHTMLFile(e.Name()) {
				continue
			}
			rels = append(rels, e.Name())
		}
	}

	sort.Strings(rels)

	tasks := make([]Task, 0, len(rels))
	seen := make(map[string]bool, len(rels))
	for _, rel := range rels {
		out := fileutil.PDFPath(rel)
		// a.html and a.htm would both target a.pdf; the later keeps its extension
		key := strings.ToLower(out)
		if seen[key] {
			out = rel + ".pdf"
			key = strings.ToLower(out)
		}
		seen[key] = true

		tasks = append(tasks, Task{
			Source:      filepath.Join(inputDir, rel),
			Destination: filepath.Join(outputDir, out),
		})
	}
	return tasks, nil
}
