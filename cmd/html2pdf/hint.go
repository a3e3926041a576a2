package main

import (
	"context"
	"errors"
	"fmt"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, html2pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, html2pdf.ErrPDFGeneration), errors.Is(err, html2pdf.ErrPageCreate):
		return hints.ForRender()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, html2pdf.ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, html2pdf.ErrSourceNotFound), errors.Is(err, html2pdf.ErrInputNotFound):
		return hints.ForInputNotFound()
	case errors.Is(err, html2pdf.ErrDecode):
		return hints.ForDecode()
	case errors.Is(err, html2pdf.ErrStyleNotFound):
		return hints.ForStylesheetNotFound(assets.NewEmbeddedLoader().Names())
	}
	return ""
}

// reportError prints err with its hint and returns the matching exit code.
func reportError(env *Environment, err error, configName string) int {
	fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err, configName))
	return exitCodeFor(err)
}
