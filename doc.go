// Package html2pdf converts saved HTML pages to PDF, revealing content the
// page hides (collapsed sections, display:none blocks, unchecked boxes)
// before printing.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := html2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res := conv.ConvertFile(ctx, "page.html", "") // writes page.pdf
//	if !res.OK() {
//	    log.Fatal(res.Err)
//	}
//
// ConvertFile never returns an error directly: every attempt yields a
// Result carrying the destination, duration and, on failure, the error and
// its Failure kind.
//
// # Conversion Pipeline
//
//  1. Decode (binary content rejected, UTF-8 first, Latin-1 fallback)
//  2. Pre-process according to the Policy (see Preprocess)
//  3. Render with headless Chrome (go-rod) or the browserless text engine
//  4. Write the PDF, creating missing directories
//
// # Configuration
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithPolicy(html2pdf.PolicyLight),
//	    html2pdf.WithTimeout(time.Minute),
//	    html2pdf.WithPage(&html2pdf.PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.5}),
//	    html2pdf.WithCSS("body { font-size: 11pt; }"),
//	)
//
// # Batch Conversion
//
// ConvertAll converts a directory with a pool of converters, each owning
// its own browser process:
//
//	pool := html2pdf.NewConverterPool(html2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	report, err := html2pdf.ConvertAll(ctx, pool, html2pdf.BatchOptions{
//	    InputDir:  "pages",
//	    OutputDir: "pdf",
//	    OnProgress: func(p html2pdf.Progress) {
//	        fmt.Printf("Progress: %d/%d files (%.1f%%)\n", p.Completed, p.Total, p.Percent())
//	    },
//	})
//
// # Logging
//
// The library is silent by default. Install a logger with SetLogger.
package html2pdf
