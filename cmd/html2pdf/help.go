package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf [flags] [file|dir]")
	fmt.Fprintln(w, "       html2pdf <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files to PDF with collapsed content expanded.")
	fmt.Fprintln(w, "Run without arguments for interactive mode.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  gui        Start the local web interface")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --file <path>         HTML file to convert")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path (single file)")
	fmt.Fprintln(w, "  -i, --input-dir <dir>     Directory of HTML files")
	fmt.Fprintln(w, "  -d, --output-dir <dir>    Output directory for PDFs")
	fmt.Fprintln(w, "  -r, --recursive           Include subdirectories")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --policy <s>          Expansion policy: full, light")
	fmt.Fprintln(w, "      --engine <s>          Rendering engine: chrome, text")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --css <s>             Extra stylesheet: path, style name, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Override built-in stylesheets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --bar                 Show a progress bar in batch mode")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printGUIUsage prints usage for the gui command.
func printGUIUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf gui [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Start a local web interface for single-file and batch conversion.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8340)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --policy, --engine, --timeout, --css, --asset-path, page flags")
	fmt.Fprintln(w, "                            Same as for conversion")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf doctor [--json] [-c config] [--asset-path dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser, style directory, environment, and effective configuration.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printUsage(env.Stdout)
	case "gui":
		printGUIUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
