package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		html2pdf.Logger().Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches args (without the program name) and returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		return runInteractive(ctx, env)
	}

	switch args[0] {
	case "convert":
		return runConvert(ctx, args[1:], env)
	case "gui":
		return runGUI(ctx, args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "html2pdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(args[1:], env)
	}

	if isUnknownCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Error: %v: %s\n", ErrUnknownCommand, args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return runConvert(ctx, args, env)
}

// isUnknownCommand reports whether arg looks like a mistyped command: a
// bare word that is neither a flag, an existing path nor an HTML file name.
func isUnknownCommand(arg string) bool {
	if strings.HasPrefix(arg, "-") || exists(arg) {
		return false
	}
	return !html2pdf.IsHTMLFile(arg) && !strings.ContainsAny(arg, `/\.`)
}
