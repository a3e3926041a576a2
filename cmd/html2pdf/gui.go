package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/webui"
)

// runGUI serves the local web interface until ctx is canceled.
func runGUI(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("gui", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}
	var addr string
	fs.StringVar(&addr, "addr", "", "listen address (default "+webui.DefaultAddr+")")
	fs.StringVar(&f.policy, "policy", "", "expansion policy: full, light")
	fs.StringVar(&f.engine, "engine", "", "rendering engine: chrome, text")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.css, "css", "", "extra stylesheet: file path, style name, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory whose styles/ override built-in stylesheets")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	fs.Usage = func() { printGUIUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, err, "")
	}
	if fs.NArg() > 0 {
		return reportError(env, fmt.Errorf("%w: %v", ErrUnexpectedArgs, fs.Args()), "")
	}

	s, err := loadSettings(f, nil, env)
	if err != nil {
		return reportError(env, err, s.configName)
	}
	setupLogging(env.Stderr, s.quiet, s.verbose)

	switch {
	case addr != "":
	case s.guiAddr != "":
		addr = s.guiAddr
	default:
		addr = webui.DefaultAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return reportError(env, fmt.Errorf("listening on %s: %w", addr, err), s.configName)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := webui.New(ctx, guiOptions(env, s.options))

	if !s.quiet {
		fmt.Fprintf(env.Stdout, "HTML to PDF Converter running at http://%s (Ctrl+C to stop)\n", ln.Addr())
	}
	if err := srv.Serve(ctx, ln); err != nil {
		return reportError(env, err, s.configName)
	}
	return ExitSuccess
}

// guiOptions binds the environment constructors to the resolved options.
func guiOptions(env *Environment, opts []html2pdf.Option) webui.Options {
	return webui.Options{
		NewConverter: func() (webui.Converter, error) {
			conv, err := env.NewConverter(opts...)
			if err != nil {
				return nil, err
			}
			return conv, nil
		},
		NewPool: func(size int) webui.Pool {
			return env.NewPool(size, opts...)
		},
	}
}
