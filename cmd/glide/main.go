// Package main is the entry point for the glide pager.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/glide/internal/app"
	"github.com/dshills/glide/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging and frame timings")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug mode (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.Watch, "w", false, "Reload the configuration file when it changes (shorthand)")
	flag.BoolVar(&opts.NoSnap, "no-snap", false, "Do not snap to headings")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glide - smooth scrolling terminal pager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glide [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  j/k, Up/Down        scroll one line\n")
		fmt.Fprintf(os.Stderr, "  Space/b, PgDn/PgUp  scroll one page\n")
		fmt.Fprintf(os.Stderr, "  d/u                 scroll half a page\n")
		fmt.Fprintf(os.Stderr, "  g/G, Home/End       jump to top or bottom\n")
		fmt.Fprintf(os.Stderr, "  n/N                 next or previous heading\n")
		fmt.Fprintf(os.Stderr, "  s                   stop or resume scrolling\n")
		fmt.Fprintf(os.Stderr, "  r                   reload configuration\n")
		fmt.Fprintf(os.Stderr, "  q, Esc              quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glide README.md             Page a file\n")
		fmt.Fprintf(os.Stderr, "  git log | glide             Page standard input\n")
		fmt.Fprintf(os.Stderr, "  glide -w -c glide.toml x.md Tune settings live\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("glide %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		os.Exit(1)
	}
	opts.File = flag.Arg(0)
	opts.Stdin = os.Stdin
	if (opts.File == "" || opts.File == "-") && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		os.Exit(1)
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath()
	}

	return opts
}

// defaultConfigPath returns the per-user config file if it exists.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, "glide", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

