// Package main is the entry point for the doom bootstrap binary.
//
// It assembles the bootstrap layer (directory layout, settings, autoload
// dispatcher, modules) and feeds it file-open events from the command
// line. Embedding editors use internal/app directly instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhirn/doom-emacs/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		root         = flag.String("root", "", "distribution root (default: $DOOMDIR or ~/.doom)")
		host         = flag.String("host", "", "host identifier for namespaced state dirs (default: hostname)")
		configFile   = flag.String("config", "", "settings file (default: <etc>/config.toml)")
		initScript   = flag.String("init", "", "init script (default: <root>/init.lua)")
		remoteMarker = flag.String("remote-marker", "", "remote-authority prefix to strip from opened paths")
		watch        = flag.Bool("watch", false, "watch the settings file and reload on change")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("doom %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(app.Options{
		Root:       *root,
		Host:       *host,
		ConfigFile: *configFile,
		InitScript: *initScript,
		Watch:      *watch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx := context.Background()
	if err := application.LoadModules(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading modules: %v\n", err)
		return 1
	}

	for _, path := range flag.Args() {
		if err := application.OpenFile(ctx, path, *remoteMarker); err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening %s: %v\n", path, err)
			return 1
		}
	}

	if *watch {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals
	}

	return 0
}
