package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcut/internal/logger"
	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/philipparndt/meshcut/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-cut a mesh whenever it changes",
	Long: `Cut the file once, then watch it and cut again after every change.
For OpenSCAD sources every used or included file is watched as well.
All cut flags apply.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addCutFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	job, err := newCutJob(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recut := func(string) {
		written, result, err := job.run(ctx, filename)
		if err != nil {
			logger.Error("cut failed", zap.String("file", filename), zap.Error(err))
			return
		}
		printResult(filename, written, result)
	}

	deps, err := meshio.NewLoader(logger.Log).Dependencies(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving dependencies: %v\n", err)
		os.Exit(1)
	}

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch(deps, recut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	recut(filename)
	logger.Info("watching for changes", zap.Strings("files", deps))
	fw.Run(ctx)
}
