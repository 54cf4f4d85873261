package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshcut/internal/config"
	"github.com/philipparndt/meshcut/internal/logger"
	"github.com/philipparndt/meshcut/version"
)

var (
	configPath string
	logLevel   string
	logFile    string

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "meshcut",
	Short: "Cut triangle meshes with a plane",
	Long: `meshcut slices STL, OBJ and OpenSCAD models with an arbitrary plane.
Both halves are written as closed meshes, with the cross-section sealed by a
cap on each side.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file, rotated")
}

// setup loads the config and applies the global flags on top of it
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.LogFile = logFile
	}
	return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
