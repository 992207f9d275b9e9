// Package cli provides the profilegrid command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/uyouii/ocean-profiles/config"
	"github.com/uyouii/ocean-profiles/exchange"
	"github.com/uyouii/ocean-profiles/utils"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries what the persistent flags and the configuration resolve to.
type app struct {
	verbose    bool
	configPath string
	envFile    string

	cfg    *config.Config
	reader *exchange.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "profilegrid",
		Short: "Resample and compare hydrographic station profiles",
		Long: `profilegrid reads WHP exchange bottle and CTD files, interpolates their
variables onto a regular depth grid, masks values inside sampling gaps and
compares stations against a reference.

Configuration comes from an optional YAML file, then PROFILEGRID_* environment
variables (a .env file is loaded when present).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	rootCmd.AddCommand(newResampleCmd(a))
	rootCmd.AddCommand(newCompareCmd(a))
	rootCmd.AddCommand(newVocabCmd())
	return rootCmd
}

func (a *app) setup() error {
	// 1. dotenv, a missing file is fine
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %v: %w", a.envFile, err)
		}
	}

	// 2. config
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// 3. logger
	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	if err := utils.SetupLogger(level, cfg.Logging.Development); err != nil {
		return err
	}

	// 4. reader
	a.reader, err = exchange.NewReader(cfg.Exchange.Encodings)
	if err != nil {
		return err
	}
	return nil
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}
