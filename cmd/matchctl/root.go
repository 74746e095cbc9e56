package main

import (
	"pet-matcher/internal/config"
	"pet-matcher/internal/platform/logger"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalFlags pisan la config cargada (archivo + env).
type globalFlags struct {
	configPath  string
	dataPath    string
	modelSource string
	modelDir    string
	debug       bool
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "matchctl",
		Short: "matchctl - run pet matches and inspect scaler artifacts",
		Long: `matchctl runs the pet matcher offline against the configured population
and scaler source, using the same config as the API (config.yaml + env).`,
		Version:      version,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default: CONFIG_PATH or ./config.yaml)")
	pf.StringVar(&g.dataPath, "data", "", "Population CSV path (overrides population.path)")
	pf.StringVar(&g.modelSource, "model-source", "", "Scaler source: file, http or population")
	pf.StringVar(&g.modelDir, "model-dir", "", "Scaler artifact directory")
	pf.BoolVar(&g.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newMatchCommand(g))
	cmd.AddCommand(newInspectModelCommand(g))

	return cmd
}

func (g *globalFlags) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFrom(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if g.dataPath != "" {
		cfg.Population.Path = g.dataPath
		if cfg.Population.Source != config.PopulationMemory {
			cfg.Population.Source = config.PopulationCSV
		}
	}
	if g.modelSource != "" {
		cfg.Model.Source = g.modelSource
	}
	if g.modelDir != "" {
		cfg.Model.Dir = g.modelDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *globalFlags) logger(cmd *cobra.Command) logger.Logger {
	level := logger.Warn
	if g.debug {
		level = logger.Debug
	}
	return logger.New(logger.Options{
		Level:  level,
		Format: logger.FormatText,
		App:    "matchctl",
		Output: cmd.ErrOrStderr(),
	})
}
