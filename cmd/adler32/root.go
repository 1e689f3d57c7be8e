package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iamNilotpal/adler32/config"
	"github.com/iamNilotpal/adler32/pkg/fs"
	"github.com/iamNilotpal/adler32/pkg/logger"
)

const serviceName = "adler32"

// app holds state shared by all subcommands. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.SugaredLogger
	fs  fs.FileSystem
}

func newApp() *app {
	return &app{fs: fs.NewLocalFileSystem()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Compute and verify Adler-32 checksums",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config file")

	root.AddCommand(
		a.sumCommand(),
		a.checkCommand(),
		a.sealCommand(),
		a.unsealCommand(),
	)
	return root
}

func (a *app) setup() error {
	a.cfg = config.DefaultConfig()
	if a.configPath != "" {
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}

	log, err := logger.NewWithLevel(serviceName, level)
	if err != nil {
		return fmt.Errorf("error creating logger : %w", err)
	}
	a.log = log
	a.log.Debugw("configuration loaded", "path", a.configPath, "output", a.cfg.Output)
	return nil
}

func (a *app) sync() error {
	if a.log == nil {
		return nil
	}
	return a.log.Sync()
}
