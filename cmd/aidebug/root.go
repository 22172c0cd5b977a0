package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stevennight/ai-debug-tool/internal/config"
)

func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "aidebug",
		Short:         "Prompt/response debugging for OpenAI-compatible chat completion APIs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("config", config.DefaultFile, "Persisted settings file path.")
	cmd.PersistentFlags().String("log-level", "info", "Logging level: debug|info|warn|error.")
	cmd.PersistentFlags().String("log-format", "text", "Logging format: text|json.")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	}

	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func setupLogging(cmd *cobra.Command) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

// loadConfig resolves env settings and overlays the persisted file.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("config error: %w", err)
	}
	path, _ := cmd.Flags().GetString("config")
	if err := config.LoadFile(path, &cfg.API); err != nil {
		return nil, "", fmt.Errorf("read settings file %s: %w", path, err)
	}
	return cfg, path, nil
}
