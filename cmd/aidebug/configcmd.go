package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stevennight/ai-debug-tool/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist the request settings",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSaveCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (env overlaid with the settings file)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			api := cfg.API
			fmt.Printf("settings file:   %s\n", path)
			fmt.Printf("api_url:         %s\n", api.URL)
			fmt.Printf("application:     %s\n", api.Application)
			fmt.Printf("api_key:         %s\n", maskKey(api.Key))
			fmt.Printf("timeout:         %ds\n", int(api.Timeout/time.Second))
			fmt.Printf("response_format: %s\n", api.ResponseFormat)
			fmt.Printf("model:           %s\n", api.Model)
			fmt.Printf("temperature:     %g\n", api.Temperature)
			fmt.Printf("use_stream:      %t\n", api.UseStream)
			return nil
		},
	}
}

func newConfigSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the effective settings back to the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.SaveFile(path, cfg.API); err != nil {
				return fmt.Errorf("save settings file %s: %w", path, err)
			}
			logrus.WithField("path", path).Info("settings saved")
			return nil
		},
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
