package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stevennight/ai-debug-tool/internal/client"
	"github.com/stevennight/ai-debug-tool/internal/config"
	"github.com/stevennight/ai-debug-tool/internal/convert"
	"github.com/stevennight/ai-debug-tool/internal/models"
	"github.com/stevennight/ai-debug-tool/internal/payload"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one prompt experiment and print the response",
		RunE:  runSend,
	}

	cmd.Flags().String("system", "", "System prompt.")
	cmd.Flags().String("user", "", "User prompt (falls back to stdin).")
	cmd.Flags().String("pdf", "", "PDF file to attach as vision input.")
	cmd.Flags().String("api-url", "", "Chat completion endpoint URL.")
	cmd.Flags().String("api-key", "", "Bearer token (omitted from headers when empty).")
	cmd.Flags().String("application", "", "Application identifier sent in the request envelope.")
	cmd.Flags().String("model", "", "Model identifier.")
	cmd.Flags().Float64("temperature", 0.7, "Sampling temperature, 0.0-1.0.")
	cmd.Flags().Duration("timeout", 60*time.Second, "Request timeout.")
	cmd.Flags().String("response-format", "", "Response format: text|json_object.")
	cmd.Flags().Bool("stream", true, "Stream the response incrementally.")
	cmd.Flags().String("rasterizer", "", "PDF rasterizer: fitz|poppler.")
	cmd.Flags().Bool("save-config", false, "Write the effective settings back to the settings file.")

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, settingsPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyAPIOverrides(cmd, &cfg.API)

	if save, _ := cmd.Flags().GetBool("save-config"); save {
		if err := config.SaveFile(settingsPath, cfg.API); err != nil {
			return fmt.Errorf("save settings file %s: %w", settingsPath, err)
		}
		logrus.WithField("path", settingsPath).Info("settings saved")
	}

	userText, _ := cmd.Flags().GetString("user")
	if userText == "" {
		data, err := os.ReadFile("/dev/stdin")
		if err == nil {
			userText = strings.TrimSpace(string(data))
		}
	}
	if userText == "" {
		return fmt.Errorf("missing --user (or stdin)")
	}
	systemText, _ := cmd.Flags().GetString("system")

	reqCfg := cfg.API.RequestConfig()
	if err := reqCfg.Validate(); err != nil {
		return fmt.Errorf("invalid request settings: %w", err)
	}

	var images []models.PageImage
	if pdfPath, _ := cmd.Flags().GetString("pdf"); pdfPath != "" {
		images, err = convertPDF(cmd, cfg, pdfPath)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"pdf":   pdfPath,
			"pages": len(images),
		}).Info("pdf attached")
	}

	messages := payload.Build(systemText, userText, images)
	orchestrator := client.New(logrus.StandardLogger())

	var result models.ResponseResult
	if reqCfg.Stream {
		result = orchestrator.Send(cmd.Context(), reqCfg, messages, client.WithDeltaFunc(func(delta string) {
			fmt.Print(delta)
		}))
		fmt.Println()
	} else {
		result = orchestrator.Send(cmd.Context(), reqCfg, messages)
		if !result.Failed() {
			fmt.Println(displayText(result.Text, reqCfg.ResponseFormat))
		}
	}

	summary := logrus.Fields{"elapsed_ms": result.ElapsedMs}
	if result.TTFBMs != nil {
		summary["ttfb_ms"] = *result.TTFBMs
	}
	if result.Failed() {
		logrus.WithFields(summary).Error("request failed")
		return fmt.Errorf("%s: %s", result.ErrorKind, result.ErrDetail)
	}
	logrus.WithFields(summary).Info("request succeeded")
	return nil
}

func applyAPIOverrides(cmd *cobra.Command, api *config.APIConfig) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		api.URL, _ = flags.GetString("api-url")
	}
	if flags.Changed("api-key") {
		api.Key, _ = flags.GetString("api-key")
	}
	if flags.Changed("application") {
		api.Application, _ = flags.GetString("application")
	}
	if flags.Changed("model") {
		api.Model, _ = flags.GetString("model")
	}
	if flags.Changed("temperature") {
		api.Temperature, _ = flags.GetFloat64("temperature")
	}
	if flags.Changed("timeout") {
		api.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("response-format") {
		api.ResponseFormat, _ = flags.GetString("response-format")
	}
	if flags.Changed("stream") {
		api.UseStream, _ = flags.GetBool("stream")
	}
}

func convertPDF(cmd *cobra.Command, cfg *config.Config, pdfPath string) ([]models.PageImage, error) {
	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	name := cfg.Convert.Rasterizer
	if cmd.Flags().Changed("rasterizer") {
		name, _ = cmd.Flags().GetString("rasterizer")
	}
	rasterizer, err := rasterizerByName(name)
	if err != nil {
		return nil, err
	}

	converter := convert.New(rasterizer, convert.Options{
		MaxDimensionPx: cfg.Convert.MaxDimensionPx,
		DPI:            cfg.Convert.DPI,
		JPEGQuality:    cfg.Convert.JPEGQuality,
	}, logrus.StandardLogger())

	return converter.Convert(cmd.Context(), raw)
}

func rasterizerByName(name string) (convert.PageRasterizer, error) {
	switch name {
	case "", "fitz":
		return convert.NewFitzRasterizer(), nil
	case "poppler":
		return convert.NewPopplerRasterizer(), nil
	default:
		return nil, fmt.Errorf("unknown rasterizer %q (want fitz or poppler)", name)
	}
}

// displayText re-indents json_object responses for readability, falling back
// to the raw text when the body does not parse.
func displayText(text string, format models.ResponseFormat) string {
	if format != models.ResponseFormatJSONObject {
		return text
	}
	var obj any
	if err := sonic.UnmarshalString(text, &obj); err != nil {
		return text
	}
	pretty, err := sonic.MarshalIndent(obj, "", "  ")
	if err != nil {
		return text
	}
	return string(pretty)
}
