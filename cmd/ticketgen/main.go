package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ticketgen/internal/config"
	"ticketgen/internal/gatekeeper"
	"ticketgen/internal/models"
	"ticketgen/internal/services"
	"ticketgen/internal/writer"
	"ticketgen/internal/xai"
)

const usage = `usage: ticketgen "<problem description>"`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.LookupEnv, os.Stdout)
	cancel()
	os.Exit(report(os.Stderr, err))
}

// report prints a fatal error as a single line and returns the process exit code.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "ticketgen: %v\n", err)
	return 1
}

func run(ctx context.Context, args []string, lookupEnv config.LookupFunc, stdout io.Writer) error {
	setupLogging(stdout, config.Default().Logging)

	configPath := getConfigPath(lookupEnv)
	cfg, err := config.Load(configPath, lookupEnv)
	if err != nil {
		return err
	}

	setupLogging(stdout, cfg.Logging)

	if configPath != "" {
		slog.Debug("configuration loaded", "config_path", configPath)
	}

	if len(args) < 1 {
		return models.Errorf(models.ErrorKindUsage, "missing description (%s)", usage)
	}
	description := args[0]

	client := xai.NewClient(cfg.Completion.Endpoint, cfg.Completion.Timeout)
	gk := gatekeeper.New(cfg)
	fileWriter := writer.New(cfg.Output.Dir, gk, stdout)

	service := services.NewGenerateService(cfg, client, fileWriter)
	summary, err := service.Run(ctx, description)
	if err != nil {
		return err
	}

	slog.Info("run completed", "summary", *summary)

	fmt.Fprintln(stdout, "all files generated successfully")
	return nil
}

func getConfigPath(lookupEnv config.LookupFunc) string {
	if configPath, ok := lookupEnv("TICKETGEN_CONFIG"); ok && configPath != "" {
		return configPath
	}

	if _, err := os.Stat("./ticketgen.yaml"); err == nil {
		return "./ticketgen.yaml"
	}

	return ""
}

func setupLogging(out io.Writer, logConfig config.LoggingConfig) {
	var level slog.Level
	switch logConfig.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if logConfig.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
}
