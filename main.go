package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/application"
	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
	"github.com/marcelFriedl737/Jira-MCP-Server/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional, environment variables override)")
	flag.Parse()

	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; the stdio transport owns stdout for protocol
	// frames.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(config.Logging.Level)}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		"jira_host", config.Jira.Host,
		"transport", config.Transport.Type,
	)

	httpClient := domain.NewAuthenticatedClient(domain.Credentials{
		Email:    config.Jira.Email,
		APIToken: config.Jira.APIToken,
	})
	jiraClient := infrastructure.NewJiraClient(config.Jira.BaseURL(), httpClient)

	handler := application.NewJiraHandler(jiraClient, domain.NewResponseMapper(), application.JiraDefaults{
		ProjectKey: config.Jira.DefaultProjectKey,
		Assignee:   config.Jira.DefaultAssignee,
	})

	srv := application.NewServer(handler, config.Transport, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		cancel()
		if err := <-errCh; err != nil {
			logger.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("server shutdown complete")
}

// logLevel maps the configured level name onto a slog level.
func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
