package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marcelFriedl737/Jira-MCP-Server/internal/domain"
)

const (
	serverName    = "jira-mcp-server"
	serverVersion = "1.0.0"
)

// serverInstructions is surfaced to clients during the initialize
// handshake.
const serverInstructions = `Tools for working with Jira Cloud: list issue types, link types and
fields, look up users by email, search issues with JQL, create, update,
delete and link issues, and add comments. Issue descriptions and comment
bodies are plain text and are converted to Atlassian Document Format
before submission.`

// shutdownTimeout bounds how long an HTTP shutdown may drain requests.
const shutdownTimeout = 10 * time.Second

// toolRegistration pairs a tool definition with its workflow handler.
type toolRegistration struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// Server hosts the Jira tool catalog on an MCP server and runs it over
// the configured transport.
type Server struct {
	mcp       *server.MCPServer
	transport domain.TransportConfig
	logger    *slog.Logger
}

// NewServer assembles the MCP server and registers every catalog tool,
// each wrapped in the uniform error boundary.
func NewServer(handler *JiraHandler, transport domain.TransportConfig, logger *slog.Logger) *Server {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(loggingMiddleware(logger)),
	)

	for _, reg := range handler.registrations() {
		s.AddTool(reg.tool, guard(logger, handler.mapper, reg.handler))
	}

	return &Server{
		mcp:       s,
		transport: transport,
		logger:    logger,
	}
}

// Serve runs the server until the client closes the stdio stream or,
// for HTTP, until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	switch s.transport.Type {
	case "stdio":
		s.logger.Info("serving on stdio")
		return server.ServeStdio(s.mcp)
	case "http":
		return s.serveHTTP(ctx)
	default:
		return fmt.Errorf("unsupported transport type: %s", s.transport.Type)
	}
}

// serveHTTP runs the streamable HTTP transport and drains it on context
// cancellation.
func (s *Server) serveHTTP(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.transport.HTTP.Host, s.transport.HTTP.Port)
	httpServer := server.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()

	s.logger.Info("serving on http", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// guard catches every failure a workflow returns and renders it as the
// uniform error envelope, so the caller always receives a well-formed
// response instead of a transport-level fault. The downstream message
// text is kept verbatim; the mapped code is recorded in the log.
func guard(logger *slog.Logger, mapper domain.ResponseMapper, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := next(ctx, req)
		if err == nil {
			return result, nil
		}

		mapped := mapper.MapError(err)
		logger.Warn("tool call failed",
			"tool", req.Params.Name,
			"code", mapped.Code,
			"error", err.Error(),
		)

		return mcp.NewToolResultError(fmt.Sprintf("Operation failed: %s", err.Error())), nil
	}
}

// loggingMiddleware logs every tool call with a per-call trace ID, its
// duration and whether it produced an error envelope.
func loggingMiddleware(logger *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			traceID := uuid.NewString()
			start := time.Now()

			logger.Info("tool call received",
				"trace_id", traceID,
				"tool", req.Params.Name,
			)

			result, err := next(ctx, req)

			isError := err != nil || (result != nil && result.IsError)
			logger.Info("tool call completed",
				"trace_id", traceID,
				"tool", req.Params.Name,
				"duration_ms", time.Since(start).Milliseconds(),
				"is_error", isError,
			)

			return result, err
		}
	}
}
