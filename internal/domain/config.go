package domain

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
// Values are loaded from an optional YAML file and then overridden by
// environment variables, so a deployment can run from the environment alone.
type Config struct {
	Jira      JiraConfig      `yaml:"jira"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// JiraConfig defines the Jira Cloud connection settings. Host, email and
// API token are required; the server refuses to start without them.
type JiraConfig struct {
	Host              string `yaml:"host"`
	Email             string `yaml:"email"`
	APIToken          string `yaml:"api_token"`
	DefaultProjectKey string `yaml:"default_project_key,omitempty"`
	DefaultAssignee   string `yaml:"default_assignee,omitempty"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

// BaseURL returns the Jira REST base URL derived from the configured host.
func (jc *JiraConfig) BaseURL() string {
	return "https://" + jc.Host
}

// defaultConfig returns a Config with every optional setting at its
// default value.
func defaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Type: "stdio",
			HTTP: HTTPConfig{
				Host: "localhost",
				Port: 8000,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig builds the configuration from an optional YAML file and the
// environment. When path is empty, only defaults and environment variables
// apply. Environment variables always win over file values.
// Returns an error if the file is missing, has invalid syntax, or the
// resulting configuration fails validation.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("configuration file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
		}
	}

	if err := config.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnvOverrides replaces configuration values with their environment
// variable counterparts where set.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("JIRA_HOST"); v != "" {
		c.Jira.Host = v
	}
	if v := os.Getenv("JIRA_EMAIL"); v != "" {
		c.Jira.Email = v
	}
	if v := os.Getenv("JIRA_API_TOKEN"); v != "" {
		c.Jira.APIToken = v
	}
	if v := os.Getenv("JIRA_DEFAULT_PROJECT_KEY"); v != "" {
		c.Jira.DefaultProjectKey = v
	}
	if v := os.Getenv("JIRA_DEFAULT_ASSIGNEE"); v != "" {
		c.Jira.DefaultAssignee = v
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		c.Transport.Type = v
	}
	if v := os.Getenv("MCP_HTTP_HOST"); v != "" {
		c.Transport.HTTP.Host = v
	}
	if v := os.Getenv("MCP_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCP_HTTP_PORT must be an integer, got %q", v)
		}
		c.Transport.HTTP.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if err := c.validateJira(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateJira validates the Jira connection settings.
func (c *Config) validateJira() error {
	var errors []string

	if c.Jira.Host == "" {
		errors = append(errors, "jira host is required")
	} else if strings.Contains(c.Jira.Host, "://") || strings.Contains(c.Jira.Host, "/") {
		errors = append(errors, fmt.Sprintf("jira host '%s' must be a hostname only (no scheme or path)", c.Jira.Host))
	}

	if c.Jira.Email == "" {
		errors = append(errors, "jira email is required")
	}

	if c.Jira.APIToken == "" {
		errors = append(errors, "jira api_token is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type == "" {
		errors = append(errors, "transport type is required")
	} else if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateLogging validates the logging configuration.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level '%s': must be 'debug', 'info', 'warn' or 'error'", c.Logging.Level)
	}
}
