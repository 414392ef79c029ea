package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment defaults for the HTTP server and the notification provider.
const (
	DefaultPort            = 8080
	DefaultBrevoTemplateID = 2
	DefaultBrevoEndpoint   = "https://api.brevo.com/v3/smtp/email"
	DefaultLogLevel        = "info"
)

// ServerEnv holds server settings read from the environment.
// The Brevo API key is optional at startup: the endpoint answers 500 while it is unset.
type ServerEnv struct {
	Port            int
	LogLevel        string
	BrevoAPIKey     string
	BrevoTemplateID int
	BrevoEndpoint   string
	AllowedOrigins  []string
}

// LoadServerEnv reads PORT, LOG_LEVEL, BREVO_API_KEY, BREVO_TEMPLATE_ID, BREVO_ENDPOINT and
// CORS_ALLOWED_ORIGINS.
func LoadServerEnv() (*ServerEnv, error) {
	env := &ServerEnv{
		Port:            DefaultPort,
		LogLevel:        DefaultLogLevel,
		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		BrevoTemplateID: DefaultBrevoTemplateID,
		BrevoEndpoint:   DefaultBrevoEndpoint,
		AllowedOrigins:  []string{"*"},
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		env.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		env.LogLevel = v
	}
	if v := os.Getenv("BREVO_TEMPLATE_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BREVO_TEMPLATE_ID: %v", err)
		}
		env.BrevoTemplateID = id
	}
	if v := os.Getenv("BREVO_ENDPOINT"); v != "" {
		env.BrevoEndpoint = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		env.AllowedOrigins = splitList(v)
	}

	if err := env.normalize(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *ServerEnv) normalize() error {
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", e.Port)
	}
	if e.BrevoTemplateID < 1 {
		return fmt.Errorf("BREVO_TEMPLATE_ID must be positive, got: %d", e.BrevoTemplateID)
	}
	if len(e.AllowedOrigins) == 0 {
		e.AllowedOrigins = []string{"*"}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
