package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nextlevelcleaning/cards/internal/config"
	"github.com/nextlevelcleaning/cards/internal/notify"
	"github.com/nextlevelcleaning/cards/internal/observability"
	"github.com/nextlevelcleaning/cards/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the card site and the quote-request endpoint",
	Long: `Start an HTTP server that serves the static site directory and accepts quote-request
form submissions, answering each with a Brevo auto-reply email.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	env, err := config.LoadServerEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		env.Port = servePort
	}

	level := env.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, err := observability.NewLogger(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if env.BrevoAPIKey == "" {
		logger.Warn("BREVO_API_KEY is not set; quote submissions will fail")
	}

	srv, err := server.New(server.Config{
		Port:           env.Port,
		SiteDir:        cfg.SiteDir,
		AllowedOrigins: env.AllowedOrigins,
		Mailer:         notify.NewBrevoClient(env.BrevoAPIKey, env.BrevoEndpoint, nil),
		TemplateID:     env.BrevoTemplateID,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving card site", zap.String("site_dir", cfg.SiteDir), zap.Int("port", env.Port))
	return srv.Start()
}
