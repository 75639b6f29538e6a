package provider

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zensend/zensend-go/internal/config"
	"github.com/zensend/zensend-go/internal/infra/logger"
	"github.com/zensend/zensend-go/zensend"
)

// NewZenSendProvider builds a client from cfg. It fails when no API key is configured.
func NewZenSendProvider(cfg *config.Config, log *logger.Logger) (*zensend.Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		log.Error("ZenSend provider is not configured", logrus.Fields{"error": err.Error()})
		return nil, err
	}

	return zensend.New(cfg.APIKey,
		zensend.WithBaseURL(cfg.BaseURL),
		zensend.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		zensend.WithLogger(log.FieldLogger()),
	), nil
}
