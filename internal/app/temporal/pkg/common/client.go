package common

import (
	"fmt"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"

	"general-transcriber/internal/config"
)

// NewTemporalClient creates a new Temporal client with the given configuration
func NewTemporalClient(cfg config.TemporalConfig, logger log.Logger) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Host,
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Temporal client: %w", err)
	}
	return c, nil
}
