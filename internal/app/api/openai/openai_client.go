package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"general-transcriber/internal/config"
)

// NewClient builds an OpenAI client from configuration. timeout bounds a
// single HTTP exchange; Whisper calls on long audio can take minutes.
func NewClient(cfg config.OpenAIConfig, timeout time.Duration) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(clientConfig)
}
