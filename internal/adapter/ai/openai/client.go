// Package openai adapts the OpenAI SDK to the assistant's completion and speech ports.
package openai

import (
	"errors"
	"net/http"

	sdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

// NewSDKClient builds the shared SDK client. Retries are disabled: a failed upstream call
// fails the request.
func NewSDKClient(cfg config.OpenAIConfig, httpClient *http.Client) sdk.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return sdk.NewClient(opts...)
}

// errorFields extracts API status details for logging.
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status_code", apiErr.StatusCode))
	}
	return fields
}
