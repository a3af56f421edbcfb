package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

// Keys read from the KV v2 secret.
const (
	KeyOpenAIAPIKey  = "openai_api_key"
	KeySapoStoreName = "sapo_store_name"
	KeySapoAPIKey    = "sapo_api_key"
	KeySapoAPISecret = "sapo_api_secret"
)

type SecretManager struct {
	client *api.Client
	path   string
	log    *zap.Logger
}

func NewSecretManager(cfg config.VaultConfig, log *zap.Logger) (*SecretManager, error) {
	vc := api.DefaultConfig()
	vc.Address = cfg.Address

	client, err := api.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("vault: create client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &SecretManager{client: client, path: cfg.Path, log: log}, nil
}

// Secrets reads the string values stored at the configured KV v2 path.
func (sm *SecretManager) Secrets(ctx context.Context) (map[string]string, error) {
	secret, err := sm.client.Logical().ReadWithContext(ctx, sm.path)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", sm.path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("vault: no secret at %s", sm.path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("vault: %s is not a kv v2 secret", sm.path)
	}

	values := make(map[string]string, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return values, nil
}

// ApplyCredentials fills blank upstream credentials in cfg from Vault.
// Values already set through the environment win.
func (sm *SecretManager) ApplyCredentials(ctx context.Context, cfg *config.Config) error {
	values, err := sm.Secrets(ctx)
	if err != nil {
		return err
	}

	targets := map[string]*string{
		KeyOpenAIAPIKey:  &cfg.OpenAI.APIKey,
		KeySapoStoreName: &cfg.Catalog.StoreName,
		KeySapoAPIKey:    &cfg.Catalog.APIKey,
		KeySapoAPISecret: &cfg.Catalog.APISecret,
	}

	applied := make([]string, 0, len(targets))
	for key, dst := range targets {
		if *dst != "" {
			continue
		}
		if v := strings.TrimSpace(values[key]); v != "" {
			*dst = v
			applied = append(applied, key)
		}
	}

	sm.log.Info("Loaded credentials from Vault",
		zap.String("path", sm.path),
		zap.Strings("keys", applied),
	)
	return nil
}
