package services

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "linkeep"

// KeyringService stores per-provider API keys in the OS keyring, so a key
// does not have to live in the settings table to be usable.
type KeyringService struct {
}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) StoreAPIKey(provider string, apiKey string) error {
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}
	return keyring.Set(keyringServiceName, provider, apiKey)
}

func (s *KeyringService) GetAPIKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	return keyring.Get(keyringServiceName, provider)
}

func (s *KeyringService) DeleteAPIKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	return keyring.Delete(keyringServiceName, provider)
}
