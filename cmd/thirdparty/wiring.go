package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/thirdparty/internal/config"
	"github.com/ochairo/thirdparty/internal/domain-adapters/gateways"
	igateways "github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
	"github.com/ochairo/thirdparty/internal/external-adapters/gpg"
)

// newSignatureVerifier imports the configured keys; nil when no key is configured
func newSignatureVerifier(ctx context.Context, keyFiles []string, keysURL string) (*gpg.Verifier, error) {
	if len(keyFiles) == 0 && keysURL == "" {
		return nil, nil
	}
	verifier := gpg.NewVerifier()
	for _, keyFile := range keyFiles {
		if err := verifier.ImportKeyFromFile(keyFile); err != nil {
			return nil, fmt.Errorf("failed to import key %s: %w", keyFile, err)
		}
	}
	if keysURL != "" {
		if err := verifier.ImportKeysFromURL(ctx, keysURL); err != nil {
			return nil, fmt.Errorf("failed to import keys from %s: %w", keysURL, err)
		}
	}
	return verifier, nil
}

// newFetcher builds the client reading local and registry-hosted license data files
func newFetcher(ctx context.Context, cfg config.RegistryConfig) (*gateways.RegistryClient, error) {
	opts := []gateways.RegistryOption{gateways.WithDigests(cfg.Digests)}

	verifier, err := newSignatureVerifier(ctx, cfg.KeyFiles, cfg.KeysURL)
	if err != nil {
		return nil, err
	}
	if verifier != nil {
		opts = append(opts, gateways.WithSignatureVerifier(verifier))
	}
	return gateways.NewRegistryClient(cfg.URL, opts...), nil
}

// newLookupBackends creates the enabled lookup backends in configured order
func newLookupBackends(cfg config.LookupConfig) []igateways.LicenseLookup {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	var backends []igateways.LicenseLookup
	for _, name := range cfg.Backends {
		switch name {
		case config.BackendDepsDev:
			backends = append(backends, gateways.NewDepsDevGateway(timeout).WithAPIURL(cfg.DepsDev.URL))
		case config.BackendXray:
			backends = append(backends, gateways.NewXrayGateway(cfg.Xray.URL, cfg.Xray.Token, timeout))
		}
	}
	return backends
}
