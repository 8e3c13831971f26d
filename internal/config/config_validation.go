// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viewtube Authors

package config

import "time"

// Fallbacks applied when neither env, flags, nor the JSON file provide
// a value. Token lifetimes follow the session design: short-lived access
// tokens, seven-day refresh tokens matching the cookie max-age.
const (
	defaultHTTPAddress          = ":8080"
	defaultTokenIssuer          = "user-service"
	defaultAccessTokenDuration  = time.Hour
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultRequestTimeout       = 30 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = defaultRefreshTokenDuration
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Media.Backend {
	case "s3":
		if cfg.Storage.Media.S3.Bucket == "" || cfg.Storage.Media.S3.Region == "" {
			return ErrInvalidMediaConfigs
		}
	case "gateway":
		if cfg.Storage.Media.Gateway.UploadURL == "" {
			return ErrInvalidMediaConfigs
		}
	default:
		return ErrInvalidMediaConfigs
	}

	return nil
}
