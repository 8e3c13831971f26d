package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Media struct {
			Backend string `json:"backend"`

			S3 struct {
				Region          string `json:"region"`
				Bucket          string `json:"bucket"`
				AccessKeyID     string `json:"access_key_id"`
				SecretAccessKey string `json:"secret_access_key"`
				BaseEndpoint    string `json:"base_endpoint"`
				PublicBaseURL   string `json:"public_base_url"`
			} `json:"s3,omitempty"`

			Gateway struct {
				UploadURL string   `json:"upload_url"`
				APIKey    string   `json:"api_key"`
				Timeout   Duration `json:"timeout"`
			} `json:"gateway,omitempty"`
		} `json:"media,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Media: Media{
				Backend: jsonCfg.Storage.Media.Backend,
				S3: S3{
					Region:          jsonCfg.Storage.Media.S3.Region,
					Bucket:          jsonCfg.Storage.Media.S3.Bucket,
					AccessKeyID:     jsonCfg.Storage.Media.S3.AccessKeyID,
					SecretAccessKey: jsonCfg.Storage.Media.S3.SecretAccessKey,
					BaseEndpoint:    jsonCfg.Storage.Media.S3.BaseEndpoint,
					PublicBaseURL:   jsonCfg.Storage.Media.S3.PublicBaseURL,
				},
				Gateway: Gateway{
					UploadURL: jsonCfg.Storage.Media.Gateway.UploadURL,
					APIKey:    jsonCfg.Storage.Media.Gateway.APIKey,
					Timeout:   time.Duration(jsonCfg.Storage.Media.Gateway.Timeout),
				},
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
