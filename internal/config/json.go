package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		Version         string `json:"version"`
		LogLevel        string `json:"log_level"`
		KeyScheme       string `json:"key_scheme"`
		KeySalt         string `json:"key_salt"`
		CipherScheme    string `json:"cipher_scheme"`
		StrongPasswords bool   `json:"strong_passwords"`
	} `json:"app,omitempty"`

	Storage struct {
		Blob struct {
			Backend        string   `json:"backend"`
			Dir            string   `json:"dir"`
			IPFSAddress    string   `json:"ipfs_address"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"blob,omitempty"`

		Registry struct {
			Backend  string `json:"backend"`
			DSN      string `json:"dsn"`
			Database string `json:"database"`
		} `json:"registry,omitempty"`

		Outbox struct {
			Path string `json:"path"`
		} `json:"outbox,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	Workers struct {
		RegistrationRetryInterval Duration `json:"registration_retry_interval"`
		RegistrationMaxRetries    uint64   `json:"registration_max_retries"`
	} `json:"workers,omitempty"`
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
			Version:         jsonCfg.App.Version,
			LogLevel:        jsonCfg.App.LogLevel,
			KeyScheme:       jsonCfg.App.KeyScheme,
			KeySalt:         jsonCfg.App.KeySalt,
			CipherScheme:    jsonCfg.App.CipherScheme,
			StrongPasswords: jsonCfg.App.StrongPasswords,
		},
		Storage: Storage{
			Blob: Blob{
				Backend:        jsonCfg.Storage.Blob.Backend,
				Dir:            jsonCfg.Storage.Blob.Dir,
				IPFSAddress:    jsonCfg.Storage.Blob.IPFSAddress,
				RequestTimeout: time.Duration(jsonCfg.Storage.Blob.RequestTimeout),
			},
			Registry: Registry{
				Backend:  jsonCfg.Storage.Registry.Backend,
				DSN:      jsonCfg.Storage.Registry.DSN,
				Database: jsonCfg.Storage.Registry.Database,
			},
			Outbox: Outbox{
				Path: jsonCfg.Storage.Outbox.Path,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
		},
		Workers: Workers{
			RegistrationRetryInterval: time.Duration(jsonCfg.Workers.RegistrationRetryInterval),
			RegistrationMaxRetries:    jsonCfg.Workers.RegistrationMaxRetries,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
