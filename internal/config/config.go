// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Storage backend names accepted by [Blob.Backend] and [Registry.Backend].
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendIPFS     = "ipfs"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
	BackendBolt     = "bolt"
)

// StructuredConfig is the top-level configuration container for the
// go-doc-vault server. It aggregates all sub-configurations and is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, log level and the
	// cryptographic schemes of the vault pipeline.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the blob store, the document registry
	// and the pending-registration outbox.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and body limit settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// KeyScheme selects password-to-key derivation: "zeropad" or "argon2id".
	// Env: APP_KEY_SCHEME
	KeyScheme string `env:"KEY_SCHEME"`

	// KeySalt is the deployment-wide salt of the argon2id scheme. Changing it
	// makes every previously sealed document unreadable.
	// Env: APP_KEY_SALT
	KeySalt string `env:"KEY_SALT"`

	// CipherScheme selects "aes-256-cbc" or "aes-256-gcm".
	// Env: APP_CIPHER_SCHEME
	CipherScheme string `env:"CIPHER_SCHEME"`

	// StrongPasswords rejects upload passwords shorter than 10 characters
	// or missing a digit, a lower-case letter, an upper-case letter or a
	// special character. Off by default.
	// Env: APP_STRONG_PASSWORDS
	StrongPasswords bool `env:"STRONG_PASSWORDS"`
}

// Storage groups the configuration of every persistence backend.
type Storage struct {
	Blob     Blob     `envPrefix:"BLOB_"`
	Registry Registry `envPrefix:"REGISTRY_"`
	Outbox   Outbox   `envPrefix:"OUTBOX_"`
}

// Blob holds the ciphertext store settings.
type Blob struct {
	// Backend is one of "memory", "file" or "ipfs".
	// Env: STORAGE_BLOB_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the root directory of the file backend.
	// Env: STORAGE_BLOB_DIR
	Dir string `env:"DIR"`

	// IPFSAddress is the base URL of the IPFS RPC API
	// (e.g. "http://localhost:5001").
	// Env: STORAGE_BLOB_IPFS_ADDRESS
	IPFSAddress string `env:"IPFS_ADDRESS"`

	// RequestTimeout bounds every call to the IPFS API.
	// Env: STORAGE_BLOB_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Registry holds the document registry settings.
type Registry struct {
	// Backend is one of "memory", "postgres", "sqlite", "mongo" or "bolt".
	// Env: STORAGE_REGISTRY_BACKEND
	Backend string `env:"BACKEND"`

	// DSN is the PostgreSQL connection string, the SQLite file, the MongoDB
	// URI or the bbolt file, depending on Backend.
	// Env: STORAGE_REGISTRY_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Database is the MongoDB database name.
	// Env: STORAGE_REGISTRY_DATABASE_NAME
	Database string `env:"DATABASE_NAME"`
}

// Outbox holds the pending-registration store settings.
type Outbox struct {
	// Path is the bbolt file of the durable outbox. Empty keeps pending
	// registrations in memory.
	// Env: STORAGE_OUTBOX_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadSize caps the request body in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RegistrationRetryInterval is the period of the pending-registration
	// retry worker. A negative interval disables the worker.
	// Env: WORKERS_REGISTRATION_RETRY_INTERVAL
	RegistrationRetryInterval time.Duration `env:"REGISTRATION_RETRY_INTERVAL"`

	// RegistrationMaxRetries bounds the backoff attempts per record and tick.
	// Env: WORKERS_REGISTRATION_MAX_RETRIES
	RegistrationMaxRetries uint64 `env:"REGISTRATION_MAX_RETRIES"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
