package config

import "time"

// defaultConfig returns the lowest-priority configuration layer. Every
// other source overrides these values field by field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:      "dev",
			LogLevel:     "debug",
			KeyScheme:    "zeropad",
			CipherScheme: "aes-256-cbc",
		},
		Storage: Storage{
			Blob: Blob{
				Backend:        BackendMemory,
				RequestTimeout: 30 * time.Second,
			},
			Registry: Registry{
				Backend:  BackendMemory,
				Database: "docvault",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			MaxUploadSize:  32 << 20, // 32 MiB
		},
		Workers: Workers{
			RegistrationRetryInterval: time.Minute,
			RegistrationMaxRetries:    3,
		},
	}
}
