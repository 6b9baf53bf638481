package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-upload-size request body limit in bytes
//	-c/-config json file path with configs
//	-version-label application version
//	-log-level zerolog level
//	-key-scheme key derivation scheme (zeropad, argon2id)
//	-key-salt argon2id deployment salt
//	-cipher-scheme cipher scheme (aes-256-cbc, aes-256-gcm)
//	-strong-passwords enforce the upload password policy
//	-blob-backend blob store backend (memory, file, ipfs)
//	-f file blob store directory
//	-ipfs-address IPFS RPC API base URL
//	-ipfs-timeout IPFS request timeout
//	-registry-backend registry backend (memory, postgres, sqlite, mongo, bolt)
//	-d registry DSN / URI / file
//	-mongo-database MongoDB database name
//	-outbox pending registration bbolt file
//	-retry-interval pending registration retry period
//	-retry-max backoff attempts per pending record
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress  NetAddress
		requestTimeout time.Duration
		maxUploadSize  int64
		jsonConfigPath string

		version      string
		logLevel     string
		keyScheme    string
		keySalt      string
		cipherScheme string
		strongPass   bool

		blobBackend     string
		blobDir         string
		ipfsAddress     string
		ipfsTimeout     time.Duration
		registryBackend string
		registryDSN     string
		mongoDatabase   string
		outboxPath      string

		retryInterval time.Duration
		retryMax      uint64
	)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Maximum request body size in bytes")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	fs.StringVar(&version, "version-label", "", "Application version")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&keyScheme, "key-scheme", "", "Key derivation scheme")
	fs.StringVar(&keySalt, "key-salt", "", "Key derivation salt")
	fs.StringVar(&cipherScheme, "cipher-scheme", "", "Cipher scheme")
	fs.BoolVar(&strongPass, "strong-passwords", false, "Enforce the upload password policy")

	fs.StringVar(&blobBackend, "blob-backend", "", "Blob store backend")
	fs.StringVar(&blobDir, "f", "", "File blob store path")
	fs.StringVar(&ipfsAddress, "ipfs-address", "", "IPFS RPC API address")
	fs.DurationVar(&ipfsTimeout, "ipfs-timeout", 0, "IPFS request timeout")
	fs.StringVar(&registryBackend, "registry-backend", "", "Registry backend")
	fs.StringVar(&registryDSN, "d", "", "Registry DSN")
	fs.StringVar(&mongoDatabase, "mongo-database", "", "MongoDB database name")
	fs.StringVar(&outboxPath, "outbox", "", "Pending registration store path")

	fs.DurationVar(&retryInterval, "retry-interval", 0, "Pending registration retry interval")
	fs.Uint64Var(&retryMax, "retry-max", 0, "Pending registration retries per tick")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Version:         version,
			LogLevel:        logLevel,
			KeyScheme:       keyScheme,
			KeySalt:         keySalt,
			CipherScheme:    cipherScheme,
			StrongPasswords: strongPass,
		},
		Storage: Storage{
			Blob: Blob{
				Backend:        blobBackend,
				Dir:            blobDir,
				IPFSAddress:    ipfsAddress,
				RequestTimeout: ipfsTimeout,
			},
			Registry: Registry{
				Backend:  registryBackend,
				DSN:      registryDSN,
				Database: mongoDatabase,
			},
			Outbox: Outbox{
				Path: outboxPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxUploadSize:  maxUploadSize,
		},
		Workers: Workers{
			RegistrationRetryInterval: retryInterval,
			RegistrationMaxRetries:    retryMax,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
