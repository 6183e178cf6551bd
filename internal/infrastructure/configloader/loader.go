package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server configuration.
// An empty CORSAllowedOrigins list means all origins are accepted.
type ServerConfig struct {
	Port               string   `yaml:"port"`
	ReadTimeout        int      `yaml:"readTimeout"`
	WriteTimeout       int      `yaml:"writeTimeout"`
	IdleTimeout        int      `yaml:"idleTimeout"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ResolveConfig holds the fan-out knobs of the portfolio service.
type ResolveConfig struct {
	// MaxConcurrentResolutions caps in-flight wallet resolutions.
	// Zero means unbounded.
	MaxConcurrentResolutions int `yaml:"maxConcurrentResolutions"`
	// ResolveTimeoutMs bounds one whole batch. Zero disables the deadline.
	ResolveTimeoutMs int64 `yaml:"resolveTimeoutMs"`
}

// BitcoinProviderConfig holds the configuration for the Bitcoin data providers.
type BitcoinProviderConfig struct {
	BaseURL              string `yaml:"baseURL"`
	XPubBaseURL          string `yaml:"xpubBaseURL"`
	XPubLookahead        int    `yaml:"xpubLookahead"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
	MaxRetries           int    `yaml:"maxRetries"`
	RetryDelayMs         int64  `yaml:"retryDelayMs"`
}

// EthereumProviderConfig holds the configuration for the Ethereum data provider.
// Backend selects between the explorer HTTP API ("etherscan") and JSON-RPC ("rpc").
type EthereumProviderConfig struct {
	Backend              string   `yaml:"backend"`
	BaseURL              string   `yaml:"baseURL"`
	APIKey               string   `yaml:"apiKey"`
	RPCURL               string   `yaml:"rpcURL"`
	FallbackRPCURLs      []string `yaml:"fallbackRpcUrls"`
	RequestTimeoutMillis int64    `yaml:"requestTimeoutMillis"`
	RateLimit            int      `yaml:"rateLimit"`
	BurstLimit           int      `yaml:"burstLimit"`
	MaxRetries           int      `yaml:"maxRetries"`
	RetryDelayMs         int64    `yaml:"retryDelayMs"`
}

// SolanaProviderConfig holds the configuration for the Solana RPC provider.
type SolanaProviderConfig struct {
	RPCURL               string `yaml:"rpcURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// CardanoProviderConfig holds the configuration for the Cardano data provider.
type CardanoProviderConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ProjectID            string `yaml:"projectID"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
	MaxRetries           int    `yaml:"maxRetries"`
	RetryDelayMs         int64  `yaml:"retryDelayMs"`
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// PriceServiceConfig holds configuration for the price join service.
type PriceServiceConfig struct {
	CacheTTLMinutes        int `yaml:"cacheTTLMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig           `yaml:"server"`
	Logging   LoggingConfig          `yaml:"logging"`
	Swagger   SwaggerConfig          `yaml:"swagger"`
	Resolve   ResolveConfig          `yaml:"resolve"`
	Bitcoin   BitcoinProviderConfig  `yaml:"bitcoin"`
	Ethereum  EthereumProviderConfig `yaml:"ethereum"`
	Solana    SolanaProviderConfig   `yaml:"solana"`
	Cardano   CardanoProviderConfig  `yaml:"cardano"`
	CoinGecko CoinGeckoConfig        `yaml:"coingecko"`
	PriceSvc  PriceServiceConfig     `yaml:"priceService"`
}

// Load reads the YAML configuration file from the given path, unmarshals it,
// applies defaults and overlays the secret-bearing fields from the environment.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 20
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Bitcoin.BaseURL == "" {
		cfg.Bitcoin.BaseURL = "https://blockstream.info/api"
		logrus.Infof("Bitcoin.BaseURL not set, defaulting to %s", cfg.Bitcoin.BaseURL)
	}
	if cfg.Bitcoin.XPubBaseURL == "" {
		cfg.Bitcoin.XPubBaseURL = "https://api.blockchair.com"
		logrus.Infof("Bitcoin.XPubBaseURL not set, defaulting to %s", cfg.Bitcoin.XPubBaseURL)
	}
	if cfg.Bitcoin.XPubLookahead == 0 {
		cfg.Bitcoin.XPubLookahead = 5
	}
	if cfg.Bitcoin.RequestTimeoutMillis == 0 {
		cfg.Bitcoin.RequestTimeoutMillis = 10000
	}

	if cfg.Ethereum.Backend == "" {
		cfg.Ethereum.Backend = "etherscan"
		logrus.Infof("Ethereum.Backend not set, defaulting to %s", cfg.Ethereum.Backend)
	}
	if cfg.Ethereum.BaseURL == "" {
		cfg.Ethereum.BaseURL = "https://api.etherscan.io"
	}
	if cfg.Ethereum.RPCURL == "" {
		cfg.Ethereum.RPCURL = "https://ethereum-rpc.publicnode.com"
	}
	if cfg.Ethereum.RequestTimeoutMillis == 0 {
		cfg.Ethereum.RequestTimeoutMillis = 10000
	}

	if cfg.Solana.RPCURL == "" {
		cfg.Solana.RPCURL = "https://api.mainnet-beta.solana.com"
		logrus.Infof("Solana.RPCURL not set, defaulting to %s", cfg.Solana.RPCURL)
	}
	if cfg.Solana.RequestTimeoutMillis == 0 {
		cfg.Solana.RequestTimeoutMillis = 10000
	}

	if cfg.Cardano.BaseURL == "" {
		cfg.Cardano.BaseURL = "https://cardano-mainnet.blockfrost.io/api/v0"
		logrus.Infof("Cardano.BaseURL not set, defaulting to %s", cfg.Cardano.BaseURL)
	}
	if cfg.Cardano.RequestTimeoutMillis == 0 {
		cfg.Cardano.RequestTimeoutMillis = 10000
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}

	if cfg.PriceSvc.CacheTTLMinutes == 0 {
		cfg.PriceSvc.CacheTTLMinutes = 1
		logrus.Infof("PriceSvc.CacheTTLMinutes not set, defaulting to %d minute(s)", cfg.PriceSvc.CacheTTLMinutes)
	}
	if cfg.PriceSvc.CleanupIntervalMinutes == 0 {
		cfg.PriceSvc.CleanupIntervalMinutes = 5
	}

	// Resolve.MaxConcurrentResolutions and Resolve.ResolveTimeoutMs keep their
	// zero values: unbounded fan-out and no batch deadline.
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if port[0] != ':' {
			port = ":" + port
		}
		cfg.Server.Port = port
		logrus.Infof("Server.Port overridden from environment: %s", cfg.Server.Port)
	}
	if key := os.Getenv("ETHERSCAN_API_KEY"); key != "" {
		cfg.Ethereum.APIKey = key
	}
	if id := os.Getenv("BLOCKFROST_PROJECT_ID"); id != "" {
		cfg.Cardano.ProjectID = id
	}
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		cfg.CoinGecko.APIKey = key
	}
}
