package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	RedisAddress     string
	SolanaRPCURL     string
	MasterWallet     string
	AiraloBaseURL    string
	AiraloClientID   string
	AiraloClientKey  string
	PollInterval     time.Duration
	MaxWatchDuration time.Duration
	ShutdownTimeout  time.Duration
	MockProvisioning bool
	RecoverWatchers  bool
}

const (
	defaultRunAddress       = ":8080"
	defaultRedisAddress     = "localhost:6379"
	defaultAiraloBaseURL    = "https://partners-api.airalo.com"
	defaultPollInterval     = 30 * time.Second
	defaultMaxWatchDuration = 10 * time.Minute
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		RedisAddress:     getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		SolanaRPCURL:     getString(lookup, "SOLANA_RPC_URL", ""),
		MasterWallet:     getString(lookup, "MASTER_WALLET_PUBLIC_KEY", ""),
		AiraloBaseURL:    getString(lookup, "AIRALO_CLIENT_URL", defaultAiraloBaseURL),
		AiraloClientID:   getString(lookup, "AIRALO_CLIENT_ID", ""),
		AiraloClientKey:  getString(lookup, "AIRALO_CLIENT_SECRET", ""),
		PollInterval:     getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPollInterval),
		MaxWatchDuration: getDuration(lookup, "PAYMENT_WATCH_DURATION", defaultMaxWatchDuration),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MockProvisioning: getBool(lookup, "MOCK_COMPLETE_ORDER_ENABLED", false),
		RecoverWatchers:  getBool(lookup, "RECOVER_WATCHERS", true),
	}

	fs := flag.NewFlagSet("backend", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr  = cfg.PollInterval.String()
		watchDurationStr = cfg.MaxWatchDuration.String()
		shutdownStr      = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the cache")
	fs.StringVar(&cfg.SolanaRPCURL, "rpc", cfg.SolanaRPCURL, "Solana JSON-RPC endpoint")
	fs.StringVar(&cfg.MasterWallet, "master-wallet", cfg.MasterWallet, "Master wallet public key for fund aggregation")
	fs.StringVar(&cfg.AiraloBaseURL, "airalo-url", cfg.AiraloBaseURL, "Airalo partner API base URL")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment checks per order")
	fs.StringVar(&watchDurationStr, "watch-duration", watchDurationStr, "How long an unpaid order is watched before failing")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.MockProvisioning, "mock-provisioning", cfg.MockProvisioning, "Generate fake sims instead of calling the provider")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.MaxWatchDuration, err = time.ParseDuration(watchDurationStr); err != nil {
		return nil, fmt.Errorf("invalid watch duration: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.MaxWatchDuration <= 0 {
		cfg.MaxWatchDuration = defaultMaxWatchDuration
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SolanaRPCURL == "" {
		return nil, fmt.Errorf("solana RPC URL must be provided")
	}

	if cfg.MasterWallet == "" {
		return nil, fmt.Errorf("master wallet public key must be provided")
	}

	if !cfg.MockProvisioning && (cfg.AiraloClientID == "" || cfg.AiraloClientKey == "") {
		return nil, fmt.Errorf("airalo client credentials must be provided unless mock provisioning is enabled")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
