package app

import (
	"flag"
	"os"
)

type Config struct {
	AuthURL         string
	TransactionsURL string
	BalanceURL      string
	StatePath       string
	LogLevel        string
}

func NewConfigFromFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.AuthURL, "auth-url", "http://localhost:8080/api/auth", "Auth endpoint URL (env: RUBANK_AUTH_URL)")
	flag.StringVar(&cfg.TransactionsURL, "transactions-url", "http://localhost:8080/api/transactions", "Transactions endpoint URL (env: RUBANK_TRANSACTIONS_URL)")
	flag.StringVar(&cfg.BalanceURL, "balance-url", "http://localhost:8080/api/balance", "Balance endpoint URL (env: RUBANK_BALANCE_URL)")
	flag.StringVar(&cfg.StatePath, "state", "", "Session state file (default: user config dir) (env: RUBANK_STATE)")
	flag.StringVar(&cfg.LogLevel, "l", "warn", "Log level (debug|info|warn|error) (env: RUBANK_LOG_LEVEL)")
	flag.Parse()

	cfg.applyEnvVars()

	return cfg
}

func (c *Config) applyEnvVars() {
	if v := os.Getenv("RUBANK_AUTH_URL"); v != "" {
		c.AuthURL = v
	}
	if v := os.Getenv("RUBANK_TRANSACTIONS_URL"); v != "" {
		c.TransactionsURL = v
	}
	if v := os.Getenv("RUBANK_BALANCE_URL"); v != "" {
		c.BalanceURL = v
	}
	if v := os.Getenv("RUBANK_STATE"); v != "" {
		c.StatePath = v
	}
	if v := os.Getenv("RUBANK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
