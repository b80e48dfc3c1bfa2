package config

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags reads the command line into a partial StructuredConfig. Unset
// flags stay zero so earlier layers win when merged.
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	fs.StringVar(&cfg.Server.HTTPAddress, "a", "", "HTTP address host:port")
	fs.StringVar(&cfg.Server.GRPCAddress, "grpc-address", "", "gRPC health address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout (e.g. 30s)")

	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "database driver (pgx or sqlite3)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN")

	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "token lifetime (e.g. 24h)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "log level (debug, info, warn, ...)")

	fs.StringVar(&cfg.Adapter.NotificationWebhookURL, "webhook-url", "", "notification webhook URL")
	fs.DurationVar(&cfg.Workers.NotificationInterval, "notification-interval", 0, "webhook dispatch interval")
	fs.IntVar(&cfg.Workers.FanOutLimit, "fan-out-limit", 0, "parallel subtask lookups per story")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}
