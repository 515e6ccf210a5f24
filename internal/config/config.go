// Package config reads textray settings from command-line flags, the
// environment and an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server's settings.
type Config struct {
	Port     int
	HostKey  string
	WSAddr   string
	Level    string
	LogLevel slog.Level

	Trace bool
	// TraceRatio is the share of sessions traced when Trace is set.
	TraceRatio float64

	KeepAlive time.Duration
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:       2222,
		HostKey:    "server_host_key",
		LogLevel:   slog.LevelInfo,
		TraceRatio: 1,
		KeepAlive:  30 * time.Second,
	}
}

// Load parses args over the environment. When dotenv names a file, its
// variables are added to the process environment first without overriding
// variables already set; a missing file is not an error. The file's other
// variables, such as OTEL_EXPORTER_OTLP_HEADERS, stay visible to the rest of
// the process.
func Load(args []string, dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", dotenv, err)
		}
	}

	cfg := Defaults()
	if err := cfg.fromEnv(); err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet("textray", flag.ContinueOnError)
	flags.IntVar(&cfg.Port, "port", cfg.Port, "SSH server port")
	flags.StringVar(&cfg.HostKey, "key", cfg.HostKey, "Path to the PEM-encoded host key (generated if absent)")
	flags.StringVar(&cfg.WSAddr, "ws", cfg.WSAddr, "Websocket listen address, e.g. :8080 (empty disables)")
	flags.StringVar(&cfg.Level, "level", cfg.Level, "Level JSON file (empty uses the built-in courtyard)")
	flags.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	flags.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Export OpenTelemetry traces over OTLP/HTTP")
	flags.Float64Var(&cfg.TraceRatio, "trace-ratio", cfg.TraceRatio, "Share of sessions traced, 0 to 1")
	flags.DurationVar(&cfg.KeepAlive, "keepalive", cfg.KeepAlive, "Keepalive interval for network sessions (0 disables)")
	if err := flags.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	if v, ok := os.LookupEnv("TEXTRAY_PORT"); ok {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: TEXTRAY_PORT: %w", err)
		}
		c.Port = p
	}
	if v, ok := os.LookupEnv("TEXTRAY_HOST_KEY"); ok {
		c.HostKey = v
	}
	if v, ok := os.LookupEnv("TEXTRAY_WS_ADDR"); ok {
		c.WSAddr = v
	}
	if v, ok := os.LookupEnv("TEXTRAY_LEVEL"); ok {
		c.Level = v
	}
	if v, ok := os.LookupEnv("TEXTRAY_LOG_LEVEL"); ok {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: TEXTRAY_LOG_LEVEL: %w", err)
		}
	}
	if v, ok := os.LookupEnv("TEXTRAY_TRACE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: TEXTRAY_TRACE: %w", err)
		}
		c.Trace = b
	}
	if v, ok := os.LookupEnv("TEXTRAY_TRACE_RATIO"); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: TEXTRAY_TRACE_RATIO: %w", err)
		}
		c.TraceRatio = r
	}
	if v, ok := os.LookupEnv("TEXTRAY_KEEPALIVE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TEXTRAY_KEEPALIVE: %w", err)
		}
		c.KeepAlive = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.TraceRatio < 0 || c.TraceRatio > 1 {
		return fmt.Errorf("config: trace ratio %v outside [0,1]", c.TraceRatio)
	}
	if c.KeepAlive < 0 {
		return fmt.Errorf("config: negative keepalive %v", c.KeepAlive)
	}
	if c.HostKey == "" {
		return errors.New("config: host key path is empty")
	}
	return nil
}

// Logger returns a text logger on stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
