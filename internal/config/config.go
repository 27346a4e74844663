package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	Log     LogConfig
	Tracing TracingConfig
}

// LogConfig controls the slog handler and optional file rotation.
type LogConfig struct {
	Level      string
	Format     string
	File       string // empty logs to stdout
	MaxSizeMB  int
	MaxBackups int
}

// TracingConfig controls the OpenTelemetry tracer provider.
type TracingConfig struct {
	Enabled     bool
	Exporter    string // "stdout" or "otlp"
	Endpoint    string
	SampleRatio float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	tracingCfg, err := loadTracingConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "eaip-raw-sections"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "eaip-parsed-sections"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "eaip-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		Log:                logCfg,
		Tracing:            tracingCfg,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.KafkaSourceTopic == cfg.KafkaSinkTopic {
		return nil, errors.New("KAFKA_SINK_TOPIC must differ from KAFKA_SOURCE_TOPIC")
	}

	return cfg, nil
}

func loadLogConfig() (LogConfig, error) {
	cfg := LogConfig{
		Level:  strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		File:   os.Getenv("LOG_FILE"),
	}

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.Format)
	}

	var err error
	if cfg.MaxSizeMB, err = parsePositiveInt("LOG_MAX_SIZE_MB", 64); err != nil {
		return LogConfig{}, err
	}
	if cfg.MaxBackups, err = parsePositiveInt("LOG_MAX_BACKUPS", 3); err != nil {
		return LogConfig{}, err
	}
	return cfg, nil
}

func loadTracingConfig() (TracingConfig, error) {
	cfg := TracingConfig{
		Exporter: strings.ToLower(sharedcfg.EnvOrDefault("TRACING_EXPORTER", "stdout")),
		Endpoint: sharedcfg.EnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	enabled, err := strconv.ParseBool(sharedcfg.EnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return TracingConfig{}, errors.New("invalid TRACING_ENABLED")
	}
	cfg.Enabled = enabled

	switch cfg.Exporter {
	case "stdout", "otlp":
	default:
		return TracingConfig{}, fmt.Errorf("invalid TRACING_EXPORTER %q", cfg.Exporter)
	}

	ratio, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("TRACING_SAMPLE_RATIO", "1.0"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return TracingConfig{}, errors.New("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}
	cfg.SampleRatio = ratio

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
