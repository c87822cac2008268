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

// DefaultSheetURL is the CSV export of the store listing spreadsheet.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/1aRSQQrOlxztJpq2QpJ_mMIjUNvXBWBjUFikoASSF-v0/export?format=csv"

// Supported source encodings.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

// Config holds all generator settings, populated from environment variables.
type Config struct {
	SheetURL     string
	SheetFile    string
	CSVEncoding  string
	FetchTimeout time.Duration

	OutputDir      string
	TemplateList   string
	TemplateDetail string

	LogLevel        string
	LogFormat       string
	PreviewAddr     string
	ShutdownTimeout time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Kafka store feed configuration. Disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	encoding, err := parseEncoding(sharedcfg.EnvOrDefault("CSV_ENCODING", EncodingUTF8))
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		SheetURL:     sharedcfg.EnvOrDefault("SHEET_CSV_URL", DefaultSheetURL),
		SheetFile:    os.Getenv("SHEET_CSV_FILE"),
		CSVEncoding:  encoding,
		FetchTimeout: fetchTimeout,

		OutputDir:      sharedcfg.EnvOrDefault("OUTPUT_DIR", "dist"),
		TemplateList:   os.Getenv("TEMPLATE_LIST"),
		TemplateDetail: os.Getenv("TEMPLATE_DETAIL"),

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		PreviewAddr:     os.Getenv("PREVIEW_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers: parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "store-directory"),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// FeedEnabled reports whether stores are published to Kafka.
func (c *Config) FeedEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseEncoding(s string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "utf_8", "utf8":
		return EncodingUTF8, nil
	case "shift_jis", "sjis", "cp932":
		return EncodingShiftJIS, nil
	default:
		return "", fmt.Errorf("invalid CSV_ENCODING %q: want utf-8 or shift_jis", s)
	}
}

// parseBrokers splits a comma-separated broker list. An empty string yields
// no brokers, which disables the feed.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
