// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	score "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/scorer"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Engine   EngineConfig   `yaml:"engine"`
	Sources  SourcesConfig  `yaml:"sources"`
	Publish  PublishConfig  `yaml:"publish"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines result store connection settings.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // postgres, sqlite
	Path     string `yaml:"path"`   // sqlite only
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EngineConfig defines the matching and pricing parameters.
type EngineConfig struct {
	PriceRangeProfile        string              `yaml:"price_range_profile"` // consumer, lab_equipment
	MatchConfidenceThreshold float64             `yaml:"match_confidence_threshold"`
	Mode                     string              `yaml:"mode"`     // aggregate, best_match
	Strategy                 string              `yaml:"strategy"` // auto, structured, page
	ManufacturerAliases      []normalize.Alias   `yaml:"manufacturer_aliases"`
	ConditionMultipliers     pricing.Multipliers `yaml:"condition_multipliers"`
	StructuredWeights        score.Weights       `yaml:"structured_weights"`
	PageWeights              score.Weights       `yaml:"page_weights"`
	Stagger                  time.Duration       `yaml:"stagger"`
}

// SourcesConfig defines the external price sources and how they are queried.
type SourcesConfig struct {
	Timeout     time.Duration      `yaml:"timeout"`
	Concurrency int                `yaml:"concurrency"`
	Retry       RetryConfig        `yaml:"retry"`
	HTTP        []HTTPSourceConfig `yaml:"http"`
	Ebay        EbayConfig         `yaml:"ebay"`
}

// RetryConfig defines the per-source retry policy.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
	Jitter      float64       `yaml:"jitter"`
}

// HTTPSourceConfig defines one JSON offers API.
type HTTPSourceConfig struct {
	ID           string            `yaml:"id"`
	BaseURL      string            `yaml:"base_url"`
	Headers      map[string]string `yaml:"headers"`
	SupplierOnly bool              `yaml:"supplier_only"`
	RateLimit    RateLimitConfig   `yaml:"rate_limit"`
}

// EbayConfig defines eBay Browse API settings.
type EbayConfig struct {
	Enabled     bool            `yaml:"enabled"`
	AppID       string          `yaml:"app_id"`
	CertID      string          `yaml:"cert_id"`
	TokenURL    string          `yaml:"token_url"`
	BrowseURL   string          `yaml:"browse_url"`
	Marketplace string          `yaml:"marketplace"`
	CategoryID  string          `yaml:"category_id"`
	Limit       int             `yaml:"limit"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines source rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// PublishConfig defines where pricing results are delivered.
type PublishConfig struct {
	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	Enabled         bool          `yaml:"enabled"`
	RepriceInterval time.Duration `yaml:"reprice_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config content, performing environment variable
// substitution and validation.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied and a local
// SQLite store, for commands that run without a config file.
func Default() *Config {
	cfg := &Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "price-matcher.db"}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEngineDefaults(&cfg.Engine)
	applySourcesDefaults(&cfg.Sources)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEngineDefaults(e *EngineConfig) {
	if e.PriceRangeProfile == "" {
		e.PriceRangeProfile = string(domain.ProfileConsumer)
	}
	if e.MatchConfidenceThreshold == 0 {
		e.MatchConfidenceThreshold = score.DefaultThreshold
	}
	if e.Mode == "" {
		e.Mode = string(domain.ModeAggregate)
	}
	if e.Strategy == "" {
		e.Strategy = score.StrategyAuto
	}
	if e.ManufacturerAliases == nil {
		e.ManufacturerAliases = normalize.DefaultAliases()
	}
	applyMultiplierDefaults(&e.ConditionMultipliers)
	if e.StructuredWeights.IsZero() {
		e.StructuredWeights = score.StructuredWeights()
	}
	if e.PageWeights.IsZero() {
		e.PageWeights = score.PageWeights()
	}
	if e.Stagger == 0 {
		e.Stagger = 2 * time.Second
	}
}

// applyMultiplierDefaults fills each unset multiplier individually so a
// config can override a single condition.
func applyMultiplierDefaults(m *pricing.Multipliers) {
	d := pricing.DefaultMultipliers()
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&m.New, d.New},
		{&m.Used, d.Used},
		{&m.Damaged, d.Damaged},
		{&m.Unknown, d.Unknown},
		{&m.ExpiredReagent, d.ExpiredReagent},
		{&m.ExpiredEquipment, d.ExpiredEquipment},
	} {
		if *f.v == 0 {
			*f.v = f.def
		}
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.Timeout == 0 {
		s.Timeout = 15 * time.Second
	}
	if s.Retry.MaxAttempts == 0 {
		s.Retry.MaxAttempts = 2
	}
	if s.Retry.BaseDelay == 0 {
		s.Retry.BaseDelay = 500 * time.Millisecond
	}
	if s.Retry.MaxDelay == 0 {
		s.Retry.MaxDelay = 5 * time.Second
	}
	if s.Retry.Jitter == 0 {
		s.Retry.Jitter = 0.2
	}
	for i := range s.HTTP {
		applyRateLimitDefaults(&s.HTTP[i].RateLimit, 2, 4, 0)
	}
	applyEbayDefaults(&s.Ebay)
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.Limit == 0 {
		e.Limit = 20
	}
	applyRateLimitDefaults(&e.RateLimit, 5, 10, 5000)
}

func applyRateLimitDefaults(r *RateLimitConfig, perSecond float64, burst int, daily int64) {
	if r.PerSecond == 0 {
		r.PerSecond = perSecond
	}
	if r.Burst == 0 {
		r.Burst = burst
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = daily
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RepriceInterval == 0 {
		s.RepriceInterval = 24 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateDatabase(&cfg.Database)...)
	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateSources(&cfg.Sources)...)

	if cfg.Publish.Webhook.Enabled && cfg.Publish.Webhook.URL == "" {
		errs = append(errs, fmt.Errorf("publish.webhook.url is required when webhook is enabled"))
	}

	return errors.Join(errs...)
}

func validateDatabase(d *DatabaseConfig) []error {
	var errs []error
	switch d.Driver {
	case DriverPostgres:
		if d.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required"))
		}
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
		if d.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
	case DriverSQLite:
		if d.Path == "" {
			errs = append(errs, fmt.Errorf("database.path is required when driver is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"database.driver must be one of: postgres, sqlite (got %q)", d.Driver,
		))
	}
	return errs
}

func validateEngine(e *EngineConfig) []error {
	var errs []error

	switch domain.PriceProfile(e.PriceRangeProfile) {
	case domain.ProfileConsumer, domain.ProfileLabEquipment:
	default:
		errs = append(errs, fmt.Errorf(
			"engine.price_range_profile must be one of: consumer, lab_equipment (got %q)",
			e.PriceRangeProfile,
		))
	}

	switch domain.Mode(e.Mode) {
	case domain.ModeAggregate, domain.ModeBestMatch:
	default:
		errs = append(errs, fmt.Errorf(
			"engine.mode must be one of: aggregate, best_match (got %q)", e.Mode,
		))
	}

	switch e.Strategy {
	case score.StrategyAuto, score.StrategyStructured, score.StrategyPage:
	default:
		errs = append(errs, fmt.Errorf(
			"engine.strategy must be one of: auto, structured, page (got %q)", e.Strategy,
		))
	}

	if e.MatchConfidenceThreshold < 0 || e.MatchConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf(
			"engine.match_confidence_threshold %.2f must be between 0 and 1",
			e.MatchConfidenceThreshold,
		))
	}

	for i, a := range e.ManufacturerAliases {
		if a.Alias == "" || a.Canonical == "" {
			errs = append(errs, fmt.Errorf(
				"engine.manufacturer_aliases[%d] requires alias and canonical", i,
			))
		}
	}

	if err := e.ConditionMultipliers.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine.condition_multipliers: %w", err))
	}
	if err := e.StructuredWeights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine.structured_weights: %w", err))
	}
	if err := e.PageWeights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine.page_weights: %w", err))
	}

	return errs
}

func validateSources(s *SourcesConfig) []error {
	var errs []error

	if s.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("sources.concurrency must be >= 0"))
	}
	if s.Retry.Jitter < 0 || s.Retry.Jitter > 1 {
		errs = append(errs, fmt.Errorf("sources.retry.jitter must be between 0 and 1"))
	}

	seen := make(map[string]bool, len(s.HTTP))
	for i, h := range s.HTTP {
		if h.ID == "" {
			errs = append(errs, fmt.Errorf("sources.http[%d].id is required", i))
		} else if seen[h.ID] {
			errs = append(errs, fmt.Errorf("sources.http[%d].id %q is duplicated", i, h.ID))
		}
		seen[h.ID] = true
		if h.BaseURL == "" {
			errs = append(errs, fmt.Errorf("sources.http[%d].base_url is required", i))
		}
	}

	if s.Ebay.Enabled && (s.Ebay.AppID == "" || s.Ebay.CertID == "") {
		errs = append(errs, fmt.Errorf(
			"sources.ebay.app_id and sources.ebay.cert_id are required when ebay is enabled",
		))
	}

	return errs
}
