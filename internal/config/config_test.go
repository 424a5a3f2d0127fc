package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
	score "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/scorer"
)

const minimalDB = `
	database:
	  host: localhost
	  name: testdb
	  user: testuser
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverPostgres, cfg.Database.Driver)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "consumer", cfg.Engine.PriceRangeProfile)
				assert.InDelta(t, 0.3, cfg.Engine.MatchConfidenceThreshold, 1e-9)
				assert.Equal(t, "aggregate", cfg.Engine.Mode)
				assert.Equal(t, "auto", cfg.Engine.Strategy)
				assert.Equal(t, normalize.DefaultAliases(), cfg.Engine.ManufacturerAliases)
				assert.InDelta(t, 0.70, cfg.Engine.ConditionMultipliers.New, 1e-9)
				assert.InDelta(t, 0.05, cfg.Engine.ConditionMultipliers.ExpiredReagent, 1e-9)
				assert.Equal(t, score.StructuredWeights(), cfg.Engine.StructuredWeights)
				assert.Equal(t, score.PageWeights(), cfg.Engine.PageWeights)
				assert.Equal(t, 2*time.Second, cfg.Engine.Stagger)
				assert.Equal(t, 15*time.Second, cfg.Sources.Timeout)
				assert.Equal(t, 2, cfg.Sources.Retry.MaxAttempts)
				assert.Equal(t, "EBAY_US", cfg.Sources.Ebay.Marketplace)
				assert.Equal(t, int64(5000), cfg.Sources.Ebay.RateLimit.DailyLimit)
				assert.Equal(t, 24*time.Hour, cfg.Schedule.RepriceInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: minimalDB + `
	  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "sqlite driver",
			yaml: `
	database:
	  driver: sqlite
	  path: /tmp/prices.db
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverSQLite, cfg.Database.Driver)
				assert.Equal(t, "/tmp/prices.db", cfg.Database.Path)
			},
		},
		{
			name: "sqlite driver requires path",
			yaml: `
	database:
	  driver: sqlite
`,
			wantErr: "database.path is required when driver is sqlite",
		},
		{
			name: "unknown driver",
			yaml: `
	database:
	  driver: mysql
`,
			wantErr: `database.driver must be one of: postgres, sqlite (got "mysql")`,
		},
		{
			name: "missing required database.host",
			yaml: `
	database:
	  name: testdb
	  user: testuser
`,
			wantErr: "database.host is required",
		},
		{
			name: "invalid price profile",
			yaml: minimalDB + `
	engine:
	  price_range_profile: bulk
`,
			wantErr: `engine.price_range_profile must be one of: consumer, lab_equipment (got "bulk")`,
		},
		{
			name: "invalid mode",
			yaml: minimalDB + `
	engine:
	  mode: cheapest
`,
			wantErr: `engine.mode must be one of: aggregate, best_match (got "cheapest")`,
		},
		{
			name: "invalid strategy",
			yaml: minimalDB + `
	engine:
	  strategy: magic
`,
			wantErr: `engine.strategy must be one of: auto, structured, page (got "magic")`,
		},
		{
			name: "threshold out of range",
			yaml: minimalDB + `
	engine:
	  match_confidence_threshold: 1.5
`,
			wantErr: "engine.match_confidence_threshold 1.50 must be between 0 and 1",
		},
		{
			name: "weights must sum to one",
			yaml: minimalDB + `
	engine:
	  page_weights:
	    title: 0.5
	    price: 0.1
`,
			wantErr: "engine.page_weights",
		},
		{
			name: "partial multiplier override keeps other defaults",
			yaml: minimalDB + `
	engine:
	  condition_multipliers:
	    used: 0.55
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.InDelta(t, 0.55, cfg.Engine.ConditionMultipliers.Used, 1e-9)
				assert.InDelta(t, 0.70, cfg.Engine.ConditionMultipliers.New, 1e-9)
			},
		},
		{
			name: "custom alias table",
			yaml: minimalDB + `
	engine:
	  manufacturer_aliases:
	    - alias: acme
	      canonical: Acme Labs
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, []normalize.Alias{{Alias: "acme", Canonical: "Acme Labs"}},
					cfg.Engine.ManufacturerAliases)
			},
		},
		{
			name: "alias entries need both fields",
			yaml: minimalDB + `
	engine:
	  manufacturer_aliases:
	    - alias: acme
`,
			wantErr: "engine.manufacturer_aliases[0] requires alias and canonical",
		},
		{
			name: "http source requires id and base_url",
			yaml: minimalDB + `
	sources:
	  http:
	    - supplier_only: true
`,
			wantErr: "sources.http[0].id is required",
		},
		{
			name: "duplicate http source ids",
			yaml: minimalDB + `
	sources:
	  http:
	    - id: shop
	      base_url: http://a
	    - id: shop
	      base_url: http://b
`,
			wantErr: `sources.http[1].id "shop" is duplicated`,
		},
		{
			name: "ebay enabled requires credentials",
			yaml: minimalDB + `
	sources:
	  ebay:
	    enabled: true
`,
			wantErr: "sources.ebay.app_id and sources.ebay.cert_id are required when ebay is enabled",
		},
		{
			name: "webhook enabled requires url",
			yaml: minimalDB + `
	publish:
	  webhook:
	    enabled: true
`,
			wantErr: "publish.webhook.url is required when webhook is enabled",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
	server:
	  host: "127.0.0.1"
	  port: 9090
	  read_timeout: 60s
	database:
	  host: db.example.com
	  port: 5433
	  name: prices
	  user: admin
	  password: pass
	  sslmode: require
	  pool_size: 20
	engine:
	  price_range_profile: lab_equipment
	  match_confidence_threshold: 0.45
	  mode: best_match
	  strategy: structured
	  stagger: 5s
	sources:
	  timeout: 10s
	  concurrency: 3
	  retry:
	    max_attempts: 4
	    base_delay: 1s
	  http:
	    - id: fisher
	      base_url: https://offers.example.com
	      supplier_only: true
	      headers:
	        X-Api-Key: k
	  ebay:
	    enabled: true
	    app_id: my-app-id
	    cert_id: my-cert-id
	publish:
	  webhook:
	    enabled: true
	    url: https://inventory.example.com/hook
	schedule:
	  enabled: true
	  reprice_interval: 12h
	logging:
	  level: debug
	  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, "lab_equipment", cfg.Engine.PriceRangeProfile)
				assert.InDelta(t, 0.45, cfg.Engine.MatchConfidenceThreshold, 1e-9)
				assert.Equal(t, "best_match", cfg.Engine.Mode)
				assert.Equal(t, "structured", cfg.Engine.Strategy)
				assert.Equal(t, 5*time.Second, cfg.Engine.Stagger)
				assert.Equal(t, 10*time.Second, cfg.Sources.Timeout)
				assert.Equal(t, 3, cfg.Sources.Concurrency)
				assert.Equal(t, 4, cfg.Sources.Retry.MaxAttempts)
				assert.Equal(t, time.Second, cfg.Sources.Retry.BaseDelay)
				require.Len(t, cfg.Sources.HTTP, 1)
				assert.Equal(t, "fisher", cfg.Sources.HTTP[0].ID)
				assert.True(t, cfg.Sources.HTTP[0].SupplierOnly)
				assert.Equal(t, "k", cfg.Sources.HTTP[0].Headers["X-Api-Key"])
				assert.InDelta(t, 2.0, cfg.Sources.HTTP[0].RateLimit.PerSecond, 1e-9)
				assert.True(t, cfg.Sources.Ebay.Enabled)
				assert.Equal(t, "my-app-id", cfg.Sources.Ebay.AppID)
				assert.True(t, cfg.Publish.Webhook.Enabled)
				assert.True(t, cfg.Schedule.Enabled)
				assert.Equal(t, 12*time.Hour, cfg.Schedule.RepriceInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			// Set env vars for this test.
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Write YAML to a temp file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(tt.yaml)), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.Path)
	require.NoError(t, validate(cfg))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "testdb",
				User:     "testuser",
				Password: "testpass",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 dbname=testdb user=testuser password=testpass sslmode=disable",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "prices",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 dbname=prices user=admin password=s3cret sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
