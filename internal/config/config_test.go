package config

import (
	"testing"
)

func validRedisConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "redis",
			Addrs:  []string{"localhost:6379"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}

	cfg.Database.DSN = "postgres://localhost/beautyfinder"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with dsn set: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	cfg.Database.Driver = "mongodb"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_StoreTimeoutOverHardBudget(t *testing.T) {
	cfg := validRedisConfig()
	cfg.ApplyDefaults()
	cfg.Discovery.StoreTimeoutMs = 500
	cfg.Discovery.HardBudgetMs = 200
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when store timeout exceeds the hard budget")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Discovery.TargetBudgetMs != 100 {
		t.Errorf("target_budget_ms = %d, want 100", cfg.Discovery.TargetBudgetMs)
	}
	if cfg.Discovery.HardBudgetMs != 200 {
		t.Errorf("hard_budget_ms = %d, want 200", cfg.Discovery.HardBudgetMs)
	}
	if cfg.Discovery.StoreTimeoutMs != 80 {
		t.Errorf("store_timeout_ms = %d, want 80", cfg.Discovery.StoreTimeoutMs)
	}
	if cfg.Discovery.FetchLimit != 1000 {
		t.Errorf("fetch_limit = %d, want 1000", cfg.Discovery.FetchLimit)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("http timeouts = (%d, %d), want 10s", cfg.HTTP.ReadTimeoutSec, cfg.HTTP.WriteTimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Discovery: DiscoveryConfig{
			TargetBudgetMs: 50,
			HardBudgetMs:   150,
			StoreTimeoutMs: 40,
			FetchLimit:     200,
		},
	}
	cfg.ApplyDefaults()

	if cfg.Discovery.TargetBudgetMs != 50 || cfg.Discovery.HardBudgetMs != 150 ||
		cfg.Discovery.StoreTimeoutMs != 40 || cfg.Discovery.FetchLimit != 200 {
		t.Errorf("explicit values must not be overridden: %+v", cfg.Discovery)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BF_TEST_ADDR", "redis-prod:6379")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "addr: ${BF_TEST_ADDR}", "addr: redis-prod:6379"},
		{"unset with default", "addr: ${BF_TEST_MISSING:-localhost:6379}", "addr: localhost:6379"},
		{"set beats default", "addr: ${BF_TEST_ADDR:-fallback}", "addr: redis-prod:6379"},
		{"unset without default", "addr: ${BF_TEST_MISSING}", "addr: "},
		{"no substitution", "port: 8080", "port: 8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
