package ledger

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("TAXLEDGER_LEDGER_OWNER", "ST1OWNER")

	cfg, err := ParseConfig(flag.NewFlagSet("ledger", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8095 || cfg.HTTPPort != 8096 {
		t.Fatalf("ports = %d/%d, want 8095/8096", cfg.Port, cfg.HTTPPort)
	}
	if cfg.DBPath != "data/ledger.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.Owner != "ST1OWNER" || cfg.EnforceSeasonWindow {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TAXLEDGER_LEDGER_PORT", "9000")
	t.Setenv("TAXLEDGER_LEDGER_OWNER", "ST1OWNER")
	t.Setenv("TAXLEDGER_LEDGER_ENFORCE_SEASON_WINDOW", "true")

	cfg, err := ParseConfig(flag.NewFlagSet("ledger", flag.ContinueOnError), []string{"-port", "9100", "-owner", "ST2OWNER", "-http-port", "0"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 || cfg.Owner != "ST2OWNER" || !cfg.EnforceSeasonWindow {
		t.Fatalf("cfg = %+v", cfg)
	}
	server := cfg.ServerConfig()
	if server.GRPCAddr != ":9100" || server.HTTPAddr != "" {
		t.Fatalf("server cfg = %+v", server)
	}
}

func TestParseConfigRequiresOwner(t *testing.T) {
	t.Setenv("TAXLEDGER_LEDGER_OWNER", "")
	if _, err := ParseConfig(flag.NewFlagSet("ledger", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected owner error")
	}
}

func TestParseConfigRejectsBadPort(t *testing.T) {
	t.Setenv("TAXLEDGER_LEDGER_PORT", "not-a-port")
	if _, err := ParseConfig(flag.NewFlagSet("ledger", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected env parse error")
	}
}
