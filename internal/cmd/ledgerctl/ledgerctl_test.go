package ledgerctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"path/filepath"
	"testing"
	"time"

	ledgerservice "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/ledger"
	server "github.com/louisbranch/taxledger/internal/services/ledger/app"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/season"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	owner    = "ST1OWNER"
	deadline = "ST2DEADLINE"
	auditor  = "ST3AUDITOR"
	taxpayer = "ST4TAXPAYER"
	hash     = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

func startLedger(t *testing.T) string {
	t.Helper()
	srv, err := server.New(context.Background(), server.Config{
		GRPCAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "ledger.db"),
		Owner:    owner,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("serve: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv.Addr()
}

func run(t *testing.T, addr, caller string, height uint64, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	cfg := Config{Addr: addr, Caller: caller, Height: height, Registry: "filing", Timeout: 5 * time.Second, Args: args}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestParseConfig(t *testing.T) {
	t.Setenv("TAXLEDGER_LEDGER_CALLER", owner)

	cfg, err := ParseConfig(flag.NewFlagSet("ledgerctl", flag.ContinueOnError), []string{"-height", "7", "season", "2025"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Caller != owner || cfg.Height != 7 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Addr != "ledger:8095" {
		t.Fatalf("addr = %q, want ledger:8095", cfg.Addr)
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "season" {
		t.Fatalf("args = %v", cfg.Args)
	}
}

func TestParseConfigRequiresCommand(t *testing.T) {
	_, err := ParseConfig(flag.NewFlagSet("ledgerctl", flag.ContinueOnError), nil)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", err)
	}
}

func TestRunSeasonAndFilingFlow(t *testing.T) {
	addr := startLedger(t)

	defined := decode[ledgerservice.SeasonResponse](t, run(t, addr, owner, 10, "define-season", "2025", "100", "200"))
	if defined.Season.Year != 2025 || defined.Season.Status != season.StatusOpen {
		t.Fatalf("defined = %+v", defined.Season)
	}
	closed := decode[ledgerservice.SeasonResponse](t, run(t, addr, owner, 11, "close-season", "2025"))
	if closed.Season.Status != season.StatusClosed {
		t.Fatalf("closed = %+v", closed.Season)
	}
	run(t, addr, owner, 12, "open-season", "2025")
	open := decode[ledgerservice.IsSeasonOpenResponse](t, run(t, addr, "", 150, "season-open", "2025"))
	if !open.Open {
		t.Fatalf("season-open = %+v", open)
	}

	run(t, addr, owner, 150, "initialize", deadline, auditor)
	submitted := decode[ledgerservice.FilingResponse](t, run(t, addr, taxpayer, 151, "submit", "2025", hash, "3", "9"))
	if submitted.Filing.ID != 0 || len(submitted.Filing.DeductionIDs) != 2 {
		t.Fatalf("submitted = %+v", submitted.Filing)
	}
	run(t, addr, auditor, 152, "flag", "0")

	byTaxpayer := decode[ledgerservice.FilingResponse](t, run(t, addr, "", 153, "filing-by", taxpayer, "2025"))
	if byTaxpayer.Filing.Status != filing.StatusUnderAudit {
		t.Fatalf("status = %v, want under audit", byTaxpayer.Filing.Status)
	}
	history := decode[ledgerservice.FilingHistoryResponse](t, run(t, addr, "", 153, "history", "0"))
	if len(history.Entries) != 2 {
		t.Fatalf("history = %+v", history.Entries)
	}

	events := decode[ledgerservice.ListEventsResponse](t, run(t, addr, "", 153, "events", "-filter", `entity_type = "filing"`))
	if len(events.Events) != 2 {
		t.Fatalf("filing events = %d, want 2", len(events.Events))
	}

	audits := decode[ledgerservice.ListAuditEventsResponse](t, run(t, addr, "", 153, "audit", "-limit", "3"))
	if len(audits.Events) != 3 {
		t.Fatalf("audit events = %d, want 3", len(audits.Events))
	}
	var listed bool
	for _, rec := range audits.Events {
		listed = listed || rec.Method == ledgerservice.JournalService_ListEvents_FullMethodName
	}
	if !listed {
		t.Fatalf("audit events = %+v, want the preceding events call", audits.Events)
	}
}

func TestRunRegistryFlag(t *testing.T) {
	addr := startLedger(t)

	var out bytes.Buffer
	cfg := Config{Addr: addr, Caller: owner, Height: 5, Registry: "season", Timeout: 5 * time.Second, Args: []string{"pause"}}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("pause seasons: %v", err)
	}
	paused := decode[ledgerservice.SeasonStatusResponse](t, out.Bytes())
	if !paused.Status.Paused {
		t.Fatalf("season status = %+v", paused.Status)
	}

	filings := decode[ledgerservice.FilingStatusResponse](t, run(t, addr, "", 5, "status"))
	if filings.Status.Paused {
		t.Fatal("filing registry paused by season pause")
	}
}

func TestRunReturnsStatusErrors(t *testing.T) {
	addr := startLedger(t)

	cfg := Config{Addr: addr, Caller: taxpayer, Height: 1, Registry: "filing", Timeout: 5 * time.Second, Args: []string{"define-season", "2025", "1", "2"}}
	err := Run(context.Background(), cfg, nil)
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("code = %v, want PermissionDenied (err=%v)", status.Code(err), err)
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	addr := startLedger(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unknown command", cfg: Config{Args: []string{"explode"}}},
		{name: "missing year", cfg: Config{Args: []string{"season"}}},
		{name: "bad filing id", cfg: Config{Args: []string{"filing", "abc"}}},
		{name: "bad registry", cfg: Config{Registry: "ballots", Args: []string{"status"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Addr = addr
			tc.cfg.Height = 1
			tc.cfg.Timeout = 5 * time.Second
			if err := Run(context.Background(), tc.cfg, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
