// Package ledgerctl implements the operator CLI for the ledger service.
package ledgerctl

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/taxledger/internal/platform/cmd"
	"github.com/louisbranch/taxledger/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/taxledger/internal/platform/grpc"
	"github.com/louisbranch/taxledger/internal/platform/timeouts"
	ledgerservice "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/ledger"
	grpcmeta "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/metadata"
	"google.golang.org/grpc"
)

// Config holds ledgerctl configuration.
type Config struct {
	Addr      string        `env:"LEDGER_ADDR"`
	Caller    string        `env:"LEDGER_CALLER"`
	Height    uint64        `env:"LEDGER_HEIGHT"`
	RequestID string        `env:"LEDGER_REQUEST_ID"`
	Registry  string        `env:"LEDGER_REGISTRY" envDefault:"filing"`
	Timeout   time.Duration `env:"LEDGER_TIMEOUT" envDefault:"5s"`
	Args      []string
}

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage: ledgerctl [flags] <command> [args]")

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Ledger gRPC address")
	fs.StringVar(&cfg.Caller, "caller", cfg.Caller, "Principal issuing the command")
	fs.Uint64Var(&cfg.Height, "height", cfg.Height, "Block height the command executes at")
	fs.StringVar(&cfg.RequestID, "request-id", cfg.RequestID, "Correlation id recorded on journal events")
	fs.StringVar(&cfg.Registry, "registry", cfg.Registry, "Registry targeted by pause, unpause and status: season or filing")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-command timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceLedger)
	cfg.Args = fs.Args()
	if len(cfg.Args) == 0 {
		return Config{}, ErrUsage
	}
	return cfg, nil
}

// Run dials the ledger and executes the configured command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if len(cfg.Args) == 0 {
		return ErrUsage
	}
	if out == nil {
		out = io.Discard
	}
	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout+timeouts.GRPCDial)
	defer cancel()
	conn, err := platformgrpc.DialWithHealth(dialCtx, nil, cfg.Addr, "", timeouts.GRPCDial, nil, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return fmt.Errorf("dial ledger %s: %w", cfg.Addr, err)
	}
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(ctx, cfg.Timeout)
	defer callCancel()
	callCtx = grpcmeta.OutgoingContext(callCtx, cfg.Caller, cfg.Height, cfg.RequestID)

	resp, err := execute(callCtx, conn, cfg.Registry, cfg.Args[0], cfg.Args[1:])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func execute(ctx context.Context, conn grpc.ClientConnInterface, registry, name string, args []string) (any, error) {
	seasons := ledgerservice.NewSeasonServiceClient(conn)
	filings := ledgerservice.NewFilingServiceClient(conn)
	journal := ledgerservice.NewJournalServiceClient(conn)

	switch name {
	case "define-season", "update-season":
		if err := wantArgs(name, args, 3, "<year> <start-block> <end-block>"); err != nil {
			return nil, err
		}
		year, err := parseYear(args[0])
		if err != nil {
			return nil, err
		}
		start, err := parseUint(args[1], "start block")
		if err != nil {
			return nil, err
		}
		end, err := parseUint(args[2], "end block")
		if err != nil {
			return nil, err
		}
		if name == "define-season" {
			return seasons.DefineSeason(ctx, &ledgerservice.DefineSeasonRequest{Year: year, StartBlock: start, EndBlock: end})
		}
		return seasons.UpdateSeasonDates(ctx, &ledgerservice.UpdateSeasonDatesRequest{Year: year, StartBlock: start, EndBlock: end})
	case "open-season", "close-season", "season", "season-open":
		if err := wantArgs(name, args, 1, "<year>"); err != nil {
			return nil, err
		}
		year, err := parseYear(args[0])
		if err != nil {
			return nil, err
		}
		req := &ledgerservice.SeasonYearRequest{Year: year}
		switch name {
		case "open-season":
			return seasons.OpenSeason(ctx, req)
		case "close-season":
			return seasons.CloseSeason(ctx, req)
		case "season":
			return seasons.GetSeason(ctx, req)
		default:
			return seasons.IsSeasonOpen(ctx, req)
		}
	case "seasons":
		return seasons.ListSeasons(ctx, &ledgerservice.ListSeasonsRequest{})
	case "initialize":
		if err := wantArgs(name, args, 2, "<deadline-authority> <audit-authority>"); err != nil {
			return nil, err
		}
		return filings.Initialize(ctx, &ledgerservice.InitializeRequest{DeadlineAuthority: args[0], AuditAuthority: args[1]})
	case "submit":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: submit <tax-year> <content-hash> [deduction-id...]", ErrUsage)
		}
		year, err := parseYear(args[0])
		if err != nil {
			return nil, err
		}
		deductions := make([]uint64, 0, len(args)-2)
		for _, raw := range args[2:] {
			deduction, err := parseUint(raw, "deduction id")
			if err != nil {
				return nil, err
			}
			deductions = append(deductions, deduction)
		}
		return filings.SubmitFiling(ctx, &ledgerservice.SubmitFilingRequest{TaxYear: year, ContentHash: args[1], DeductionIDs: deductions})
	case "flag", "approve", "dispute", "filing", "history":
		if err := wantArgs(name, args, 1, "<filing-id>"); err != nil {
			return nil, err
		}
		filingID, err := parseUint(args[0], "filing id")
		if err != nil {
			return nil, err
		}
		req := &ledgerservice.FilingIDRequest{FilingID: filingID}
		switch name {
		case "flag":
			return filings.FlagForAudit(ctx, req)
		case "approve":
			return filings.ApproveFiling(ctx, req)
		case "dispute":
			return filings.DisputeFiling(ctx, req)
		case "filing":
			return filings.GetFiling(ctx, req)
		default:
			return filings.GetFilingHistory(ctx, req)
		}
	case "filing-by":
		if err := wantArgs(name, args, 2, "<taxpayer> <tax-year>"); err != nil {
			return nil, err
		}
		year, err := parseYear(args[1])
		if err != nil {
			return nil, err
		}
		return filings.GetFilingByTaxpayerYear(ctx, &ledgerservice.TaxpayerYearRequest{Taxpayer: args[0], TaxYear: year})
	case "pause", "unpause", "status":
		if err := wantArgs(name, args, 0, ""); err != nil {
			return nil, err
		}
		return registryCall(ctx, seasons, filings, registry, name)
	case "events":
		return listEvents(ctx, journal, args)
	case "audit":
		return listAuditEvents(ctx, journal, args)
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}
}

func registryCall(ctx context.Context, seasons *ledgerservice.SeasonServiceClient, filings *ledgerservice.FilingServiceClient, registry, name string) (any, error) {
	req := &ledgerservice.StatusRequest{}
	switch strings.ToLower(strings.TrimSpace(registry)) {
	case "season":
		switch name {
		case "pause":
			return seasons.Pause(ctx, req)
		case "unpause":
			return seasons.Unpause(ctx, req)
		default:
			return seasons.GetStatus(ctx, req)
		}
	case "filing":
		switch name {
		case "pause":
			return filings.Pause(ctx, req)
		case "unpause":
			return filings.Unpause(ctx, req)
		default:
			return filings.GetStatus(ctx, req)
		}
	default:
		return nil, fmt.Errorf("%w: registry must be season or filing, got %q", ErrUsage, registry)
	}
}

func listEvents(ctx context.Context, journal *ledgerservice.JournalServiceClient, args []string) (any, error) {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	req := &ledgerservice.ListEventsRequest{}
	fs.Uint64Var(&req.AfterSeq, "after", 0, "Return events after this sequence")
	fs.IntVar(&req.PageSize, "page-size", 0, "Maximum events per page")
	fs.StringVar(&req.Filter, "filter", "", "AIP-160 event filter")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: events [-after N] [-page-size N] [-filter EXPR]: %v", ErrUsage, err)
	}
	return journal.ListEvents(ctx, req)
}

func listAuditEvents(ctx context.Context, journal *ledgerservice.JournalServiceClient, args []string) (any, error) {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	req := &ledgerservice.ListAuditEventsRequest{}
	fs.IntVar(&req.Limit, "limit", 0, "Maximum audit events, newest first")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: audit [-limit N]: %v", ErrUsage, err)
	}
	return journal.ListAuditEvents(ctx, req)
}

func wantArgs(name string, args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s %s", ErrUsage, name, usage)
	}
	return nil
}

func parseYear(raw string) (uint32, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse year %q: %w", raw, err)
	}
	return uint32(value), nil
}

func parseUint(raw, label string) (uint64, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", label, raw, err)
	}
	return value, nil
}
