package engine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/command"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/season"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/taxledger/internal/services/ledger/engine"

// Config configures an Engine.
type Config struct {
	// Owner administers both registries.
	Owner string
	// EnforceSeasonWindow rejects submissions whose tax year has no open
	// season at the submitted height.
	EnforceSeasonWindow bool
	// Clock stamps RecordedAt on events; nil means time.Now.
	Clock func() time.Time
}

// Call is the authenticated context of one operation.
type Call struct {
	Caller    string
	Height    uint64
	RequestID string
}

// registry pairs a state with the lock that serializes its mutations.
type registry[S any, C any] struct {
	mu     sync.RWMutex
	state  S
	decide func(S, command.Meta, C) command.Decision
	fold   func(S, event.Event) error
}

// Engine serializes commands per registry and persists accepted events.
type Engine struct {
	journal storage.EventJournal
	cfg     Config
	tracer  trace.Tracer

	seasons *registry[*season.State, season.Command]
	filings *registry[*filing.State, filing.Command]

	// writeMu orders journal appends across registries. It is always
	// taken after a registry lock and never held while acquiring one.
	writeMu sync.Mutex
	// height is the highest block height of any accepted command.
	height atomic.Uint64
}

// Open builds an engine over journal and replays it into memory.
func Open(ctx context.Context, journal storage.EventJournal, cfg Config) (*Engine, error) {
	if journal == nil {
		return nil, ErrJournalRequired
	}
	cfg.Owner = strings.TrimSpace(cfg.Owner)
	if cfg.Owner == "" {
		return nil, ErrOwnerRequired
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	e := &Engine{
		journal: journal,
		cfg:     cfg,
		tracer:  otel.Tracer(tracerName),
		seasons: &registry[*season.State, season.Command]{
			state:  season.NewState(cfg.Owner),
			decide: season.Decide,
			fold:   season.Fold,
		},
		filings: &registry[*filing.State, filing.Command]{
			state:  filing.NewState(cfg.Owner),
			decide: filing.Decide,
			fold:   filing.Fold,
		},
	}
	if err := e.replay(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) replay(ctx context.Context) error {
	events, err := e.journal.AllEvents(ctx)
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}
	var maxHeight uint64
	for _, evt := range events {
		if err := e.foldReplayed(evt); err != nil {
			return fmt.Errorf("replay seq %d: %w", evt.Seq, err)
		}
		if evt.Height > maxHeight {
			maxHeight = evt.Height
		}
	}
	e.height.Store(maxHeight)
	return nil
}

func (e *Engine) foldReplayed(evt event.Event) error {
	switch evt.Type.Registry() {
	case event.EntitySeason:
		return season.Fold(e.seasons.state, evt)
	case event.EntityFiling:
		return filing.Fold(e.filings.state, evt)
	default:
		return fmt.Errorf("unknown event registry for %s", evt.Type)
	}
}

// Height returns the highest block height accepted so far.
func (e *Engine) Height() uint64 {
	return e.height.Load()
}

func (e *Engine) checkHeight(height uint64) error {
	if height > math.MaxInt64 {
		return ErrHeightOutOfRange.With(map[string]string{"Height": strconv.FormatUint(height, 10)})
	}
	current := e.height.Load()
	if height < current {
		return ErrHeightRegressed.With(heightMeta(height, current))
	}
	return nil
}

// advanceHeight must be called with writeMu held.
func (e *Engine) advanceHeight(height uint64) {
	if height > e.height.Load() {
		e.height.Store(height)
	}
}

// execute runs one command under reg's write lock. check runs after a
// successful decision and before append; view reads the result under the
// same lock. The height is checked again under writeMu so appends from both
// registries stay in non-decreasing height order.
func execute[S any, C any](
	ctx context.Context,
	e *Engine,
	reg *registry[S, C],
	name string,
	call Call,
	cmd C,
	check func() error,
	view func(S),
) (err error) {
	ctx, span := e.tracer.Start(ctx, "ledger."+name, trace.WithAttributes(
		attribute.String("ledger.command", name),
		attribute.Int64("ledger.height", int64(call.Height)),
	))
	defer func() {
		code := apperrors.CodeOf(err)
		if err == nil {
			span.SetAttributes(attribute.String("ledger.outcome", "OK"))
		} else {
			span.SetAttributes(attribute.String("ledger.outcome", string(code)))
			if code == apperrors.CodeUnknown {
				span.RecordError(err)
				span.SetStatus(otelcodes.Error, err.Error())
			}
		}
		span.End()
	}()

	if strings.TrimSpace(call.Caller) == "" {
		return ErrCallerRequired
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := e.checkHeight(call.Height); err != nil {
		return err
	}
	meta := command.Meta{
		Caller:    call.Caller,
		Height:    call.Height,
		RequestID: call.RequestID,
		Now:       e.cfg.Clock,
	}
	decision := reg.decide(reg.state, meta, cmd)
	if decision.Err != nil {
		return decision.Err
	}
	if check != nil {
		if err := check(); err != nil {
			return err
		}
	}
	if err := commitEvents(ctx, e, reg.state, reg.fold, call.Height, decision.Events, span); err != nil {
		return err
	}
	if view != nil {
		view(reg.state)
	}
	return nil
}

// commitEvents appends and folds events under writeMu, then advances the
// accepted height.
func commitEvents[S any](ctx context.Context, e *Engine, state S, fold func(S, event.Event) error, height uint64, events []event.Event, span trace.Span) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.checkHeight(height); err != nil {
		return err
	}
	for _, evt := range events {
		stored, err := e.journal.AppendEvent(ctx, evt)
		if err != nil {
			return fmt.Errorf("append %s: %w", evt.Type, err)
		}
		if err := fold(state, stored); err != nil {
			return fmt.Errorf("fold %s: %w", stored.Type, err)
		}
		span.SetAttributes(attribute.Int64("ledger.seq", int64(stored.Seq)))
	}
	e.advanceHeight(height)
	return nil
}

// ListEvents pages through the journal.
func (e *Engine) ListEvents(ctx context.Context, query storage.EventQuery) (storage.EventPage, error) {
	return e.journal.ListEvents(ctx, query)
}

func yearMeta(year uint32) map[string]string {
	return map[string]string{"Year": strconv.FormatUint(uint64(year), 10)}
}
