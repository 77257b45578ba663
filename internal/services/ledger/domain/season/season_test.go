package season

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/command"
)

const (
	owner    = "ST1OWNER"
	stranger = "ST1STRANGER"
)

func run(t *testing.T, state *State, caller string, height uint64, cmd Command) error {
	t.Helper()
	decision := Decide(state, command.Meta{Caller: caller, Height: height}, cmd)
	if decision.Err != nil {
		if len(decision.Events) != 0 {
			t.Fatalf("rejected decision carried %d events", len(decision.Events))
		}
		return decision.Err
	}
	for _, evt := range decision.Events {
		if err := Fold(state, evt); err != nil {
			t.Fatalf("fold %s: %v", evt.Type, err)
		}
	}
	return nil
}

func mustRun(t *testing.T, state *State, caller string, height uint64, cmd Command) {
	t.Helper()
	if err := run(t, state, caller, height, cmd); err != nil {
		t.Fatalf("%T: %v", cmd, err)
	}
}

func TestDefineSeasonRoundTrip(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 162500})

	got, ok := state.Get(2025)
	if !ok {
		t.Fatal("expected season 2025")
	}
	want := Season{Year: 2025, StartBlock: 1100, EndBlock: 162500, Status: StatusOpen, CreatedAt: 1000, UpdatedAt: 1000}
	if got != want {
		t.Fatalf("season = %+v, want %+v", got, want)
	}
}

func TestDefineSeasonRejectsOldYears(t *testing.T) {
	windows := []struct{ height, start, end uint64 }{
		{height: 10, start: 100, end: 200},
		{height: 0, start: 1, end: 1 + MaxSpan},
		{height: 5000, start: 100, end: 50},
	}
	for _, year := range []uint32{0, 1999, 2019, 2020} {
		for _, w := range windows {
			state := NewState(owner)
			err := run(t, state, owner, w.height, Define{Year: year, StartBlock: w.start, EndBlock: w.end})
			if !errors.Is(err, ErrInvalidDates) {
				t.Fatalf("year %d window %+v err = %v, want ErrInvalidDates", year, w, err)
			}
		}
	}
}

func TestDefineSeasonWindowRules(t *testing.T) {
	tests := []struct {
		name   string
		start  uint64
		end    uint64
		height uint64
		ok     bool
	}{
		{name: "span exactly max", start: 1001, end: 1001 + MaxSpan, height: 1000, ok: true},
		{name: "span over max", start: 1001, end: 1001 + MaxSpan + 1, height: 1000},
		{name: "end equals start", start: 2000, end: 2000, height: 1000},
		{name: "end before start", start: 3000, end: 2000, height: 1000},
		{name: "start equals height", start: 1000, end: 2000, height: 1000},
		{name: "start in past", start: 500, end: 2000, height: 1000},
		{name: "start right after height", start: 1001, end: 1002, height: 1000, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(owner)
			err := run(t, state, owner, tt.height, Define{Year: 2025, StartBlock: tt.start, EndBlock: tt.end})
			if tt.ok && err != nil {
				t.Fatalf("err = %v, want success", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDates) {
				t.Fatalf("err = %v, want ErrInvalidDates", err)
			}
		})
	}
}

func TestDefineSeasonPrecedence(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})

	// Duplicate year with invalid dates reports the duplicate.
	if err := run(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1, EndBlock: 0}); !errors.Is(err, ErrYearExists) {
		t.Fatalf("err = %v, want ErrYearExists", err)
	}
	if err := run(t, state, stranger, 1000, Define{Year: 2025, StartBlock: 1, EndBlock: 0}); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}

	mustRun(t, state, owner, 1000, Pause{})
	if err := run(t, state, stranger, 1000, Define{Year: 2026, StartBlock: 1100, EndBlock: 2000}); !errors.Is(err, access.ErrPaused) {
		t.Fatalf("paused non-owner err = %v, want ErrPaused", err)
	}
}

func TestOwnerOperationsWhilePausedReportPause(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})
	mustRun(t, state, owner, 1000, Pause{})

	cmds := []Command{
		Define{Year: 2026, StartBlock: 1100, EndBlock: 2000},
		Open{Year: 2025},
		Close{Year: 2025},
		UpdateDates{Year: 2025, StartBlock: 1200, EndBlock: 2200},
	}
	for _, cmd := range cmds {
		if err := run(t, state, stranger, 1000, cmd); !errors.Is(err, access.ErrPaused) {
			t.Fatalf("%T err = %v, want ErrPaused", cmd, err)
		}
	}
}

func TestOpenCloseAreStrict(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})

	if err := run(t, state, owner, 1001, Open{Year: 2025}); !errors.Is(err, ErrSeasonNotOpen) {
		t.Fatalf("open open season err = %v, want ErrSeasonNotOpen", err)
	}
	mustRun(t, state, owner, 1002, Close{Year: 2025})
	if got, _ := state.Get(2025); got.Status != StatusClosed || got.UpdatedAt != 1002 {
		t.Fatalf("after close = %+v", got)
	}
	if err := run(t, state, owner, 1003, Close{Year: 2025}); !errors.Is(err, ErrSeasonClosed) {
		t.Fatalf("close closed season err = %v, want ErrSeasonClosed", err)
	}
	mustRun(t, state, owner, 1004, Open{Year: 2025})
	if got, _ := state.Get(2025); got.Status != StatusOpen || got.UpdatedAt != 1004 || got.CreatedAt != 1000 {
		t.Fatalf("after reopen = %+v", got)
	}
}

func TestMissingYear(t *testing.T) {
	state := NewState(owner)
	for _, cmd := range []Command{Open{Year: 2030}, Close{Year: 2030}, UpdateDates{Year: 2030, StartBlock: 1100, EndBlock: 2000}} {
		if err := run(t, state, owner, 1000, cmd); !errors.Is(err, ErrYearNotFound) {
			t.Fatalf("%T err = %v, want ErrYearNotFound", cmd, err)
		}
		if err := run(t, state, stranger, 1000, cmd); !errors.Is(err, access.ErrNotAuthorized) {
			t.Fatalf("%T stranger err = %v, want ErrNotAuthorized", cmd, err)
		}
	}
}

func TestUpdateDates(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})
	mustRun(t, state, owner, 1001, Close{Year: 2025})

	if err := run(t, state, owner, 1500, UpdateDates{Year: 2025, StartBlock: 1400, EndBlock: 3000}); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("past start err = %v, want ErrInvalidDates", err)
	}
	mustRun(t, state, owner, 1500, UpdateDates{Year: 2025, StartBlock: 1600, EndBlock: 1600 + MaxSpan})

	got, _ := state.Get(2025)
	want := Season{Year: 2025, StartBlock: 1600, EndBlock: 1600 + MaxSpan, Status: StatusClosed, CreatedAt: 1000, UpdatedAt: 1500}
	if got != want {
		t.Fatalf("season = %+v, want %+v", got, want)
	}
}

func TestIsOpen(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 1200})
	mustRun(t, state, owner, 1000, Define{Year: 2026, StartBlock: 1100, EndBlock: 1200})
	mustRun(t, state, owner, 1000, Close{Year: 2026})

	tests := []struct {
		year   uint32
		height uint64
		want   bool
	}{
		{year: 2024, height: 1150, want: false},
		{year: 2025, height: 1099, want: false},
		{year: 2025, height: 1100, want: true},
		{year: 2025, height: 1150, want: true},
		{year: 2025, height: 1200, want: true},
		{year: 2025, height: 1201, want: false},
		{year: 2026, height: 1150, want: false},
	}
	for _, tt := range tests {
		if got := state.IsOpen(tt.year, tt.height); got != tt.want {
			t.Fatalf("IsOpen(%d, %d) = %v, want %v", tt.year, tt.height, got, tt.want)
		}
	}
}

func TestPauseIsOwnerOnlyAndIdempotent(t *testing.T) {
	state := NewState(owner)
	if err := run(t, state, stranger, 1, Pause{}); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("stranger pause err = %v, want ErrNotAuthorized", err)
	}
	mustRun(t, state, owner, 1, Pause{})
	mustRun(t, state, owner, 1, Pause{})
	if got := state.Status(); got != (access.Status{Owner: owner, Paused: true}) {
		t.Fatalf("status = %+v", got)
	}
	if err := run(t, state, stranger, 1, Unpause{}); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("stranger unpause err = %v, want ErrNotAuthorized", err)
	}
	mustRun(t, state, owner, 1, Unpause{})
	mustRun(t, state, owner, 1, Unpause{})
	if state.Paused {
		t.Fatal("expected unpaused")
	}
}

func TestRejectedCommandsLeaveStateUntouched(t *testing.T) {
	state := NewState(owner)
	mustRun(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})
	before := state.List()

	_ = run(t, state, owner, 1000, Define{Year: 2025, StartBlock: 1100, EndBlock: 2000})
	_ = run(t, state, owner, 1000, Open{Year: 2025})
	_ = run(t, state, owner, 5000, UpdateDates{Year: 2025, StartBlock: 10, EndBlock: 20})
	_ = run(t, state, stranger, 1000, Close{Year: 2025})

	if after := state.List(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed: before %+v after %+v", before, after)
	}
}

func TestListOrdersByYear(t *testing.T) {
	state := NewState(owner)
	for _, year := range []uint32{2027, 2025, 2026} {
		mustRun(t, state, owner, 1000, Define{Year: year, StartBlock: 1100, EndBlock: 2000})
	}
	list := state.List()
	if len(list) != 3 || list[0].Year != 2025 || list[2].Year != 2027 {
		t.Fatalf("list = %+v", list)
	}
}

func TestErrorsCarryYearMetadata(t *testing.T) {
	state := NewState(owner)
	err := run(t, state, owner, 1000, Open{Year: 2031})
	appErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if got := appErr.Metadata["Year"]; got != "2031" {
		t.Fatalf("year metadata = %q, want 2031", got)
	}
	if got := ErrYearNotFound.Metadata; got != nil {
		t.Fatalf("sentinel metadata mutated: %v", got)
	}
}
