// Package season implements the tax-season registry: owner-defined block
// windows, keyed by year, that govern when filings are timely.
package season

import (
	"sort"

	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
)

const (
	// MinExclusiveYear is the last year a season may not be defined for.
	MinExclusiveYear = 2020
	// MaxSpan is the longest allowed window in blocks, inclusive.
	MaxSpan = 525600
)

// Status is the open/closed flag of a season.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Season is one year's filing window.
type Season struct {
	Year       uint32 `json:"year"`
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
	Status     Status `json:"status"`
	CreatedAt  uint64 `json:"created_at"`
	UpdatedAt  uint64 `json:"updated_at"`
}

// Contains reports whether height falls within the window, inclusive.
func (s Season) Contains(height uint64) bool {
	return s.StartBlock <= height && height <= s.EndBlock
}

// State is the registry's full state. Years are never removed.
type State struct {
	access.Guard
	Seasons map[uint32]Season
}

// NewState returns an empty registry owned by owner.
func NewState(owner string) *State {
	return &State{
		Guard:   access.Guard{Owner: owner},
		Seasons: map[uint32]Season{},
	}
}

// Get returns the season for year.
func (s *State) Get(year uint32) (Season, bool) {
	season, ok := s.Seasons[year]
	return season, ok
}

// IsOpen reports whether filing is permitted for year at height: the season
// exists, is open, and height is within its window.
func (s *State) IsOpen(year uint32, height uint64) bool {
	season, ok := s.Seasons[year]
	if !ok || season.Status != StatusOpen {
		return false
	}
	return season.Contains(height)
}

// List returns every season ordered by year.
func (s *State) List() []Season {
	out := make([]Season, 0, len(s.Seasons))
	for _, season := range s.Seasons {
		out = append(out, season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// validWindow applies the future-only, bounded-span window rule.
func validWindow(start, end, height uint64) bool {
	if end <= start || start <= height {
		return false
	}
	return end-start <= MaxSpan
}
