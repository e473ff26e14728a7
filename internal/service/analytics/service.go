package analytics

import (
	"context"
	"errors"
	"slices"
	"time"
)

// ErrInvalidRange indicates an unrecognized date-range code.
var ErrInvalidRange = errors.New("invalid date range")

// Click is one recorded link-block click.
type Click struct {
	OwnerID  string
	BlockID  string
	Referrer string
	Country  string
	At       time.Time
}

// Range selects the analytics window by code.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
	RangeAll Range = "all"
)

// Cutoff returns the inclusive lower bound for the range ending at now.
// The zero time means no lower bound.
func (r Range) Cutoff(now time.Time) (time.Time, error) {
	switch r {
	case Range7d:
		return now.AddDate(0, 0, -7), nil
	case Range30d:
		return now.AddDate(0, 0, -30), nil
	case Range90d:
		return now.AddDate(0, 0, -90), nil
	case RangeAll, "":
		return time.Time{}, nil
	}
	return time.Time{}, ErrInvalidRange
}

// DailyCount is one point of the daily click series.
type DailyCount struct {
	Date  string // YYYY-MM-DD, UTC
	Count int
}

// BlockCount pairs a block with its click total.
type BlockCount struct {
	BlockID string
	Count   int
}

// Summary aggregates click activity over a range.
type Summary struct {
	TotalClicks int
	ActiveDays  int
	Daily       []DailyCount
	Countries   map[string]int
	Referrers   map[string]int
	TopBlocks   []BlockCount
}

// topBlocksLimit caps the top-performing blocks list.
const topBlocksLimit = 5

// summarize aggregates clicks at or after cutoff. A zero cutoff includes
// everything. Daily points appear in ascending date order; TopBlocks in
// descending count order with ties broken by block ID for stability.
func summarize(clicks []Click, cutoff time.Time) *Summary {
	s := &Summary{
		Countries: make(map[string]int),
		Referrers: make(map[string]int),
	}
	daily := make(map[string]int)
	perBlock := make(map[string]int)

	for _, c := range clicks {
		if !cutoff.IsZero() && c.At.Before(cutoff) {
			continue
		}
		s.TotalClicks++
		daily[c.At.UTC().Format("2006-01-02")]++
		perBlock[c.BlockID]++
		if c.Country != "" {
			s.Countries[c.Country]++
		}
		if c.Referrer != "" {
			s.Referrers[c.Referrer]++
		}
	}

	s.Daily = make([]DailyCount, 0, len(daily))
	for date, count := range daily {
		s.Daily = append(s.Daily, DailyCount{Date: date, Count: count})
	}
	slices.SortFunc(s.Daily, func(a, b DailyCount) int {
		if a.Date < b.Date {
			return -1
		}
		if a.Date > b.Date {
			return 1
		}
		return 0
	})
	s.ActiveDays = len(s.Daily)

	s.TopBlocks = make([]BlockCount, 0, len(perBlock))
	for id, count := range perBlock {
		s.TopBlocks = append(s.TopBlocks, BlockCount{BlockID: id, Count: count})
	}
	slices.SortFunc(s.TopBlocks, func(a, b BlockCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.BlockID < b.BlockID {
			return -1
		}
		if a.BlockID > b.BlockID {
			return 1
		}
		return 0
	})
	if len(s.TopBlocks) > topBlocksLimit {
		s.TopBlocks = s.TopBlocks[:topBlocksLimit]
	}
	return s
}

// Service defines click analytics operations. Stats are read-only from the
// editor's perspective; block mutations never touch them.
type Service interface {
	// RecordClick stores one click event.
	RecordClick(ctx context.Context, click Click) error

	// BlockStats returns the all-time click count per block.
	BlockStats(ctx context.Context, ownerID string) (map[string]int, error)

	// Summary aggregates activity over the given range.
	Summary(ctx context.Context, ownerID string, r Range) (*Summary, error)

	// DeleteAll removes every click for the owner (account deletion).
	DeleteAll(ctx context.Context, ownerID string) error
}
