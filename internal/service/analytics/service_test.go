package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

const owner = "owner-1"

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func click(blockID string, daysAgo int, country, referrer string) Click {
	return Click{
		OwnerID:  owner,
		BlockID:  blockID,
		Country:  country,
		Referrer: referrer,
		At:       now.AddDate(0, 0, -daysAgo),
	}
}

func TestRangeCutoff(t *testing.T) {
	tests := []struct {
		r        Range
		daysBack int
		wantZero bool
		wantErr  bool
	}{
		{Range7d, 7, false, false},
		{Range30d, 30, false, false},
		{Range90d, 90, false, false},
		{RangeAll, 0, true, false},
		{Range(""), 0, true, false},
		{Range("365d"), 0, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			cutoff, err := tt.r.Cutoff(now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("expected ErrInvalidRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cutoff.IsZero() != tt.wantZero {
				t.Fatalf("cutoff zero = %v, want %v", cutoff.IsZero(), tt.wantZero)
			}
			if !tt.wantZero {
				want := now.AddDate(0, 0, -tt.daysBack)
				if !cutoff.Equal(want) {
					t.Errorf("expected cutoff %v, got %v", want, cutoff)
				}
			}
		})
	}
}

func TestSummarizeWindowFiltering(t *testing.T) {
	clicks := []Click{
		click("b1", 1, "FI", ""),
		click("b1", 5, "FI", ""),
		click("b2", 20, "SE", ""),
		click("b2", 100, "DE", ""),
	}

	cutoff, _ := Range7d.Cutoff(now)
	s := summarize(clicks, cutoff)
	if s.TotalClicks != 2 {
		t.Errorf("7d: expected 2 clicks, got %d", s.TotalClicks)
	}

	cutoff, _ = Range30d.Cutoff(now)
	s = summarize(clicks, cutoff)
	if s.TotalClicks != 3 {
		t.Errorf("30d: expected 3 clicks, got %d", s.TotalClicks)
	}

	s = summarize(clicks, time.Time{})
	if s.TotalClicks != 4 {
		t.Errorf("all: expected 4 clicks, got %d", s.TotalClicks)
	}
}

func TestSummarizeDailySeriesAscending(t *testing.T) {
	clicks := []Click{
		click("b1", 0, "", ""),
		click("b1", 0, "", ""),
		click("b1", 2, "", ""),
	}
	s := summarize(clicks, time.Time{})

	if s.ActiveDays != 2 {
		t.Fatalf("expected 2 active days, got %d", s.ActiveDays)
	}
	if len(s.Daily) != 2 {
		t.Fatalf("expected 2 daily points, got %d", len(s.Daily))
	}
	if s.Daily[0].Date != "2024-03-13" || s.Daily[0].Count != 1 {
		t.Errorf("unexpected first point: %+v", s.Daily[0])
	}
	if s.Daily[1].Date != "2024-03-15" || s.Daily[1].Count != 2 {
		t.Errorf("unexpected second point: %+v", s.Daily[1])
	}
}

func TestSummarizeBreakdowns(t *testing.T) {
	clicks := []Click{
		click("b1", 0, "FI", "https://instagram.com"),
		click("b1", 1, "FI", "https://instagram.com"),
		click("b2", 1, "SE", ""),
		click("b2", 2, "", "https://x.com"),
	}
	s := summarize(clicks, time.Time{})

	if s.Countries["FI"] != 2 || s.Countries["SE"] != 1 {
		t.Errorf("unexpected country breakdown: %v", s.Countries)
	}
	if _, ok := s.Countries[""]; ok {
		t.Error("empty country must not appear in the breakdown")
	}
	if s.Referrers["https://instagram.com"] != 2 || s.Referrers["https://x.com"] != 1 {
		t.Errorf("unexpected referrer breakdown: %v", s.Referrers)
	}
}

func TestSummarizeTopBlocks(t *testing.T) {
	var clicks []Click
	// b0 gets 1 click, b1 gets 2, ... b6 gets 7.
	for i := range 7 {
		for range i + 1 {
			clicks = append(clicks, click(string(rune('a'+i)), 0, "", ""))
		}
	}
	s := summarize(clicks, time.Time{})

	if len(s.TopBlocks) != topBlocksLimit {
		t.Fatalf("expected %d top blocks, got %d", topBlocksLimit, len(s.TopBlocks))
	}
	if s.TopBlocks[0].BlockID != "g" || s.TopBlocks[0].Count != 7 {
		t.Errorf("unexpected leader: %+v", s.TopBlocks[0])
	}
	for i := 1; i < len(s.TopBlocks); i++ {
		if s.TopBlocks[i].Count > s.TopBlocks[i-1].Count {
			t.Errorf("top blocks not in descending order: %+v", s.TopBlocks)
		}
	}
}

func TestMockSummaryScopedToOwner(t *testing.T) {
	svc := NewMockService()
	svc.Now = func() time.Time { return now }
	svc.Seed(
		click("b1", 1, "FI", ""),
		Click{OwnerID: "other", BlockID: "x", At: now},
	)

	s, err := svc.Summary(context.Background(), owner, RangeAll)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalClicks != 1 {
		t.Errorf("expected 1 click for owner, got %d", s.TotalClicks)
	}
}

func TestMockBlockStats(t *testing.T) {
	svc := NewMockService()
	svc.Seed(
		click("b1", 1, "", ""),
		click("b1", 200, "", ""),
		click("b2", 0, "", ""),
	)

	stats, err := svc.BlockStats(context.Background(), owner)
	if err != nil {
		t.Fatalf("block stats: %v", err)
	}
	if stats["b1"] != 2 || stats["b2"] != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestMockRecordClickDefaultsTimestamp(t *testing.T) {
	svc := NewMockService()
	svc.Now = func() time.Time { return now }

	if err := svc.RecordClick(context.Background(), Click{OwnerID: owner, BlockID: "b1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s, _ := svc.Summary(context.Background(), owner, Range7d)
	if s.TotalClicks != 1 {
		t.Errorf("expected the defaulted timestamp inside the 7d window, got %d clicks", s.TotalClicks)
	}
}

func TestMockDeleteAll(t *testing.T) {
	svc := NewMockService()
	svc.Seed(
		click("b1", 0, "", ""),
		Click{OwnerID: "other", BlockID: "x", At: now},
	)

	if err := svc.DeleteAll(context.Background(), owner); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	mine, _ := svc.BlockStats(context.Background(), owner)
	if len(mine) != 0 {
		t.Errorf("expected owner's clicks gone, got %v", mine)
	}
	theirs, _ := svc.BlockStats(context.Background(), "other")
	if theirs["x"] != 1 {
		t.Errorf("other owner's clicks must survive, got %v", theirs)
	}
}

func TestMockSummaryInvalidRange(t *testing.T) {
	svc := NewMockService()
	if _, err := svc.Summary(context.Background(), owner, Range("1y")); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
