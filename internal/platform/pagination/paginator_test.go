package pagination

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
)

type testItem struct {
	ID string
}

func makeTestItems(count int) []testItem {
	items := make([]testItem, count)
	for i := range count {
		items[i] = testItem{ID: fmt.Sprintf("item-%03d", i+1)}
	}
	return items
}

func paginate(items []testItem, cursor Cursor, limit int, query url.Values) Result[testItem] {
	return Paginate(items, cursor, limit, "test",
		func(i testItem) string { return i.ID }, "/items", query)
}

func TestPaginateFirstPage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{}, 10, nil)

	if len(result.Items) != 10 || result.Total != 30 {
		t.Fatalf("expected 10 of 30, got %d of %d", len(result.Items), result.Total)
	}
	if result.Items[0].ID != "item-001" {
		t.Fatalf("expected item-001 first, got %s", result.Items[0].ID)
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	if result.PrevCursor != "" {
		t.Fatalf("expected no prev cursor, got %s", result.PrevCursor)
	}
}

func TestPaginateMiddlePage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{Type: "test", Value: "item-010"}, 10, nil)

	if result.Items[0].ID != "item-011" {
		t.Fatalf("expected item-011 first, got %s", result.Items[0].ID)
	}
	if result.NextCursor == "" || result.PrevCursor == "" {
		t.Fatal("middle page must carry both cursors")
	}

	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decode prev: %v", err)
	}
	if prev.Value != "" {
		t.Fatalf("prev from page 2 must point at the start, got %q", prev.Value)
	}
}

func TestPaginateLastPage(t *testing.T) {
	result := paginate(makeTestItems(30), Cursor{Type: "test", Value: "item-020"}, 10, nil)

	if result.Items[0].ID != "item-021" {
		t.Fatalf("expected item-021 first, got %s", result.Items[0].ID)
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no next cursor, got %s", result.NextCursor)
	}

	prev, err := DecodeCursor(result.PrevCursor)
	if err != nil {
		t.Fatalf("decode prev: %v", err)
	}
	if prev.Value != "item-010" {
		t.Fatalf("prev from page 3 must point at item-010, got %q", prev.Value)
	}
}

func TestPaginateEmptyItems(t *testing.T) {
	result := paginate(nil, Cursor{}, 10, nil)

	if len(result.Items) != 0 || result.Total != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("empty result must carry no cursors")
	}
}

func TestPaginateUnknownCursorStartsOver(t *testing.T) {
	result := paginate(makeTestItems(10), Cursor{Type: "test", Value: "nonexistent"}, 10, nil)

	if len(result.Items) != 10 || result.Items[0].ID != "item-001" {
		t.Fatalf("unknown cursor must fall back to the start, got %+v", result.Items)
	}
}

func TestPaginateLimitLargerThanItems(t *testing.T) {
	result := paginate(makeTestItems(5), Cursor{}, 20, nil)

	if len(result.Items) != 5 {
		t.Fatalf("expected all 5 items, got %d", len(result.Items))
	}
	if result.NextCursor != "" || result.PrevCursor != "" {
		t.Fatal("single page must carry no cursors")
	}
}

func TestPaginateLinkHeaderPreservesQuery(t *testing.T) {
	query := url.Values{}
	query.Set("public", "true")

	result := paginate(makeTestItems(30), Cursor{}, 10, query)

	if result.LinkHeader == "" {
		t.Fatal("expected link header")
	}
	if !strings.Contains(result.LinkHeader, "public=true") {
		t.Fatalf("expected query preserved in link header, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, "limit=10") {
		t.Fatalf("expected limit in link header, got %s", result.LinkHeader)
	}
	if !strings.Contains(result.LinkHeader, `rel="next"`) {
		t.Fatalf("expected next relation, got %s", result.LinkHeader)
	}
}

func TestDefaultLimit(t *testing.T) {
	if got := (Params{}).DefaultLimit(); got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
	if got := (Params{Limit: 50}).DefaultLimit(); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}
