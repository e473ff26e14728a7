package block

import (
	"context"
	"errors"
	"slices"
	"testing"
)

const owner = "owner-1"

func seedBlocks(t *testing.T, svc *MockService, n int) []Block {
	t.Helper()
	ctx := context.Background()
	out := make([]Block, 0, n)
	for range n {
		p := LinkPayload{Title: "Link", URL: "https://example.com"}
		b, err := svc.Add(ctx, owner, KindLink, p, true)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, *b)
	}
	return out
}

func listIDs(t *testing.T, svc Service) []string {
	t.Helper()
	blocks, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func TestAddAssignsDensePositions(t *testing.T) {
	svc := NewMockService()
	seedBlocks(t, svc, 3)

	blocks, _ := svc.List(context.Background(), owner)
	for i, b := range blocks {
		if b.Position != i {
			t.Errorf("block %d: expected position %d, got %d", i, i, b.Position)
		}
	}
}

func TestAddKindMismatch(t *testing.T) {
	svc := NewMockService()
	_, err := svc.Add(context.Background(), owner, KindHeader,
		LinkPayload{Title: "x", URL: "https://example.com"}, true)
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestEditKindMismatch(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 1)

	_, err := svc.Edit(context.Background(), owner, seeded[0].ID, HeaderPayload{Text: "hi"})
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestToggleFailureRollsBack(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 2)

	svc.FailWith = errors.New("store unavailable")
	_, err := svc.ToggleEnabled(context.Background(), owner, seeded[0].ID, false)
	if err == nil {
		t.Fatal("expected error")
	}
	svc.FailWith = nil

	blocks, _ := svc.List(context.Background(), owner)
	for _, b := range blocks {
		if !b.Enabled {
			t.Errorf("block %s: enabled flag changed despite failed toggle", b.ID)
		}
	}
}

func TestReorderFailureRollsBack(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)
	before := listIDs(t, svc)

	svc.FailWith = errors.New("store unavailable")
	reversed := []string{seeded[2].ID, seeded[1].ID, seeded[0].ID}
	if _, err := svc.Reorder(context.Background(), owner, reversed); err == nil {
		t.Fatal("expected error")
	}
	svc.FailWith = nil

	if after := listIDs(t, svc); !slices.Equal(before, after) {
		t.Errorf("order changed despite failed reorder: before %v, after %v", before, after)
	}
}

func TestReorderAppliesExactPermutation(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)

	want := []string{seeded[1].ID, seeded[2].ID, seeded[0].ID}
	result, err := svc.Reorder(context.Background(), owner, want)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for i, b := range result {
		if b.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], b.ID)
		}
		if b.Position != i {
			t.Errorf("position %d: stored position %d", i, b.Position)
		}
	}
}

func TestReorderRejectsPartialList(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)

	_, err := svc.Reorder(context.Background(), owner, []string{seeded[0].ID, seeded[1].ID})
	if !errors.Is(err, ErrOrderMismatch) {
		t.Errorf("expected ErrOrderMismatch, got %v", err)
	}
}

func TestBulkDisableOnlyTouchesSelection(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)

	result, err := svc.Bulk(context.Background(), owner, BulkDisable,
		[]string{seeded[0].ID, seeded[2].ID})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	for _, b := range result {
		selected := b.ID == seeded[0].ID || b.ID == seeded[2].ID
		if selected && b.Enabled {
			t.Errorf("block %s: expected disabled", b.ID)
		}
		if !selected && !b.Enabled {
			t.Errorf("block %s: untargeted block was disabled", b.ID)
		}
	}
}

func TestBulkUnknownIDFailsWhole(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 2)

	_, err := svc.Bulk(context.Background(), owner, BulkDisable,
		[]string{seeded[0].ID, "no-such-block"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	blocks, _ := svc.List(context.Background(), owner)
	for _, b := range blocks {
		if !b.Enabled {
			t.Errorf("block %s: state changed despite failed bulk action", b.ID)
		}
	}
}

func TestBulkDeleteReindexesSurvivors(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 4)

	result, err := svc.Bulk(context.Background(), owner, BulkDelete,
		[]string{seeded[0].ID, seeded[2].ID})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	want := []string{seeded[1].ID, seeded[3].ID}
	if len(result) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(result))
	}
	for i, b := range result {
		if b.ID != want[i] {
			t.Errorf("survivor %d: expected %s, got %s", i, want[i], b.ID)
		}
		if b.Position != i {
			t.Errorf("survivor %d: expected position %d, got %d", i, i, b.Position)
		}
	}
}

func TestBulkFailureRollsBack(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)
	before := listIDs(t, svc)

	svc.FailWith = errors.New("store unavailable")
	_, err := svc.Bulk(context.Background(), owner, BulkDelete, []string{seeded[1].ID})
	if err == nil {
		t.Fatal("expected error")
	}
	svc.FailWith = nil

	if after := listIDs(t, svc); !slices.Equal(before, after) {
		t.Errorf("list changed despite failed bulk delete: before %v, after %v", before, after)
	}
}

func TestDeleteFailureRollsBack(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 2)
	before := listIDs(t, svc)

	svc.FailWith = errors.New("store unavailable")
	if err := svc.Delete(context.Background(), owner, seeded[0].ID); err == nil {
		t.Fatal("expected error")
	}
	svc.FailWith = nil

	if after := listIDs(t, svc); !slices.Equal(before, after) {
		t.Errorf("list changed despite failed delete: before %v, after %v", before, after)
	}
}

func TestDeleteReindexes(t *testing.T) {
	svc := NewMockService()
	seeded := seedBlocks(t, svc, 3)

	if err := svc.Delete(context.Background(), owner, seeded[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	blocks, _ := svc.List(context.Background(), owner)
	want := []string{seeded[0].ID, seeded[2].ID}
	for i, b := range blocks {
		if b.ID != want[i] || b.Position != i {
			t.Errorf("position %d: expected %s at %d, got %s at %d",
				i, want[i], i, b.ID, b.Position)
		}
	}
}

func TestBulkEmptySelection(t *testing.T) {
	svc := NewMockService()
	_, err := svc.Bulk(context.Background(), owner, BulkDisable, nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}
