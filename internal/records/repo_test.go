package records

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ehs-compliance-api-server/internal/store"
)

type note struct {
	ID    string `json:"id"`
	Folio string `json:"folio,omitempty"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (n note) RecordID() string { return n.ID }

func newNoteRepo(t *testing.T, prefix string) *Repo[note] {
	t.Helper()
	return New[note](store.NewMemoryStore(), "test:notes", prefix)
}

func TestRepo_AddAssignsIDAndPersists(t *testing.T) {
	repo := newNoteRepo(t, "")
	ctx := context.Background()

	created, err := repo.Add(ctx, note{Title: "check extinguishers"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.Title != "check extinguishers" {
		t.Errorf("Title = %q, want input preserved", created.Title)
	}

	list, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].ID != created.ID {
		t.Errorf("stored id = %q, want %q", list[0].ID, created.ID)
	}
}

func TestRepo_FolioFormat(t *testing.T) {
	repo := newNoteRepo(t, "INC")
	ctx := context.Background()

	for k := 1; k <= 5; k++ {
		created, err := repo.Add(ctx, note{Title: "n"})
		if err != nil {
			t.Fatalf("Add #%d: %v", k, err)
		}
		want := fmt.Sprintf("INC-%04d", k)
		if created.Folio != want {
			t.Errorf("folio #%d = %q, want %q", k, created.Folio, want)
		}
	}
}

func TestRepo_FolioReuseAfterDelete(t *testing.T) {
	// Folios derive from collection length at insertion time, not from a
	// monotonic counter. Deleting the first record and adding another
	// reissues a folio a different record already carried. Existing data
	// depends on this exact behavior.
	repo := newNoteRepo(t, "EPP")
	ctx := context.Background()

	first, err := repo.Add(ctx, note{Title: "a"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.Folio != "EPP-0001" {
		t.Fatalf("folio = %q, want EPP-0001", first.Folio)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	second, err := repo.Add(ctx, note{Title: "b"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.Folio != "EPP-0001" {
		t.Errorf("folio after delete = %q, want reissued EPP-0001", second.Folio)
	}
	if second.ID == first.ID {
		t.Error("ids must stay unique even when folios repeat")
	}
}

func TestRepo_UpdateMergesAndIsIdempotent(t *testing.T) {
	repo := newNoteRepo(t, "")
	ctx := context.Background()

	created, err := repo.Add(ctx, note{Title: "before", Done: false})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	patch := map[string]interface{}{"done": true}
	once, err := repo.Update(ctx, created.ID, patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !once.Done || once.Title != "before" {
		t.Errorf("merge result = %+v, want done=true with title untouched", once)
	}

	twice, err := repo.Update(ctx, created.ID, patch)
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if twice != once {
		t.Errorf("repeated patch diverged: %+v vs %+v", twice, once)
	}
}

func TestRepo_UpdateCannotTouchIDOrFolio(t *testing.T) {
	repo := newNoteRepo(t, "AC")
	ctx := context.Background()

	created, err := repo.Add(ctx, note{Title: "x"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, map[string]interface{}{
		"id":    "forged",
		"folio": "AC-9999",
		"title": "y",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.Folio != created.Folio {
		t.Errorf("id/folio changed: %+v", updated)
	}
	if updated.Title != "y" {
		t.Errorf("Title = %q, want patched", updated.Title)
	}
}

func TestRepo_UpdateMissingIDIsError(t *testing.T) {
	repo := newNoteRepo(t, "")

	_, err := repo.Update(context.Background(), "nope", map[string]interface{}{"title": "z"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_DeleteIsIdempotent(t *testing.T) {
	repo := newNoteRepo(t, "")
	ctx := context.Background()

	created, err := repo.Add(ctx, note{Title: "a"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing id must be a no-op, got %v", err)
	}
	list, _ := repo.GetAll(ctx)
	if len(list) != 1 {
		t.Fatalf("len = %d, want collection unchanged", len(list))
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	list, _ = repo.GetAll(ctx)
	if len(list) != 0 {
		t.Fatalf("len = %d, want 0", len(list))
	}
}

func TestRepo_GetAllOnEmptyStoreIsEmptyList(t *testing.T) {
	repo := newNoteRepo(t, "")

	list, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("list = %v, want empty non-nil slice", list)
	}
}

func TestFirstReference(t *testing.T) {
	notes := []note{
		{ID: "1", Folio: "EPP-0001", Title: "uses item A"},
		{ID: "2", Folio: "EPP-0002", Title: "uses item B"},
	}

	r := FirstReference(notes,
		func(n note) bool { return n.Title == "uses item B" },
		func(n note) string { return "blocked by " + n.Folio })
	if !r.InUse {
		t.Fatal("expected a blocking reference")
	}
	if r.Message != "blocked by EPP-0002" {
		t.Errorf("Message = %q", r.Message)
	}

	r = FirstReference(notes,
		func(n note) bool { return false },
		func(n note) string { return "" })
	if r.InUse {
		t.Error("expected Free when nothing matches")
	}
}
