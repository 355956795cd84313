package store

import (
	"context"
	"testing"
)

func TestMemoryStore_ReadAbsentKey(t *testing.T) {
	st := NewMemoryStore()

	var out []string
	found, err := st.Read(context.Background(), "ehs:missing", &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if found {
		t.Error("found = true for absent key")
	}
	if out != nil {
		t.Errorf("out modified on miss: %v", out)
	}
}

func TestMemoryStore_WriteReadRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	type rec struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	in := []rec{{ID: "a", Name: "Casco"}, {ID: "b", Name: "Guantes"}}
	if err := st.Write(ctx, KeyPPEItems, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var out []rec
	found, err := st.Read(ctx, KeyPPEItems, &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !found {
		t.Fatal("found = false after Write")
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestMemoryStore_ReadReturnsCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Write(ctx, KeyEmployees, []string{"one"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var first []string
	if _, err := st.Read(ctx, KeyEmployees, &first); err != nil {
		t.Fatalf("Read: %v", err)
	}
	first[0] = "mutated"

	var second []string
	if _, err := st.Read(ctx, KeyEmployees, &second); err != nil {
		t.Fatalf("second Read: %v", err)
	}
	if second[0] != "one" {
		t.Errorf("stored value aliased by a previous read: %v", second)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Write(ctx, KeySeeded, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := st.Delete(ctx, KeySeeded); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var flag bool
	found, err := st.Read(ctx, KeySeeded, &flag)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if found {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is not an error.
	if err := st.Delete(ctx, KeySeeded); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
