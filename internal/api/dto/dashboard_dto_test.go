package dto

import (
	"encoding/json"
	"testing"
)

func TestOrderedCounts_MarshalKeepsInsertionOrder(t *testing.T) {
	o := NewOrderedCounts()
	o.Set("Zeta", 1)
	o.Set("Alpha", 2)
	o.Set("Mid \"quoted\"", 3)

	got, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"Zeta":1,"Alpha":2,"Mid \"quoted\"":3}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestOrderedCounts_SetExistingKeepsPosition(t *testing.T) {
	o := NewOrderedCounts()
	o.Set("Engineer", 3)
	o.Set("Designer", 1)
	o.Set("Engineer", 7)

	if o.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", o.Len())
	}
	if keys := o.Keys(); keys[0] != "Engineer" || keys[1] != "Designer" {
		t.Fatalf("unexpected order %v", keys)
	}
	if v, _ := o.Get("Engineer"); v != 7 {
		t.Fatalf("expected overwritten value 7, got %d", v)
	}
	if o.Sum() != 8 {
		t.Fatalf("expected sum 8, got %d", o.Sum())
	}
}

func TestOrderedCounts_EmptyMarshal(t *testing.T) {
	got, err := json.Marshal(NewOrderedCounts())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("got %s", got)
	}
}
