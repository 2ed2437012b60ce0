package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to report IsEmpty")
	}
	if ID("abc").IsEmpty() {
		t.Error("Expected non-empty ID not to report IsEmpty")
	}
}

func TestParseEvaluationID(t *testing.T) {
	id := NewEvaluationID()

	parsed, err := ParseEvaluationID("  " + id.String() + " ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseEvaluationID(""); err == nil {
		t.Error("Expected error for empty ID")
	}
	if _, err := ParseEvaluationID("not-a-uuid"); err == nil {
		t.Error("Expected error for malformed ID")
	}
}
