package models

import "testing"

func TestGradeScore(t *testing.T) {
	cases := []struct {
		grade string
		want  float64
	}{
		{"A", 4},
		{"B", 3},
		{"C", 2},
		{"D", 1},
		{"", 0},
		{"E", 0},
		{"a", 0}, // grades are uppercase by convention
	}
	for _, tc := range cases {
		if got := GradeScore(tc.grade); got != tc.want {
			t.Errorf("GradeScore(%q) = %v, want %v", tc.grade, got, tc.want)
		}
	}
}

func TestEventTypePredicates(t *testing.T) {
	for _, et := range []string{EventRegistered, EventInUse, EventRepair, EventRecycled, EventRecycledHazardous, EventDisposed} {
		if !KnownEventType(et) {
			t.Errorf("KnownEventType(%q) = false", et)
		}
	}
	if KnownEventType("Vaporized") || KnownEventType(StateNoEvents) {
		t.Error("unrecognized types must not be known")
	}

	for _, et := range []string{EventRecycled, EventRecycledHazardous, EventDisposed} {
		if !TerminalEventType(et) {
			t.Errorf("TerminalEventType(%q) = false", et)
		}
	}
	if TerminalEventType(EventRepair) || TerminalEventType(EventRegistered) {
		t.Error("non-terminal types flagged terminal")
	}

	if !RecycledEventType(EventRecycled) || !RecycledEventType(EventRecycledHazardous) {
		t.Error("recycled types not recognized")
	}
	if RecycledEventType(EventDisposed) {
		t.Error("Disposed must not count as recycled")
	}
}
