package phase

import "testing"

func TestNewUsagePositions(t *testing.T) {
	u := NewUsage(Oil, Gas)
	if u.NumPhases() != 2 {
		t.Errorf("Expected 2 phases, got %d", u.NumPhases())
	}
	if u.Used(Water) {
		t.Errorf("Expected water inactive")
	}
	if pos, ok := u.Pos(Oil); !ok || pos != 0 {
		t.Errorf("Expected oil at position 0, got %d %v", pos, ok)
	}
	if pos, ok := u.Pos(Gas); !ok || pos != 1 {
		t.Errorf("Expected gas at position 1, got %d %v", pos, ok)
	}
	if _, ok := u.Pos(Water); ok {
		t.Errorf("Expected no position for inactive water")
	}
}

func TestNewUsageIgnoresDuplicates(t *testing.T) {
	u := NewUsage(Water, Water, Oil)
	if u.NumPhases() != 2 {
		t.Errorf("Expected duplicate phase ignored, got %d phases", u.NumPhases())
	}
}

func TestAllPhases(t *testing.T) {
	u := AllPhases()
	if u.NumPhases() != 3 {
		t.Errorf("Expected 3 phases, got %d", u.NumPhases())
	}
	active := u.Active()
	want := []Phase{Water, Oil, Gas}
	for i := range want {
		if active[i] != want[i] {
			t.Errorf("Expected phase %v at %d, got %v", want[i], i, active[i])
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Water.String() != "water" || Oil.String() != "oil" || Gas.String() != "gas" {
		t.Errorf("Unexpected phase names: %v %v %v", Water, Oil, Gas)
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range phase")
	}
}
