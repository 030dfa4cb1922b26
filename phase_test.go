package stoplight

import "testing"

func TestPhase_String(t *testing.T) {
	if Red.String() != "red" {
		t.Errorf("Expected red, got %s", Red)
	}
	if Green.String() != "green" {
		t.Errorf("Expected green, got %s", Green)
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-domain phase, got %s", Phase(99))
	}
}

func TestPhase_NextAlternates(t *testing.T) {
	if Red.Next() != Green {
		t.Error("Expected red to flip to green")
	}
	if Green.Next() != Red {
		t.Error("Expected green to flip to red")
	}
	if Red.Next().Next() != Red {
		t.Error("Expected two flips to return to the starting phase")
	}
}
