package parse

import "testing"

func TestIntOrDefault(t *testing.T) {
	if IntOrDefault("", 6) != 6 {
		t.Error("expected default for empty input")
	}
	if IntOrDefault("-3", 6) != -3 {
		t.Error("expected parsed negative value")
	}
}
