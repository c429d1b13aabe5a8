package cpu

import "testing"

func TestLogical_AtLeastOne(t *testing.T) {
	if n := Logical(); n < 1 {
		t.Fatalf("expected at least 1 logical CPU, got %d", n)
	}
}

func TestLogical_Stable(t *testing.T) {
	first := Logical()
	for i := 0; i < 5; i++ {
		if n := Logical(); n != first {
			t.Fatalf("expected stable CPU count, got %d then %d", first, n)
		}
	}
}
