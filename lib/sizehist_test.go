package lib

import "testing"
import "reflect"

func TestSizehistogram(t *testing.T) {
	h := NewSizehistogram(8, 1024)
	for _, sample := range []int64{8, 100, 104, 200, 1024, 4096} {
		h.Add(sample)
	}
	if x := h.Samples(); x != 6 {
		t.Errorf("expected %v, got %v", 6, x)
	} else if x := h.Min(); x != 8 {
		t.Errorf("expected %v, got %v", 8, x)
	} else if x := h.Max(); x != 4096 {
		t.Errorf("expected %v, got %v", 4096, x)
	} else if x := h.Mean(); x != 922 {
		t.Errorf("expected %v, got %v", 922, x)
	}
	ref := map[string]int64{"8": 1, "128": 2, "256": 1, "1024": 1, "+": 1}
	if stats := h.Stats(); !reflect.DeepEqual(ref, stats) {
		t.Errorf("expected %v, got %v", ref, stats)
	}
	refs := `{"samples": 6,"min": 8,"max": 4096,"mean": 922,` +
		`"histogram": {"8": 1,"128": 2,"256": 1,"1024": 1,"+": 1}}`
	if s := h.Logstring(); s != refs {
		t.Errorf("expected %v, got %v", refs, s)
	}
}

func TestSizehistogramEmpty(t *testing.T) {
	h := NewSizehistogram(10, 100)
	if x := h.Mean(); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	if x := len(h.Stats()); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	fs := h.Fullstats()
	if x := fs["samples"].(int64); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
}
