package lib

import "testing"

func TestPrettystats(t *testing.T) {
	stats := map[string]interface{}{
		"capacity":  int64(1024),
		"h_allocsz": map[string]interface{}{"samples": int64(2)},
	}
	ref := `{"capacity":1024,"h_allocsz":{"samples":2}}`
	if x := Prettystats(stats, false); x != ref {
		t.Errorf("expected %v, got %v", ref, x)
	}
	ref = "{\n  \"capacity\": 1024,\n  \"h_allocsz\": {\n    \"samples\": 2\n  }\n}"
	if x := Prettystats(stats, true); x != ref {
		t.Errorf("expected %v, got %v", ref, x)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	Prettystats(map[string]interface{}{"ch": make(chan int)}, false)
}
