package pref

import (
	"encoding/json"
	"sync"
	"testing"
)

// TestPrefNew tests creating new preferences.
func TestPrefNew(t *testing.T) {
	pref := New("theme", "light")

	if pref.Key() != "theme" {
		t.Errorf("Key: got %v, want theme", pref.Key())
	}
	v, saved := pref.Get()
	if v != "light" || saved {
		t.Errorf("Get: got %v %v, want light false", v, saved)
	}
	if !pref.UpdatedAt().IsZero() {
		t.Error("UpdatedAt should be zero before any change")
	}
}

// TestPrefSetGet tests setting and getting values.
func TestPrefSetGet(t *testing.T) {
	pref := New("dark_mode", false)

	pref.Set(true)
	v, saved := pref.Get()
	if !v || !saved {
		t.Errorf("After Set: got %v %v, want true true", v, saved)
	}
	if pref.UpdatedAt().IsZero() {
		t.Error("UpdatedAt should not be zero")
	}

	// Saving the default value still counts as saved.
	pref.Set(false)
	if _, saved := pref.Get(); !saved {
		t.Error("explicit false should be saved")
	}
}

// TestPrefReset tests resetting to default value.
func TestPrefReset(t *testing.T) {
	pref := New("theme", "light")
	pref.Set("dark")
	pref.Reset()

	v, saved := pref.Get()
	if v != "light" || saved {
		t.Errorf("After Reset: got %v %v, want light false", v, saved)
	}
}

func TestPrefSubscribe(t *testing.T) {
	pref := New("dark_mode", false)

	var got []bool
	unsubscribe := pref.Subscribe(func(v bool) {
		// Subscribers may read the preference.
		cur, _ := pref.Get()
		if cur != v {
			t.Errorf("Get inside subscriber = %v, want %v", cur, v)
		}
		got = append(got, v)
	})

	pref.Set(true)
	pref.Reset()
	unsubscribe()
	unsubscribe()
	pref.Set(true)

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("notifications = %v, want [true false]", got)
	}
	if pref.Subscribers() != 0 {
		t.Errorf("Subscribers = %d, want 0", pref.Subscribers())
	}
}

func TestPrefConcurrentSet(t *testing.T) {
	pref := New("count", 0)
	var mu sync.Mutex
	calls := 0
	pref.Subscribe(func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			pref.Set(v)
		}(i)
	}
	wg.Wait()

	if calls != 50 {
		t.Errorf("calls = %d, want 50", calls)
	}
}

// TestPrefJSON tests JSON serialization.
func TestPrefJSON(t *testing.T) {
	pref := New("dark_mode", false)
	pref.Set(true)

	data, err := json.Marshal(pref)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var out struct {
		Key   string `json:"key"`
		Value bool   `json:"value"`
		Saved bool   `json:"saved"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.Key != "dark_mode" || !out.Value || !out.Saved {
		t.Errorf("decoded %+v", out)
	}
}

func TestRegistryShares(t *testing.T) {
	r := NewRegistry("dark_mode", false)

	a, releaseA := r.Acquire("browser-1")
	b, releaseB := r.Acquire("browser-1")
	c, releaseC := r.Acquire("browser-2")
	defer releaseC()

	if a != b {
		t.Error("same id should share a preference")
	}
	if a == c {
		t.Error("different ids should not share")
	}

	a.Set(true)
	if v, _ := b.Get(); !v {
		t.Error("change not visible through the shared preference")
	}
	if v, _ := c.Get(); v {
		t.Error("change leaked to another browser")
	}

	releaseA()
	releaseA()
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2 while browser-1 is still held", r.Len())
	}

	releaseB()
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	fresh, release := r.Acquire("browser-1")
	defer release()
	if v, saved := fresh.Get(); v || saved {
		t.Error("released preference should start over")
	}
}
