// Package vtest provides testing helpers for pagefx components.
//
// # Virtual Clock
//
// Clock implements loop.Scheduler without goroutines or wall-clock time.
// Dispatched callbacks and expired timers run only when the test asks:
//
//	clock := vtest.NewClock()
//	toasts := toast.New(body, clock)
//	id := toasts.Notify("saved", toast.KindSuccess, 2*time.Second)
//
//	clock.Advance(2 * time.Second)   // expiry fires, toast is closing
//	clock.Advance(300 * time.Millisecond) // removal fires
//
// # Render Assertions
//
// ExpectContains checks rendered markup and CountClass counts matching
// nodes:
//
//	vtest.ExpectContains(t, form, `class="form-group error"`)
//	if n := vtest.CountClass(form, "error-message"); n != 1 {
//	    t.Fatalf("%d error messages", n)
//	}
package vtest
