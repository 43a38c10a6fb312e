// Package loop provides the single-threaded event queue pagefx components
// run on.
//
// A page behaves like a browser tab: every mutation of its node tree
// happens on one queue, and timers do not run concurrently with other work.
// They are queued back onto the same loop when they expire. Components
// depend on the Scheduler interface so tests can substitute a virtual
// clock (see pkg/vtest).
//
//	l := loop.New(loop.Config{})
//	go l.Run(ctx)
//	l.Do(ctx, func() { toasts.Notify("saved", toast.KindSuccess, 0) })
package loop
