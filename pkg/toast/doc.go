// Package toast displays transient, non-blocking feedback messages on a
// page tree.
//
// A Manager owns one display surface (a div.toast-container appended to the
// page body the first time a toast is shown) and the lifecycle of every
// notification placed on it:
//
//	active --(expiry or Dismiss)--> closing --(close delay)--> removed
//
// Each transition happens exactly once. Dismiss is idempotent, so the
// expiry timer and a user click may race to close the same toast without
// harm; the expiry timer is never cancelled.
//
// # Usage
//
//	toasts := toast.New(body, scheduler)
//	id := toasts.Notify("Token copied!", toast.KindSuccess, 2*time.Second)
//	toasts.Error("Request failed. Please try again.")
//	toasts.Dismiss(id)
//
// All methods must be called on the scheduler's loop. Timer callbacks are
// scheduled through the same loop.
//
// # Client Mirroring
//
// When an Emitter is configured, every transition is also published as an
// EventName event carrying the toast's id, level, title, message and
// state, so a websocket transport can mirror toasts into a live browser:
//
//	window.addEventListener("pagefx:toast", (e) => {
//	    const { id, level, message, state } = e.detail;
//	    ...
//	});
//
// Message text is caller-supplied and stored as a text node. The renderer
// escapes it, but Emitter consumers receive it verbatim.
package toast
