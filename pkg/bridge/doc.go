// Package bridge connects host page lifecycle signals to the toast manager,
// the validation engine and the peripheral behaviors.
//
// The host reports four signals: content was replaced, a form is about to
// be submitted, a field lost focus, and a request completed. Each signal
// maps to a fixed reaction:
//
//	b := bridge.New(toasts, engine, bridge.WithSuccessPaths("/config"))
//	if !b.BeforeSubmit(form) {
//	    return // submission suppressed, an error toast is showing
//	}
//	b.AfterRequest(bridge.Outcome{Successful: true, Status: 200, Path: "/config"})
//
// Bridge methods must run on the same loop as the toast manager.
package bridge
