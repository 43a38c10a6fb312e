package behaviors

import (
	"time"

	"github.com/vango-dev/pagefx/pkg/loop"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

const (
	// CopiedLabel replaces the button label after a successful copy.
	CopiedLabel = "✓ Copied!"

	// CopiedClass marks a button in its copied state.
	CopiedClass = "copied"

	// CopyResetDelay is how long the copied label stays up.
	CopyResetDelay = 2000 * time.Millisecond

	CopySucceededMessage = "Token copied successfully!"
	CopyFailedMessage    = "Failed to copy token"
)

// originalLabelAttr remembers the label across overlapping copies.
const originalLabelAttr = "data-original-label"

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(text string) error

// WriteText implements Clipboard.
func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// CopyToken copies the token field next to button into clip.
//
// The field is the first textarea or .token-field inside the button's
// .token-container. On success the button shows CopiedLabel for
// CopyResetDelay and a success toast is raised. A missing field or a
// clipboard error raises an error toast and leaves the button alone.
func CopyToken(button *vdom.VNode, clip Clipboard, toasts *toast.Manager, sched loop.Scheduler) bool {
	field := tokenField(button)
	if field == nil || clip == nil {
		toasts.Error(CopyFailedMessage)
		return false
	}
	if err := clip.WriteText(field.FieldValue()); err != nil {
		toasts.Error(CopyFailedMessage)
		return false
	}

	if !button.HasAttr(originalLabelAttr) {
		button.SetAttr(originalLabelAttr, button.TextContent())
	}
	button.SetText(CopiedLabel)
	button.AddClass(CopiedClass)
	toasts.Success(CopySucceededMessage)

	sched.AfterFunc(CopyResetDelay, func() {
		restoreCopyButton(button)
	})
	return true
}

func tokenField(button *vdom.VNode) *vdom.VNode {
	container := button.Closest(vdom.ByClass("token-container"))
	if container == nil {
		return nil
	}
	return container.Find(vdom.Any(vdom.ByTag("textarea"), vdom.ByClass("token-field")))
}

// restoreCopyButton is a no-op once the label has already been restored,
// so overlapping timers from repeated clicks settle on the original label.
func restoreCopyButton(button *vdom.VNode) {
	if !button.HasAttr(originalLabelAttr) {
		return
	}
	button.SetText(button.Attr(originalLabelAttr))
	button.RemoveAttr(originalLabelAttr)
	button.RemoveClass(CopiedClass)
}
