package behaviors

import (
	"sync"

	"github.com/vango-dev/pagefx/pkg/vdom"
)

const (
	DarkModeClass       = "dark-mode"
	DarkModeToggleClass = "dark-mode-toggle"

	darkIcon  = "☀️"
	lightIcon = "🌙"
)

// PreferenceStore persists the dark mode choice.
type PreferenceStore interface {
	// DarkMode returns the saved preference and whether one exists.
	DarkMode() (dark bool, ok bool)
	SetDarkMode(dark bool)
}

// MemoryPreferences is an in-memory PreferenceStore.
type MemoryPreferences struct {
	mu    sync.Mutex
	dark  bool
	saved bool
}

func (p *MemoryPreferences) DarkMode() (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark, p.saved
}

func (p *MemoryPreferences) SetDarkMode(dark bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dark, p.saved = dark, true
}

// DarkMode applies the dark mode preference to a page body.
type DarkMode struct {
	store PreferenceStore
}

// NewDarkMode returns a DarkMode backed by store. A nil store gets a fresh
// MemoryPreferences.
func NewDarkMode(store PreferenceStore) *DarkMode {
	if store == nil {
		store = &MemoryPreferences{}
	}
	return &DarkMode{store: store}
}

// Init applies the saved preference, or systemPrefersDark when nothing is
// saved, and mounts the toggle button once.
func (d *DarkMode) Init(root *vdom.VNode, systemPrefersDark bool) {
	body := bodyOf(root)
	dark, ok := d.store.DarkMode()
	if !ok {
		dark = systemPrefersDark
	}
	if dark {
		body.AddClass(DarkModeClass)
	} else {
		body.RemoveClass(DarkModeClass)
	}

	if body.Find(vdom.ByClass(DarkModeToggleClass)) == nil {
		body.AppendChild(vdom.Button(
			vdom.Class(DarkModeToggleClass),
			vdom.Type("button"),
			vdom.AriaLabel("Toggle dark mode"),
			vdom.HxPost("/dark-mode"),
			vdom.HxSwap("none"),
		))
	}
	d.updateButton(body)
}

// Toggle flips dark mode, saves the choice and reports the new state.
func (d *DarkMode) Toggle(root *vdom.VNode) bool {
	body := bodyOf(root)
	dark := body.ToggleClass(DarkModeClass)
	d.store.SetDarkMode(dark)
	d.updateButton(body)
	return dark
}

func (d *DarkMode) updateButton(body *vdom.VNode) {
	btn := body.Find(vdom.ByClass(DarkModeToggleClass))
	if btn == nil {
		return
	}
	if body.HasClass(DarkModeClass) {
		btn.SetText(darkIcon)
	} else {
		btn.SetText(lightIcon)
	}
}

func bodyOf(root *vdom.VNode) *vdom.VNode {
	if root.Tag == "body" {
		return root
	}
	if body := root.Find(vdom.ByTag("body")); body != nil {
		return body
	}
	return root
}
