package toast

import (
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/pagefx/pkg/loop"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// EventName is the event name emitted for toast transitions.
const EventName = "pagefx:toast"

// ContainerClass is the class of the shared display surface.
const ContainerClass = "toast-container"

const (
	// DefaultDuration is how long a toast stays active when Notify is given
	// a non-positive duration.
	DefaultDuration = 3000 * time.Millisecond

	// DefaultCloseDelay is the length of the closing animation window.
	DefaultCloseDelay = 300 * time.Millisecond
)

// Kind represents the toast notification type.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// normalize maps unknown kinds to KindInfo.
func (k Kind) normalize() Kind {
	switch k {
	case KindSuccess, KindError:
		return k
	default:
		return KindInfo
	}
}

// icon returns the glyph shown next to the message.
func (k Kind) icon() string {
	switch k {
	case KindSuccess:
		return "✓"
	case KindError:
		return "✗"
	default:
		return "ℹ"
	}
}

// ID identifies a notification within one Manager.
type ID uint64

// String returns the decimal form of the id.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by String.
func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return ID(n), true
}

// State is a notification's lifecycle state.
type State uint8

const (
	StateActive State = iota
	StateClosing
	StateRemoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Trigger records what started a toast's closing transition.
type Trigger string

const (
	TriggerExpired Trigger = "expired"
	TriggerUser    Trigger = "user"
)

// notification is one toast owned by a Manager.
type notification struct {
	id      ID
	kind    Kind
	message string
	state   State
	node    *vdom.VNode
}

// Manager owns the display surface and every notification on it.
type Manager struct {
	root    *vdom.VNode
	sched   loop.Scheduler
	cfg     config
	surface *vdom.VNode
	nextID  ID
	live    map[ID]*notification
	order   []*notification
}

// New creates a Manager that mounts its surface under root. If root
// contains a body element the surface is appended there, otherwise to
// root itself.
func New(root *vdom.VNode, sched loop.Scheduler, opts ...Option) *Manager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{
		root:  root,
		sched: sched,
		cfg:   cfg,
		live:  make(map[ID]*notification),
	}
}

// Notify shows a message and returns its id immediately. A non-positive
// duration uses the configured default; an empty kind means KindInfo.
// The toast is appended after every toast already on the surface and is
// dismissed automatically once d has elapsed.
func (m *Manager) Notify(message string, kind Kind, d time.Duration) ID {
	m.ensureSurface()

	kind = kind.normalize()
	if d <= 0 {
		d = m.cfg.duration
	}

	id := m.nextID
	m.nextID++

	n := &notification{
		id:      id,
		kind:    kind,
		message: message,
		state:   StateActive,
	}
	n.node = m.build(n)
	m.surface.AppendChild(n.node)
	m.live[id] = n
	m.order = append(m.order, n)

	m.cfg.logger.Debug().
		Stringer("toast", id).
		Str("kind", string(kind)).
		Dur("duration", d).
		Msg("toast shown")
	m.cfg.observer.ToastShown(kind)
	m.emit(n)

	m.sched.AfterFunc(d, func() {
		m.dismiss(id, TriggerExpired)
	})
	return id
}

// Info shows an info toast with the default duration.
func (m *Manager) Info(message string) ID {
	return m.Notify(message, KindInfo, 0)
}

// Success shows a success toast with the default duration.
func (m *Manager) Success(message string) ID {
	return m.Notify(message, KindSuccess, 0)
}

// Error shows an error toast with the default duration.
func (m *Manager) Error(message string) ID {
	return m.Notify(message, KindError, 0)
}

// Dismiss starts the closing transition of an active toast. Unknown ids
// and toasts already closing or removed are ignored.
func (m *Manager) Dismiss(id ID) {
	m.dismiss(id, TriggerUser)
}

func (m *Manager) dismiss(id ID, trigger Trigger) {
	n, ok := m.live[id]
	if !ok || n.state != StateActive {
		return
	}

	n.state = StateClosing
	n.node.AddClass("closing")
	n.node.SetStyle("animation", m.cfg.closeAnimation)

	m.cfg.logger.Debug().
		Stringer("toast", id).
		Str("trigger", string(trigger)).
		Msg("toast closing")
	m.cfg.observer.ToastDismissed(n.kind, trigger)
	m.emit(n)

	// Scheduled from inside the closing transition so removal always
	// follows it.
	m.sched.AfterFunc(m.cfg.closeDelay, func() {
		m.remove(n)
	})
}

func (m *Manager) remove(n *notification) {
	if n.state != StateClosing {
		return
	}
	n.state = StateRemoved
	n.node.Remove()
	delete(m.live, n.id)
	for i, o := range m.order {
		if o == n {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	m.cfg.logger.Debug().Stringer("toast", n.id).Msg("toast removed")
	m.cfg.observer.ToastRemoved(n.kind)
	m.emit(n)
}

// State returns the lifecycle state of id. Ids never issued, and ids
// whose toast has been removed, report StateRemoved.
func (m *Manager) State(id ID) State {
	if n, ok := m.live[id]; ok {
		return n.state
	}
	return StateRemoved
}

// Active returns the ids of toasts still on the surface (active or
// closing), in display order.
func (m *Manager) Active() []ID {
	ids := make([]ID, 0, len(m.order))
	for _, n := range m.order {
		ids = append(ids, n.id)
	}
	return ids
}

// Surface returns the display surface, or nil if no toast has been shown
// and no surface was found under root.
func (m *Manager) Surface() *vdom.VNode {
	if m.surface == nil {
		m.surface = m.root.Find(vdom.ByClass(ContainerClass))
	}
	return m.surface
}

// ensureSurface creates the display surface at most once. A surface
// already present under root (from a server render) is adopted.
func (m *Manager) ensureSurface() {
	if m.Surface() != nil {
		return
	}
	mount := m.root
	if m.root.Tag != "body" {
		if body := m.root.Find(vdom.ByTag("body")); body != nil {
			mount = body
		}
	}
	m.surface = mount.AppendChild(vdom.Div(
		vdom.Class(ContainerClass),
		vdom.AriaLive("polite"),
	))
}

// build renders one toast's subtree.
func (m *Manager) build(n *notification) *vdom.VNode {
	closeBtn := vdom.Button(
		vdom.Class("toast-close"),
		vdom.Type("button"),
		vdom.AriaLabel("Close"),
		vdom.Data("toast-id", n.id.String()),
		"×",
	)
	if m.cfg.dismissPath != "" {
		closeBtn.SetAttr("hx-post", strings.ReplaceAll(m.cfg.dismissPath, "{id}", n.id.String()))
		closeBtn.SetAttr("hx-swap", "none")
	}

	return vdom.Div(
		vdom.ID("toast-"+n.id.String()),
		vdom.Class("toast", string(n.kind)),
		vdom.Role("status"),
		vdom.Div(vdom.Class("toast-icon"), n.kind.icon()),
		vdom.Div(
			vdom.Class("toast-body"),
			vdom.Div(vdom.Class("toast-title"), m.cfg.titles.For(n.kind)),
			vdom.Div(vdom.Class("toast-message"), vdom.Text(n.message)),
		),
		closeBtn,
	)
}

func (m *Manager) emit(n *notification) {
	if m.cfg.emitter == nil {
		return
	}
	m.cfg.emitter.Emit(EventName, map[string]any{
		"id":      uint64(n.id),
		"level":   string(n.kind),
		"title":   m.cfg.titles.For(n.kind),
		"message": n.message,
		"state":   n.state.String(),
	})
}
