package behaviors_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/pagefx/pkg/behaviors"
	"github.com/vango-dev/pagefx/pkg/toast"
	"github.com/vango-dev/pagefx/pkg/vdom"
	"github.com/vango-dev/pagefx/pkg/vtest"
)

func tokenPanel(token string) (*vdom.VNode, *vdom.VNode) {
	btn := vdom.Button(vdom.Class("copy-btn"), "Copy")
	body := vdom.Body(
		vdom.Div(vdom.Class("token-container"),
			vdom.Textarea(vdom.Class("token-field"), vdom.Readonly(), token),
			btn,
		),
	)
	return body, btn
}

func TestCopyToken(t *testing.T) {
	body, btn := tokenPanel("eyJhbGciOi")
	clock := vtest.NewClock()
	toasts := toast.New(body, clock)

	var copied string
	clip := behaviors.ClipboardFunc(func(s string) error { copied = s; return nil })

	if !behaviors.CopyToken(btn, clip, toasts, clock) {
		t.Fatal("copy should succeed")
	}
	if copied != "eyJhbGciOi" {
		t.Errorf("clipboard = %q", copied)
	}
	if btn.TextContent() != behaviors.CopiedLabel || !btn.HasClass(behaviors.CopiedClass) {
		t.Errorf("button = %q class %q", btn.TextContent(), btn.Attr("class"))
	}
	vtest.ExpectContains(t, body, behaviors.CopySucceededMessage)

	clock.Advance(behaviors.CopyResetDelay - 1)
	if btn.TextContent() != behaviors.CopiedLabel {
		t.Error("label restored too early")
	}
	clock.Advance(1)
	if btn.TextContent() != "Copy" || btn.HasClass(behaviors.CopiedClass) {
		t.Errorf("after reset: %q class %q", btn.TextContent(), btn.Attr("class"))
	}
}

func TestCopyTokenTwiceKeepsOriginalLabel(t *testing.T) {
	body, btn := tokenPanel("abc")
	clock := vtest.NewClock()
	toasts := toast.New(body, clock)
	clip := behaviors.ClipboardFunc(func(string) error { return nil })

	behaviors.CopyToken(btn, clip, toasts, clock)
	clock.Advance(behaviors.CopyResetDelay / 2)
	behaviors.CopyToken(btn, clip, toasts, clock)
	clock.Advance(behaviors.CopyResetDelay)

	if btn.TextContent() != "Copy" {
		t.Errorf("label = %q, want Copy", btn.TextContent())
	}
}

func TestCopyTokenFailure(t *testing.T) {
	body, btn := tokenPanel("abc")
	clock := vtest.NewClock()
	toasts := toast.New(body, clock)
	clip := behaviors.ClipboardFunc(func(string) error { return errors.New("denied") })

	if behaviors.CopyToken(btn, clip, toasts, clock) {
		t.Fatal("copy should fail")
	}
	if btn.TextContent() != "Copy" {
		t.Errorf("button changed on failure: %q", btn.TextContent())
	}
	vtest.ExpectContains(t, body, behaviors.CopyFailedMessage)

	orphan := vdom.Button("Copy")
	vdom.Body(orphan)
	if behaviors.CopyToken(orphan, clip, toasts, clock) {
		t.Error("copy without a token container should fail")
	}
}

func historyTable(rows ...string) *vdom.VNode {
	tbody := vdom.Tbody()
	for _, r := range rows {
		tbody.AppendChild(vdom.Tr(vdom.Td(r)))
	}
	return vdom.Div(
		vdom.Input(vdom.Class("table-search")),
		vdom.Table(vdom.Class("history-table"), vdom.Thead(vdom.Tr(vdom.Th("Endpoint"))), tbody),
	)
}

func TestFilterTable(t *testing.T) {
	root := historyTable("POST /token 200", "GET /userinfo 401", "POST /token 400")

	tests := []struct {
		term    string
		visible int
		noRow   bool
	}{
		{"token", 2, false},
		{"USERINFO", 1, false},
		{"missing", 0, true},
		{"", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := behaviors.FilterTable(root, tt.term); got != tt.visible {
				t.Errorf("visible = %d, want %d", got, tt.visible)
			}
			if n := vtest.CountClass(root, behaviors.NoResultsClass); (n == 1) != tt.noRow || n > 1 {
				t.Errorf("no-results rows = %d", n)
			}
		})
	}
}

func TestFilterTableHeaderUntouched(t *testing.T) {
	root := historyTable("a")
	behaviors.FilterTable(root, "zzz")

	header := root.Find(vdom.ByTag("thead")).Find(vdom.ByTag("tr"))
	if header.StyleValue("display") != "" {
		t.Error("header row should stay visible")
	}
}

func TestSearchTerm(t *testing.T) {
	root := historyTable("a")
	root.Find(vdom.ByClass("table-search")).SetFieldValue("token")
	if got := behaviors.SearchTerm(root); got != "token" {
		t.Errorf("SearchTerm = %q", got)
	}
	if got := behaviors.SearchTerm(vdom.Div()); got != "" {
		t.Errorf("SearchTerm without input = %q", got)
	}
}

func TestSetActiveNav(t *testing.T) {
	home := vdom.A(vdom.Href("/"), "Home")
	cfg := vdom.A(vdom.Href("/config"), "Config")
	hist := vdom.A(vdom.Href("http://localhost:8080/history"), "History")
	root := vdom.Nav(vdom.Div(vdom.Class("nav-links"), home, cfg, hist))

	tests := []struct {
		path   string
		active []*vdom.VNode
	}{
		{"/", []*vdom.VNode{home}},
		{"/config", []*vdom.VNode{cfg}},
		{"/config/", []*vdom.VNode{cfg}},
		{"/history/42", []*vdom.VNode{hist}},
		{"/configure", nil},
		{"/other", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			behaviors.SetActiveNav(root, tt.path)
			for _, link := range []*vdom.VNode{home, cfg, hist} {
				want := false
				for _, a := range tt.active {
					want = want || a == link
				}
				if link.HasClass(behaviors.ActiveClass) != want {
					t.Errorf("%s active = %v, want %v", link.Attr("href"), !want, want)
				}
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	obj := vdom.Code(`{"access_token":"x","expires_in":3600}`)
	block := vdom.Div(vdom.Class("code-block"), `[1,2]`)
	plain := vdom.Code("not json")
	bad := vdom.Code("{broken")
	root := vdom.Div(vdom.Pre(obj), block, vdom.Pre(plain), vdom.Pre(bad))

	if n := behaviors.FormatJSON(root); n != 2 {
		t.Errorf("formatted = %d, want 2", n)
	}
	want := "{\n  \"access_token\": \"x\",\n  \"expires_in\": 3600\n}"
	if obj.TextContent() != want {
		t.Errorf("object = %q", obj.TextContent())
	}
	if !strings.Contains(block.TextContent(), "\n  1,") {
		t.Errorf("array = %q", block.TextContent())
	}
	if plain.TextContent() != "not json" || bad.TextContent() != "{broken" {
		t.Error("non-JSON blocks should be untouched")
	}
}

func TestDarkMode(t *testing.T) {
	tests := []struct {
		name   string
		saved  *bool
		system bool
		dark   bool
	}{
		{"system light", nil, false, false},
		{"system dark", nil, true, true},
		{"saved light wins", ptr(false), true, false},
		{"saved dark wins", ptr(true), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &behaviors.MemoryPreferences{}
			if tt.saved != nil {
				store.SetDarkMode(*tt.saved)
			}
			body := vdom.Body()
			behaviors.NewDarkMode(store).Init(body, tt.system)

			if body.HasClass(behaviors.DarkModeClass) != tt.dark {
				t.Errorf("dark = %v, want %v", !tt.dark, tt.dark)
			}
			if vtest.CountClass(body, behaviors.DarkModeToggleClass) != 1 {
				t.Error("expected one toggle button")
			}
		})
	}
}

func TestDarkModeToggle(t *testing.T) {
	store := &behaviors.MemoryPreferences{}
	page := vdom.Html(vdom.Body())
	dm := behaviors.NewDarkMode(store)
	dm.Init(page, false)
	dm.Init(page, false)

	if vtest.CountClass(page, behaviors.DarkModeToggleClass) != 1 {
		t.Fatal("Init should mount the toggle once")
	}
	btn := page.Find(vdom.ByClass(behaviors.DarkModeToggleClass))
	if btn.TextContent() != "🌙" {
		t.Errorf("light icon = %q", btn.TextContent())
	}

	if !dm.Toggle(page) {
		t.Error("toggle should enable dark mode")
	}
	if btn.TextContent() != "☀️" {
		t.Errorf("dark icon = %q", btn.TextContent())
	}
	if dark, ok := store.DarkMode(); !ok || !dark {
		t.Errorf("store = %v, %v", dark, ok)
	}
}

func ptr(b bool) *bool { return &b }
