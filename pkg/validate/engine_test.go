package validate_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/pagefx/pkg/validate"
	"github.com/vango-dev/pagefx/pkg/vdom"
	"github.com/vango-dev/pagefx/pkg/vtest"
)

// configForm builds the client configuration form with the given values.
func configForm(clientID, secret, redirect string) *vdom.VNode {
	group := func(id, value string) *vdom.VNode {
		return vdom.Div(vdom.Class("form-group"),
			vdom.Label(vdom.For(id), id),
			vdom.Input(vdom.ID(id), vdom.Name(id), vdom.Value(value)),
			vdom.Small(vdom.Class("hint"), "help text"),
		)
	}
	return vdom.Form(vdom.HxPost("/config"),
		group(validate.FieldClientID, clientID),
		group(validate.FieldClientSecret, secret),
		group(validate.FieldRedirectURI, redirect),
	)
}

func groupOf(form *vdom.VNode, id string) *vdom.VNode {
	return form.Find(vdom.ByID(id)).Closest(vdom.ByClass("form-group"))
}

func setValue(form *vdom.VNode, id, value string) {
	form.Find(vdom.ByID(id)).SetFieldValue(value)
}

func TestValidateScenario(t *testing.T) {
	form := configForm("", "abc", "ftp://x")

	res := validate.Default().Check(form)

	if res.Valid {
		t.Fatal("expected aggregate failure")
	}
	if res.Checked != 3 {
		t.Errorf("Checked = %d, want 3", res.Checked)
	}

	idGroup := groupOf(form, validate.FieldClientID)
	if !idGroup.HasClass("error") {
		t.Error("client_id group should be errored")
	}
	if msg := idGroup.Find(vdom.ByClass("error-message")); msg == nil || msg.TextContent() != "required" {
		t.Errorf("client_id message = %v", msg)
	}

	secretGroup := groupOf(form, validate.FieldClientSecret)
	if secretGroup.HasClass("error") || secretGroup.Find(vdom.ByClass("error-message")) != nil {
		t.Error("client_secret group should be clean")
	}

	uriGroup := groupOf(form, validate.FieldRedirectURI)
	if !uriGroup.HasClass("error") {
		t.Error("redirect_uri group should be errored")
	}
	want := validate.DefaultMessages().InvalidURL
	if msg, _ := res.Message(validate.FieldRedirectURI); msg != want {
		t.Errorf("redirect_uri message = %q, want %q", msg, want)
	}
}

func TestErrorMessageFollowsField(t *testing.T) {
	form := configForm("", "x", "http://localhost:8080/callback")
	validate.Default().Validate(form)

	input := form.Find(vdom.ByID(validate.FieldClientID))
	next := input.NextSibling()
	if next == nil || !next.HasClass("error-message") {
		t.Fatalf("node after input = %v, want error message", next)
	}
	if input.Attr("aria-invalid") != "true" {
		t.Error("failing input should be aria-invalid")
	}
}

func TestValidationIsPure(t *testing.T) {
	form := configForm("  ", "", "not a url")
	engine := validate.Default()

	first := engine.Check(form)
	before := vtest.RenderToString(form)

	second := engine.Check(form)
	after := vtest.RenderToString(form)

	if first.Valid != second.Valid || len(first.Errors) != len(second.Errors) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if before != after {
		t.Errorf("annotations drifted:\n%s\n%s", before, after)
	}
	if n := vtest.CountClass(form, "error-message"); n != 3 {
		t.Errorf("error messages = %d, want 3", n)
	}
}

func TestCleanupOnRecovery(t *testing.T) {
	form := configForm("id", "secret", "not a url")
	engine := validate.Default()

	if engine.Validate(form) {
		t.Fatal("expected failure for malformed URL")
	}
	if vtest.CountClass(form, "error-message") != 1 {
		t.Fatal("expected one error message")
	}

	setValue(form, validate.FieldRedirectURI, "http://localhost:8080/callback")

	if !engine.Validate(form) {
		t.Fatal("expected success after fixing the URL")
	}
	if vtest.CountClass(form, "error-message") != 0 {
		t.Error("stale error message survived")
	}
	if groupOf(form, validate.FieldRedirectURI).HasClass("error") {
		t.Error("stale error class survived")
	}
	if form.Find(vdom.ByID(validate.FieldRedirectURI)).HasAttr("aria-invalid") {
		t.Error("stale aria-invalid survived")
	}
}

func TestMessageReplacedNotDuplicated(t *testing.T) {
	form := configForm("", "x", "http://ok.example")
	engine := validate.New([]validate.Field{
		{ID: validate.FieldClientID, Rules: []validate.Validator{validate.Required("first")}},
	})
	engine.Validate(form)

	engine = validate.New([]validate.Field{
		{ID: validate.FieldClientID, Rules: []validate.Validator{validate.Required("second")}},
	})
	engine.Validate(form)

	msgs := groupOf(form, validate.FieldClientID).FindAll(vdom.ByClass("error-message"))
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if msgs[0].TextContent() != "second" {
		t.Errorf("message = %q, want second", msgs[0].TextContent())
	}
}

func TestStrayMessageIsMovedAfterField(t *testing.T) {
	stray := vdom.Div(vdom.Class("error-message"), "old")
	input := vdom.Input(vdom.ID(validate.FieldClientID))
	form := vdom.Form(vdom.Div(vdom.Class("form-group"), stray, vdom.Label("Client ID"), input))

	validate.Default().Validate(form)

	if input.NextSibling() != stray {
		t.Error("existing message should be reused and placed after the field")
	}
	if stray.TextContent() != "required" {
		t.Errorf("message = %q", stray.TextContent())
	}
}

func TestAggregateLogic(t *testing.T) {
	tests := []struct {
		name    string
		form    *vdom.VNode
		valid   bool
		checked int
	}{
		{
			name: "one pass one fail",
			form: vdom.Form(
				vdom.Div(vdom.Class("form-group"), vdom.Input(vdom.ID(validate.FieldClientID), vdom.Value("abc"))),
				vdom.Div(vdom.Class("form-group"), vdom.Input(vdom.ID(validate.FieldClientSecret), vdom.Value(""))),
			),
			valid:   false,
			checked: 2,
		},
		{
			name:    "no recognized fields",
			form:    vdom.Form(vdom.Input(vdom.ID("search"))),
			valid:   true,
			checked: 0,
		},
		{
			name:    "all valid",
			form:    configForm("id", "secret", "https://example.com/cb"),
			valid:   true,
			checked: 3,
		},
		{
			name:    "nil container",
			form:    nil,
			valid:   true,
			checked: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validate.Default().Check(tt.form)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", res.Valid, tt.valid)
			}
			if res.Checked != tt.checked {
				t.Errorf("Checked = %d, want %d", res.Checked, tt.checked)
			}
		})
	}
}

func TestFieldWithoutGroupFailsUnannotated(t *testing.T) {
	input := vdom.Input(vdom.ID(validate.FieldClientID))
	form := vdom.Form(input)

	if validate.Default().Validate(form) {
		t.Error("missing value should fail even without a group")
	}
	if input.NextSibling() != nil {
		t.Error("no message should be attached without a group")
	}
}

func TestTextareaField(t *testing.T) {
	form := vdom.Form(vdom.Div(vdom.Class("form-group"),
		vdom.Textarea(vdom.ID(validate.FieldClientSecret), "s3cr3t"),
	))

	if !validate.Default().Validate(form) {
		t.Error("textarea content should be used as the value")
	}
}

func TestCustomMessagesAndClasses(t *testing.T) {
	form := vdom.Form(vdom.Div(vdom.Class("field"),
		vdom.Input(vdom.ID(validate.FieldClientID)),
	))

	engine := validate.Default(
		validate.WithMessages(validate.Messages{Required: "obrigatório"}),
		validate.WithClasses("field", "is-invalid", "feedback"),
	)
	engine.Validate(form)

	group := form.Find(vdom.ByClass("field"))
	if !group.HasClass("is-invalid") {
		t.Errorf("class = %q", group.Attr("class"))
	}
	msg := group.Find(vdom.ByClass("feedback"))
	if msg == nil || msg.TextContent() != "obrigatório" {
		t.Errorf("message = %v", msg)
	}
}

type recordingObserver struct{ results []validate.Result }

func (o *recordingObserver) ValidationFinished(r validate.Result) { o.results = append(o.results, r) }

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	engine := validate.Default(validate.WithObserver(obs))

	engine.Validate(configForm("", "", ""))
	engine.Validate(vdom.Form())

	if len(obs.results) != 2 {
		t.Fatalf("observed %d passes", len(obs.results))
	}
	if obs.results[0].Valid || len(obs.results[0].Errors) != 3 {
		t.Errorf("first = %+v", obs.results[0])
	}
	if !obs.results[1].Valid || obs.results[1].Checked != 0 {
		t.Errorf("second = %+v", obs.results[1])
	}
}

func TestNonValidationErrorFromRule(t *testing.T) {
	form := vdom.Form(vdom.Div(vdom.Class("form-group"), vdom.Input(vdom.ID("scope"), vdom.Value("x"))))
	engine := validate.New([]validate.Field{{
		ID: "scope",
		Rules: []validate.Validator{validate.ValidatorFunc(func(string) error {
			return errors.New("scope lookup failed")
		})},
	}})

	res := engine.Check(form)
	if msg, ok := res.Message("scope"); !ok || msg != "scope lookup failed" {
		t.Errorf("message = %q, %v", msg, ok)
	}
}
