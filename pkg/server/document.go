package server

import (
	. "github.com/vango-dev/pagefx/pkg/vdom"

	"github.com/vango-dev/pagefx/pkg/validate"
)

const (
	pageTitle    = "OAuth2 Test Tool"
	htmxScript   = "https://unpkg.com/htmx.org@1.9.12"
	clientScript = "pagefx.js"
)

// buildBody builds a fresh page body and returns it with its config form.
func buildBody() (body, form *VNode) {
	form = configForm()
	body = Body(
		Header(Class("header"),
			Nav(Class("navbar"),
				A(Class("brand"), Href("/"), pageTitle),
				Div(Class("nav-links"),
					A(Href("/"), "Home"),
					A(Href("/config"), "Configuration"),
					A(Href("/history"), "History"),
				),
			),
		),
		Main(Class("container"),
			Section(ID("config"), Class("card"),
				H2("Client Configuration"),
				form,
			),
			Section(ID("token"), Class("card"),
				H2("Access Token"),
				Div(Class("token-container"),
					Textarea(ID("access_token"), Class("token-field"), Readonly()),
					Button(Class("copy-btn"), Type("button"),
						HxPost("/token/copy"), HxSwap("outerHTML"),
						"📋 Copy",
					),
				),
			),
			Section(ID("response"), Class("card"),
				H2("Last Response"),
				Pre(Code(ID("last-response"), Class("language-json"), "{}")),
			),
			Section(ID("history"), Class("card"),
				H2("Request History"),
				Input(Class("table-search"), Type("search"), Name("q"),
					Placeholder("Search requests..."),
					CustomAttr("hx-get", "/history/search"),
					CustomAttr("hx-trigger", "input changed delay:300ms"),
					HxTarget("#history-table"),
					HxSwap("outerHTML"),
				),
				Button(Type("button"), Class("btn", "btn-secondary", "clear-history"),
					HxPost("/history/clear"),
					HxTarget("#history-table"),
					HxSwap("outerHTML"),
					"Clear",
				),
				historyTable(),
			),
		),
	)
	return body, form
}

func configForm() *VNode {
	return Form(ID("config-form"), Method("post"), Action("/config"),
		HxPost("/config"), HxTarget("this"), HxSwap("outerHTML"),
		formGroup(validate.FieldClientID, "Client ID", "text",
			"The identifier issued by the authorization server."),
		formGroup(validate.FieldClientSecret, "Client Secret", "password",
			"Required for confidential clients."),
		formGroup(validate.FieldRedirectURI, "Redirect URI", "url",
			"For example http://localhost:8080/callback"),
		Button(Type("submit"), Class("btn", "btn-primary"), "Save Configuration"),
	)
}

func formGroup(id, label, typ, hint string) *VNode {
	return Div(Class("form-group"),
		Label(For(id), label),
		Input(ID(id), Name(id), Type(typ),
			CustomAttr("hx-post", "/config/validate"),
			CustomAttr("hx-trigger", "blur"),
			HxTarget("#config-form"),
			HxSwap("outerHTML"),
		),
		Small(Class("form-hint"), hint),
	)
}

func historyTable() *VNode {
	return Table(ID("history-table"), Class("history-table"),
		Thead(Tr(Th("Time"), Th("Method"), Th("Path"), Th("Status"))),
		Tbody(),
	)
}
