package render

// booleanAttrs are written without a value when true and omitted when false.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"label":  true,
	"small":  true,
	"span":   true,
	"strong": true,
	"td":     true,
	"th":     true,
	"title":  true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}
