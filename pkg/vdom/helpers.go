package vdom

// Text creates a text node. Rendering escapes its content.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Raw creates a node whose content is written without escaping. Never
// pass user input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}
