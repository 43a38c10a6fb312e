package behaviors

import (
	"net/url"

	"github.com/vango-dev/pagefx/pkg/routepath"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

// ActiveClass marks the navigation link for the current page.
const ActiveClass = "active"

// SetActiveNav marks each .nav-links anchor whose path equals path, or is a
// non-root ancestor of it, as active, and clears the mark from the rest.
// Paths are compared in canonical form, segment by segment.
func SetActiveNav(root *vdom.VNode, path string) {
	for _, link := range root.FindAll(vdom.Within(vdom.ByClass("nav-links"), vdom.ByTag("a"))) {
		link.RemoveClass(ActiveClass)
		linkPath := hrefPath(link.Attr("href"))
		if routepath.Within(path, linkPath) {
			link.AddClass(ActiveClass)
		}
	}
}

// hrefPath resolves the path component of href, treating relative and
// absolute links alike.
func hrefPath(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
