// Package behaviors holds the small page enhancements that sit around the
// toast surface and the validated form: copying a token, filtering the
// request history table, marking the active navigation link, pretty
// printing JSON blocks and the dark mode toggle.
//
// Each behavior works on a *vdom.VNode tree and is safe to re-run after the
// tree's content has been replaced.
package behaviors
