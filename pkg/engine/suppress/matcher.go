package suppress

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/secmon-lab/barrage/pkg/engine/aggregate"
)

// pathMatcher matches sanitized finding paths against one configured path.
// A pattern matches the path itself, anything under it as a directory, or the
// globs pattern, pattern/*.* and pattern/**/*.*. An absolute pattern under root
// is made relative to it, like finding paths are.
type pathMatcher struct {
	pattern string
	globs   []glob.Glob
}

func newPathMatcher(pattern, root string) *pathMatcher {
	p := strings.TrimRight(strings.TrimSpace(pattern), "/")
	if p != "" {
		p = aggregate.SanitizePath(p, root)
	}
	m := &pathMatcher{pattern: p}
	if p == "" || p == "." {
		return m
	}
	for _, expr := range []string{p, p + "/*.*", p + "/**/*.*"} {
		// patterns that are not valid globs still match by equality and prefix
		if g, err := glob.Compile(expr, '/'); err == nil {
			m.globs = append(m.globs, g)
		}
	}
	return m
}

func (x *pathMatcher) Match(p string) bool {
	if x.pattern == "" || p == "" {
		return false
	}
	if x.pattern == "." {
		return true
	}
	if aggregate.IsWithin(p, x.pattern) {
		return true
	}
	for _, g := range x.globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}
