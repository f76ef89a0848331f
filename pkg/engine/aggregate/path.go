package aggregate

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// SanitizePath normalizes a finding location: it strips the file:// scheme, decodes
// percent-escapes, converts backslashes, and makes absolute paths under root relative.
// Applying it twice gives the same result.
func SanitizePath(p, root string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(p, "file://"); ok {
		p = rest
		if decoded, err := url.PathUnescape(p); err == nil {
			p = decoded
		}
		// file:///C:/src becomes /C:/src
		if len(p) >= 3 && p[0] == '/' && isDrive(p[1:]) {
			p = p[1:]
		}
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)

	if isAbs(p) && root != "" {
		if p == root {
			return "."
		}
		if rel, ok := strings.CutPrefix(p, root+"/"); ok {
			return rel
		}
	}
	return p
}

// NormalizeRoot converts a directory into the absolute slash form SanitizePath compares against.
func NormalizeRoot(dir string) string {
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return path.Clean(filepath.ToSlash(dir))
}

// IsWithin reports whether p equals dir or lies under it. Both must be sanitized.
func IsWithin(p, dir string) bool {
	if dir == "" || dir == "." {
		return false
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || isDrive(p)
}

func isDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
