package cms

import "strings"

// Portal directories nested one level below the document root. Pages under
// these need relative asset paths prefixed with "../".
var portalDirs = []string{"/customer/", "/admin/", "/manufacturer/", "/delivery/"}

// PathFixer rewrites relative asset and link paths by the prefix a page's
// directory depth requires. Absolute URLs, root-relative paths, and inline
// data URIs pass through untouched.
type PathFixer struct {
	base string
}

// NewPathFixer derives the prefix from the requesting page's path.
func NewPathFixer(pagePath string) PathFixer {
	for _, dir := range portalDirs {
		if strings.Contains(pagePath, dir) {
			return PathFixer{base: "../"}
		}
	}
	return PathFixer{}
}

func (f PathFixer) Fix(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "data:") {
		return path
	}
	return f.base + path
}
