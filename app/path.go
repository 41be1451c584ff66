package app

import (
	"path"
	"strings"
)

// cleanPath normalizes a URL prefix for static mounting. It ensures the path
// starts with '/' and applies path.Clean to collapse duplicates.
//
// Examples:
//
//	cleanPath("")          // "/"
//	cleanPath("static")    // "/static"
//	cleanPath("/a//b/")    // "/a/b"
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
