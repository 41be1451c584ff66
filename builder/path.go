package builder

import "strings"

// trimBase strips a single trailing slash from a local base segment.
//
// Examples:
//
//	trimBase("css/")   // "css"
//	trimBase("css//")  // "css/"
//	trimBase("/")      // ""
func trimBase(base string) string {
	return strings.TrimSuffix(base, "/")
}

// composePath joins a parent's full path and a local base with a single
// slash. An empty side is treated as absent.
//
// Examples:
//
//	composePath("", "css")              // "css"
//	composePath("//cdn.example", "")    // "//cdn.example"
//	composePath("//cdn.example", "css") // "//cdn.example/css"
func composePath(parent, base string) string {
	if parent == "" {
		return base
	}
	if base == "" {
		return parent
	}
	return parent + "/" + base
}

// appendFilename appends a filename to a full path.
//
// Without a filename the path is returned unchanged. One leading slash is
// stripped from the filename, so "" and "/" both append a bare separator. A
// separator is only added when the path is non-empty.
//
// Examples:
//
//	appendFilename("//b", nil)       // "//b"
//	appendFilename("//b", &"")       // "//b/"
//	appendFilename("//b", &"/a.css") // "//b/a.css"
//	appendFilename("", &"a.css")     // "a.css"
func appendFilename(p string, filename *string) string {
	if filename == nil {
		return p
	}
	name := strings.TrimPrefix(*filename, "/")
	if p == "" {
		return name
	}
	return p + "/" + name
}
