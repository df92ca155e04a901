package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// matchAny reports whether relPath matches any of patterns.
func matchAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-normalised relative path against a glob.
// Patterns without "**" are tried against the whole path and the base name,
// so "*.md" matches at any depth. Supported "**" forms are "**/x", "x/**"
// and "a/**/b".
func matchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "**") {
		return match(pattern, relPath) || match(pattern, path.Base(relPath))
	}

	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	switch {
	case prefix == "" && suffix == "":
		return true

	case prefix == "":
		// "**/x": x matches whole trailing components or any one component.
		if hasPathSuffix(relPath, suffix) {
			return true
		}
		for _, part := range strings.Split(relPath, "/") {
			if match(suffix, part) {
				return true
			}
		}
		return false

	case suffix == "":
		return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")

	default:
		if !strings.HasPrefix(relPath, prefix+"/") {
			return false
		}
		rest := strings.TrimPrefix(relPath, prefix+"/")
		return hasPathSuffix(rest, suffix) || match(suffix, path.Base(relPath))
	}
}

// hasPathSuffix reports whether suffix equals relPath or its trailing
// slash-separated components.
func hasPathSuffix(relPath, suffix string) bool {
	return relPath == suffix || strings.HasSuffix(relPath, "/"+suffix)
}

func match(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
