// Package folderpath handles the "/"-delimited path strings that identify
// deliverable folders. A folder's path is its durable identity: display
// renames never change it, so every helper here is a pure string operation.
package folderpath

import (
	"fmt"
	"strings"
)

const Separator = "/"

// ErrInvalidPath is returned for paths with empty or whitespace-only segments.
type ErrInvalidPath struct {
	Path string
}

func (e *ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid folder path: %q", e.Path)
}

// Parse splits a path into its segments. Each segment must be non-empty
// after trimming; segments are returned trimmed.
func Parse(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ErrInvalidPath{Path: path}
	}

	raw := strings.Split(path, Separator)
	segments := make([]string, len(raw))
	for i, segment := range raw {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			return nil, &ErrInvalidPath{Path: path}
		}
		segments[i] = trimmed
	}

	return segments, nil
}

// Normalize re-joins the parsed segments, collapsing stray whitespace
// around separators. Callers should store the normalized form.
func Normalize(path string) (string, error) {
	segments, err := Parse(path)
	if err != nil {
		return "", err
	}
	return strings.Join(segments, Separator), nil
}

// Parent returns the parent path, or "" for a root-level path.
func Parent(path string) (string, error) {
	segments, err := Parse(path)
	if err != nil {
		return "", err
	}
	if len(segments) == 1 {
		return "", nil
	}
	return strings.Join(segments[:len(segments)-1], Separator), nil
}

// Depth returns the number of segments in the path.
func Depth(path string) (int, error) {
	segments, err := Parse(path)
	if err != nil {
		return 0, err
	}
	return len(segments), nil
}

// Join appends a single folder name beneath parent. An empty parent
// produces a root-level path. The name itself must not contain the
// separator.
func Join(parent, name string) (string, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" || strings.Contains(trimmedName, Separator) {
		return "", &ErrInvalidPath{Path: name}
	}

	if strings.TrimSpace(parent) == "" {
		return trimmedName, nil
	}

	normalizedParent, err := Normalize(parent)
	if err != nil {
		return "", err
	}

	return normalizedParent + Separator + trimmedName, nil
}

// IsDescendant reports whether candidate sits anywhere beneath ancestor.
// A path is not a descendant of itself.
func IsDescendant(candidate, ancestor string) bool {
	normalizedCandidate, err := Normalize(candidate)
	if err != nil {
		return false
	}
	normalizedAncestor, err := Normalize(ancestor)
	if err != nil {
		return false
	}

	return strings.HasPrefix(normalizedCandidate, normalizedAncestor+Separator)
}

// IsDirectChild reports whether candidate is exactly one level beneath
// ancestor. Listing immediate subfolders must use this, not IsDescendant.
func IsDirectChild(candidate, ancestor string) bool {
	if !IsDescendant(candidate, ancestor) {
		return false
	}

	candidateDepth, err := Depth(candidate)
	if err != nil {
		return false
	}
	ancestorDepth, err := Depth(ancestor)
	if err != nil {
		return false
	}

	return candidateDepth == ancestorDepth+1
}

// IsRoot reports whether the path has a single segment.
func IsRoot(path string) bool {
	depth, err := Depth(path)
	return err == nil && depth == 1
}
