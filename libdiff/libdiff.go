// Package libdiff renders textual diffs between two versions of a
// document's bytes, for dry-run previews and backup comparison.
package libdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text returns a patch-style rendering of the changes from old to new.
// Empty result means the inputs are identical.
func Text(old, new string) string {
	if old == new {
		return ""
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(old, new, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(old, diffs)
	return dmp.PatchToText(patches)
}

// Pretty returns a human-oriented colored rendering of the changes.
func Pretty(old, new string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(old, new, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
