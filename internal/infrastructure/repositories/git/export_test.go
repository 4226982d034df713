package git

import "github.com/go-git/go-git/v5/plumbing/filemode"

// UnifiedDiff renders the patch between two regular files. A nil side is an
// absent file.
func UnifiedDiff(path string, before, after *string) (string, error) {
	var from, to *blob
	if before != nil {
		from = newBlob(path, filemode.Regular, *before)
	}
	if after != nil {
		to = newBlob(path, filemode.Regular, *after)
	}
	return renderPatch(newFilePatch(from, to))
}
