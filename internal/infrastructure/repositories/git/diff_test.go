//go:build unit

package git_test

import (
	"fmt"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/git"
)

func ptr(value string) *string {
	return &value
}

func blobHash(content string) plumbing.Hash {
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(content))
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	t.Run("should render nothing for identical content", func(t *testing.T) {
		t.Parallel()

		// given
		content := "a\nb\n"

		// when
		patch, err := git.UnifiedDiff("f.txt", ptr(content), ptr(content))

		// then
		require.NoError(t, err)
		assert.Empty(t, patch)
	})

	t.Run("should render a changed line with its context", func(t *testing.T) {
		t.Parallel()

		// given
		before := "a\nb\nc\n"
		after := "a\nB\nc\n"

		// when
		patch, err := git.UnifiedDiff("f.txt", ptr(before), ptr(after))

		// then
		require.NoError(t, err)
		assert.Equal(t, "diff --git a/f.txt b/f.txt\n"+
			fmt.Sprintf("index %s..%s 100644\n", blobHash(before), blobHash(after))+
			"--- a/f.txt\n"+
			"+++ b/f.txt\n"+
			"@@ -1,3 +1,3 @@\n"+
			" a\n"+
			"-b\n"+
			"+B\n"+
			" c\n", patch)
	})

	t.Run("should split distant changes into separate hunks", func(t *testing.T) {
		t.Parallel()

		// given
		before := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
		after := "one\n2\n3\n4\n5\n6\n7\n8\n9\nten\n"

		// when
		patch, err := git.UnifiedDiff("n.txt", ptr(before), ptr(after))

		// then
		require.NoError(t, err)
		assert.Contains(t, patch, "@@ -1,4 +1,4 @@\n-1\n+one\n 2\n 3\n 4\n")
		assert.Contains(t, patch, "@@ -7,4 +7,4 @@ 6\n 7\n 8\n 9\n-10\n+ten\n")
	})

	t.Run("should render a new file against /dev/null starting at line zero", func(t *testing.T) {
		t.Parallel()

		// given
		after := "x\ny\n"

		// when
		patch, err := git.UnifiedDiff("new.txt", nil, ptr(after))

		// then
		require.NoError(t, err)
		assert.Contains(t, patch, "new file mode 100644\n")
		assert.Contains(t, patch, "--- /dev/null\n+++ b/new.txt\n@@ -0,0 +1,2 @@\n+x\n+y\n")
	})

	t.Run("should render a deleted file against /dev/null", func(t *testing.T) {
		t.Parallel()

		// given
		before := "x\n"

		// when
		patch, err := git.UnifiedDiff("old.txt", ptr(before), nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, patch, "deleted file mode 100644\n")
		assert.Contains(t, patch, "--- a/old.txt\n+++ /dev/null\n@@ -1 +0,0 @@\n-x\n")
	})

	t.Run("should mark a missing trailing newline", func(t *testing.T) {
		t.Parallel()

		// given
		before := "a\n"
		after := "a\nb"

		// when
		patch, err := git.UnifiedDiff("f.txt", ptr(before), ptr(after))

		// then
		require.NoError(t, err)
		assert.Contains(t, patch, "@@ -1 +1,2 @@\n a\n+b\n\\ No newline at end of file\n")
	})

	t.Run("should not print hunks for binary content", func(t *testing.T) {
		t.Parallel()

		// given
		before := "\x00\x01"
		after := "\x00\x02"

		// when
		patch, err := git.UnifiedDiff("logo.bin", ptr(before), ptr(after))

		// then
		require.NoError(t, err)
		assert.Contains(t, patch, "Binary files a/logo.bin and b/logo.bin differ\n")
		assert.NotContains(t, patch, "@@")
	})
}
