package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// blob is one side of an index/worktree comparison. A nil *blob is an absent side.
type blob struct {
	path    string
	mode    filemode.FileMode
	content string
}

func newBlob(path string, mode filemode.FileMode, content string) *blob {
	return &blob{path: path, mode: mode, content: content}
}

func (b *blob) Hash() plumbing.Hash {
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(b.content))
}

func (b *blob) Mode() filemode.FileMode { return b.mode }
func (b *blob) Path() string            { return b.path }

func (b *blob) isBinary() bool {
	return b != nil && strings.ContainsRune(b.content, 0)
}

type chunk struct {
	content   string
	operation diff.Operation
}

func (c chunk) Content() string      { return c.content }
func (c chunk) Type() diff.Operation { return c.operation }

type filePatch struct {
	from, to *blob
	chunks   []diff.Chunk
}

// newFilePatch compares two sides line by line. It returns nil when both sides
// hold the same content in the same mode.
func newFilePatch(from, to *blob) *filePatch {
	if from != nil && to != nil && from.content == to.content && from.mode == to.mode {
		return nil
	}

	var before, after string
	if from != nil {
		before = from.content
	}
	if to != nil {
		after = to.content
	}

	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lineArray)

	chunks := make([]diff.Chunk, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		chunks = append(chunks, chunk{content: d.Text, operation: operationOf(d.Type)})
	}
	return &filePatch{from: from, to: to, chunks: chunks}
}

func (p *filePatch) IsBinary() bool {
	return p.from.isBinary() || p.to.isBinary()
}

// Files returns untyped nils for absent sides, which the encoder relies on to
// print new and deleted file headers.
func (p *filePatch) Files() (diff.File, diff.File) {
	var from, to diff.File
	if p.from != nil {
		from = p.from
	}
	if p.to != nil {
		to = p.to
	}
	return from, to
}

func (p *filePatch) Chunks() []diff.Chunk {
	if p.IsBinary() {
		return nil
	}
	return p.chunks
}

type patch []diff.FilePatch

func (p patch) FilePatches() []diff.FilePatch { return p }
func (p patch) Message() string               { return "" }

// renderPatch encodes the file patches in git's unified format. Nil entries are
// ignored.
func renderPatch(filePatches ...*filePatch) (string, error) {
	var encoded patch
	for _, filePatch := range filePatches {
		if filePatch != nil {
			encoded = append(encoded, filePatch)
		}
	}
	if len(encoded) == 0 {
		return "", nil
	}

	var out strings.Builder
	if err := diff.NewUnifiedEncoder(&out, diff.DefaultContextLines).Encode(encoded); err != nil {
		return "", fmt.Errorf("failed to encode diff: %w", err)
	}
	return out.String(), nil
}

func operationOf(op diffmatchpatch.Operation) diff.Operation {
	switch op {
	case diffmatchpatch.DiffInsert:
		return diff.Add
	case diffmatchpatch.DiffDelete:
		return diff.Delete
	case diffmatchpatch.DiffEqual:
		return diff.Equal
	}
	return diff.Equal
}
