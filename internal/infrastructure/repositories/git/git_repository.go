package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	remoteName = "origin"

	fallbackAuthorName  = "reposync"
	fallbackAuthorEmail = "reposync@localhost"
)

// GitRepository implements repositories.GitRepository on top of go-git, without
// shelling out to a git binary.
type GitRepository struct {
	now func() time.Time
}

// NewGitRepository creates a new go-git backed repository capability.
func NewGitRepository() *GitRepository {
	return &GitRepository{now: time.Now}
}

var _ repositories.GitRepository = (*GitRepository)(nil)

func (it *GitRepository) Clone(ctx context.Context, remote, dir string, auth entities.GitAuth) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0o750); err != nil { //nolint:mnd // directory permissions
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dir), err)
	}

	//nolint:exhaustruct // only the fields needed for a plain clone
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:        remote,
		RemoteName: remoteName,
		Auth:       transportAuth(auth),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", remote, err)
	}
	return nil
}

func (it *GitRepository) IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info != nil
}

func (it *GitRepository) ResetHard(dir, revision string) error {
	repo, wt, err := open(dir)
	if err != nil {
		return err
	}

	hash, err := resolve(repo, revision)
	if err != nil {
		return err
	}
	//nolint:exhaustruct // hard reset to a commit
	if err = wt.Reset(&gogit.ResetOptions{Commit: hash, Mode: gogit.HardReset}); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", describe(revision), err)
	}
	return nil
}

func (it *GitRepository) ResetSoft(dir, revision string) error {
	repo, wt, err := open(dir)
	if err != nil {
		return err
	}

	hash, err := resolve(repo, revision)
	if err != nil {
		return err
	}
	//nolint:exhaustruct // move the branch only
	if err = wt.Reset(&gogit.ResetOptions{Commit: hash, Mode: gogit.SoftReset}); err != nil {
		return fmt.Errorf("failed to move HEAD to %s: %w", describe(revision), err)
	}
	return nil
}

func (it *GitRepository) Clean(dir string) error {
	_, wt, err := open(dir)
	if err != nil {
		return err
	}
	if err = wt.Clean(&gogit.CleanOptions{Dir: true}); err != nil {
		return fmt.Errorf("failed to clean: %w", err)
	}
	return nil
}

func (it *GitRepository) Add(dir, path string) error {
	_, wt, err := open(dir)
	if err != nil {
		return err
	}
	if _, err = wt.Add(filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

func (it *GitRepository) StagedChanges(dir string) ([]string, error) {
	_, wt, err := open(dir)
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}

	var staged []string
	for path, fileStatus := range status {
		if fileStatus.Staging != gogit.Unmodified && fileStatus.Staging != gogit.Untracked {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

func (it *GitRepository) HasStagedChanges(dir string) (bool, error) {
	staged, err := it.StagedChanges(dir)
	if err != nil {
		return false, err
	}
	return len(staged) > 0, nil
}

// IndexMatches compares every index entry with the files of the revision tree,
// by path, blob hash and mode.
func (it *GitRepository) IndexMatches(dir, revision string) (bool, error) {
	repo, _, err := open(dir)
	if err != nil {
		return false, err
	}

	hash, err := resolve(repo, revision)
	if err != nil {
		return false, err
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return false, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return false, fmt.Errorf("failed to read tree of %s: %w", hash, err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return false, fmt.Errorf("failed to read index: %w", err)
	}

	entries := make(map[string]*index.Entry, len(idx.Entries))
	for _, entry := range idx.Entries {
		entries[entry.Name] = entry
	}

	matched := 0
	mismatch := false
	err = tree.Files().ForEach(func(file *object.File) error {
		entry, ok := entries[file.Name]
		if !ok || entry.Hash != file.Hash || entry.Mode != file.Mode {
			mismatch = true
			return storer.ErrStop
		}
		matched++
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to walk tree of %s: %w", hash, err)
	}
	return !mismatch && matched == len(entries), nil
}

func (it *GitRepository) Diff(dir string) (string, error) {
	repo, wt, err := open(dir)
	if err != nil {
		return "", err
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to read status: %w", err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return "", fmt.Errorf("failed to read index: %w", err)
	}

	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Worktree != gogit.Unmodified && fileStatus.Worktree != gogit.Untracked {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	patches := make([]*filePatch, 0, len(paths))
	for _, path := range paths {
		var from *blob
		if entry, entryErr := idx.Entry(path); entryErr == nil {
			content, readErr := readBlob(repo, entry.Hash)
			if readErr != nil {
				return "", readErr
			}
			from = newBlob(path, entry.Mode, content)
		}

		var to *blob
		if status[path].Worktree != gogit.Deleted {
			if to, err = worktreeBlob(dir, path); err != nil {
				return "", err
			}
		}

		patches = append(patches, newFilePatch(from, to))
	}
	return renderPatch(patches...)
}

func (it *GitRepository) Fetch(ctx context.Context, dir string, auth entities.GitAuth) error {
	repo, _, err := open(dir)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // default refspecs of the remote
	err = repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		Auth:       transportAuth(auth),
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s: %w", remoteName, err)
	}
	return nil
}

func (it *GitRepository) Checkout(dir, branch string, keepIndex bool) error {
	_, wt, err := open(dir)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // branch checkout
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Keep:   keepIndex,
		Force:  !keepIndex,
	})
	if err != nil {
		return fmt.Errorf("failed to check out %s: %w", branch, err)
	}
	return nil
}

// CreateBranch creates branch and checks it out. Starting from HEAD keeps the
// index and worktree; starting from another revision resets them to it.
func (it *GitRepository) CreateBranch(dir, branch, startPoint string) error {
	repo, wt, err := open(dir)
	if err != nil {
		return err
	}

	hash, err := resolve(repo, startPoint)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // branch creation
	err = wt.Checkout(&gogit.CheckoutOptions{
		Hash:   hash,
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
		Keep:   startPoint == "",
		Force:  startPoint != "",
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", branch, describe(startPoint), err)
	}
	return nil
}

func (it *GitRepository) Tip(dir, revision string) (string, error) {
	repo, _, err := open(dir)
	if err != nil {
		return "", err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	switch {
	case err == nil:
		return hash.String(), nil
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return "", nil
	default:
		return "", fmt.Errorf("failed to resolve %s: %w", revision, err)
	}
}

func (it *GitRepository) BranchExists(dir, branch string) (bool, error) {
	repo, _, err := open(dir)
	if err != nil {
		return false, err
	}

	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), false)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to look up branch %s: %w", branch, err)
	}
}

func (it *GitRepository) DeleteBranch(dir, branch string) error {
	repo, _, err := open(dir)
	if err != nil {
		return err
	}
	if err = repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(branch)); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}

func (it *GitRepository) Commit(dir, message string) (string, error) {
	repo, wt, err := open(dir)
	if err != nil {
		return "", err
	}

	//nolint:exhaustruct // author only, committer defaults to it
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: it.signature(repo)})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

func (it *GitRepository) Push(
	ctx context.Context,
	dir, branch string,
	force bool,
	auth entities.GitAuth,
) error {
	repo, _, err := open(dir)
	if err != nil {
		return err
	}

	ref := plumbing.NewBranchReferenceName(branch)
	spec := fmt.Sprintf("%s:%s", ref, ref)
	if force {
		spec = "+" + spec
	}

	//nolint:exhaustruct // single refspec push
	err = repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(spec)},
		Auth:       transportAuth(auth),
		Force:      force,
	})
	switch {
	case err == nil, errors.Is(err, gogit.NoErrAlreadyUpToDate):
		return nil
	case isRejection(err):
		return fmt.Errorf("%w: %w", entities.ErrPushRejected, err)
	default:
		return fmt.Errorf("failed to push %s: %w", branch, err)
	}
}

func (it *GitRepository) Pull(ctx context.Context, dir, branch string, auth entities.GitAuth) error {
	_, wt, err := open(dir)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // single branch pull
	err = wt.PullContext(ctx, &gogit.PullOptions{
		RemoteName:    remoteName,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          transportAuth(auth),
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull %s: %w", branch, err)
	}
	return nil
}

func (it *GitRepository) Head(dir string) (string, error) {
	repo, _, err := open(dir)
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", ref.Hash())
	}
	return ref.Name().Short(), nil
}

func (it *GitRepository) Remotes(dir string) ([]string, error) {
	repo, _, err := open(dir)
	if err != nil {
		return nil, err
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// signature reads user.name and user.email from the global git configuration,
// falling back to the environment and then to a fixed identity.
func (it *GitRepository) signature(repo *gogit.Repository) *object.Signature {
	name := os.Getenv("GIT_AUTHOR_NAME")
	email := os.Getenv("GIT_AUTHOR_EMAIL")

	if cfg, err := repo.ConfigScoped(config.GlobalScope); err == nil {
		if name == "" {
			name = cfg.User.Name
		}
		if email == "" {
			email = cfg.User.Email
		}
	}
	if name == "" {
		name = fallbackAuthorName
	}
	if email == "" {
		email = fallbackAuthorEmail
	}
	return &object.Signature{Name: name, Email: email, When: it.now()}
}

func open(dir string) (*gogit.Repository, *gogit.Worktree, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open worktree at %s: %w", dir, err)
	}
	return repo, wt, nil
}

func resolve(repo *gogit.Repository, revision string) (plumbing.Hash, error) {
	if revision == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to read HEAD: %w", err)
		}
		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", revision, err)
	}
	return *hash, nil
}

func readBlob(repo *gogit.Repository, hash plumbing.Hash) (string, error) {
	blob, err := repo.BlobObject(hash)
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	return string(data), nil
}

func worktreeBlob(dir, path string) (*blob, error) {
	fullPath := filepath.Join(dir, filepath.FromSlash(path))
	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	mode, err := filemode.NewFromOSFileMode(info.Mode())
	if err != nil {
		return nil, fmt.Errorf("unsupported file mode of %s: %w", path, err)
	}

	if mode == filemode.Symlink {
		target, linkErr := os.Readlink(fullPath)
		if linkErr != nil {
			return nil, fmt.Errorf("failed to read link %s: %w", path, linkErr)
		}
		return newBlob(path, mode, target), nil
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return newBlob(path, mode, string(data)), nil
}

func transportAuth(auth entities.GitAuth) transport.AuthMethod {
	if auth.IsZero() {
		return nil
	}
	return &http.BasicAuth{Username: auth.Username, Password: auth.Password}
}

func isRejection(err error) bool {
	if errors.Is(err, gogit.ErrForceNeeded) {
		return true
	}
	message := err.Error()
	return strings.Contains(message, "non-fast-forward") || strings.Contains(message, "rejected")
}

func describe(revision string) string {
	if revision == "" {
		return "HEAD"
	}
	return revision
}
