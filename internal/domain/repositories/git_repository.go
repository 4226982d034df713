package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// GitRepository is the version control capability used by the fleet workflows.
// Every method addresses the working copy rooted at dir.
type GitRepository interface {
	// Clone clones remote into dir.
	Clone(ctx context.Context, remote, dir string, auth entities.GitAuth) error
	// IsRepository reports whether dir holds a git working copy.
	IsRepository(dir string) bool
	// ResetHard resets index and worktree to revision ("" means HEAD).
	ResetHard(dir, revision string) error
	// ResetSoft moves the current branch to revision, leaving index and worktree alone.
	ResetSoft(dir, revision string) error
	// Clean removes untracked files and directories.
	Clean(dir string) error
	// Add stages a path relative to dir.
	Add(dir, path string) error
	// StagedChanges lists paths whose index entry differs from HEAD.
	StagedChanges(dir string) ([]string, error)
	// HasStagedChanges reports whether anything is staged.
	HasStagedChanges(dir string) (bool, error)
	// IndexMatches reports whether the index holds exactly the tree of revision.
	IndexMatches(dir, revision string) (bool, error)
	// Diff renders the unified diff between worktree and index.
	Diff(dir string) (string, error)
	// Fetch updates the remote-tracking references of origin.
	Fetch(ctx context.Context, dir string, auth entities.GitAuth) error
	// Checkout switches to an existing local branch. keepIndex preserves staged
	// and worktree changes across the switch.
	Checkout(dir, branch string, keepIndex bool) error
	// CreateBranch creates branch at startPoint ("" means HEAD) and checks it out.
	CreateBranch(dir, branch, startPoint string) error
	// Tip returns the commit hash revision resolves to, or "" when it does not exist.
	Tip(dir, revision string) (string, error)
	// BranchExists reports whether a local branch exists.
	BranchExists(dir, branch string) (bool, error)
	// DeleteBranch removes a local branch.
	DeleteBranch(dir, branch string) error
	// Commit records the index and returns the new commit hash.
	Commit(dir, message string) (string, error)
	// Push publishes a local branch to origin under the same name.
	Push(ctx context.Context, dir, branch string, force bool, auth entities.GitAuth) error
	// Pull fast-forwards the current branch from origin.
	Pull(ctx context.Context, dir, branch string, auth entities.GitAuth) error
	// Head returns the name of the checked-out branch.
	Head(dir string) (string, error)
	// Remotes lists the configured remote names.
	Remotes(dir string) ([]string, error)
}
