//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"slices"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// PushCall records a single invocation of Push.
type PushCall struct {
	Dir    string
	Branch string
	Force  bool
	Auth   entities.GitAuth
}

// SpyGitRepository implements repositories.GitRepository in memory. It keeps a
// single staged set and branch table shared by every directory, which is enough
// for one-repository scenarios.
type SpyGitRepository struct {
	// --- IsRepository ---
	AllProvisioned bool
	Provisioned    map[string]bool

	// --- Clone ---
	CloneErr error
	Clones   []string // remote -> dir

	// --- ResetHard / Clean / Checkout / CreateBranch / DeleteBranch ---
	ResetErr    error
	CleanErr    error
	CheckoutErr error
	Branches    map[string]bool
	HeadBranch  string
	Operations  []string

	// --- Tip / IndexMatches / ResetSoft ---
	// Tips maps branch names (and "origin/<branch>") to commit hashes. Commit
	// moves the tip of HeadBranch and remembers the staged set it recorded.
	Tips        map[string]string
	commitTrees map[string][]string

	// --- Remotes ---
	RemoteNames []string

	// --- Add / StagedChanges / HasStagedChanges ---
	StageOnAdd bool
	AddErr     error
	Added      []string
	Staged     []string

	// --- Diff ---
	DiffOutput string
	DiffErr    error

	// --- Fetch / Pull ---
	FetchErr error
	PullErr  error
	Fetches  int
	Pulls    []string

	// --- Commit ---
	CommitErr error
	Commits   []string

	// --- Push ---
	PushErr error
	Pushes  []PushCall
}

// NewSpyGitRepository creates a spy whose checkouts all exist, on branch main.
func NewSpyGitRepository() *SpyGitRepository {
	return &SpyGitRepository{
		AllProvisioned: true,
		Provisioned:    map[string]bool{},
		Branches:       map[string]bool{"main": true},
		HeadBranch:     "main",
		Tips:           map[string]string{},
		commitTrees:    map[string][]string{},
		RemoteNames:    []string{"origin"},
	}
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) Clone(_ context.Context, remote, dir string, _ entities.GitAuth) error {
	s.Clones = append(s.Clones, remote+" -> "+dir)
	if s.CloneErr != nil {
		return s.CloneErr
	}
	s.Provisioned[dir] = true
	return nil
}

func (s *SpyGitRepository) IsRepository(dir string) bool {
	return s.AllProvisioned || s.Provisioned[dir]
}

func (s *SpyGitRepository) ResetHard(_, revision string) error {
	s.Operations = append(s.Operations, "reset "+revision)
	if s.ResetErr != nil {
		return s.ResetErr
	}
	s.Staged = nil
	return nil
}

func (s *SpyGitRepository) ResetSoft(_, revision string) error {
	s.Operations = append(s.Operations, "reset soft "+revision)
	s.Tips[s.HeadBranch] = revision
	s.Staged = nil
	return nil
}

func (s *SpyGitRepository) Clean(_ string) error {
	s.Operations = append(s.Operations, "clean")
	return s.CleanErr
}

func (s *SpyGitRepository) Add(_, path string) error {
	s.Added = append(s.Added, path)
	if s.AddErr != nil {
		return s.AddErr
	}
	if s.StageOnAdd && !slices.Contains(s.Staged, path) {
		s.Staged = append(s.Staged, path)
	}
	return nil
}

func (s *SpyGitRepository) StagedChanges(_ string) ([]string, error) {
	return append([]string(nil), s.Staged...), nil
}

func (s *SpyGitRepository) HasStagedChanges(_ string) (bool, error) {
	return len(s.Staged) > 0, nil
}

// IndexMatches compares the staged paths with those recorded by the commit.
func (s *SpyGitRepository) IndexMatches(_, revision string) (bool, error) {
	tree, ok := s.commitTrees[revision]
	if !ok {
		return false, nil
	}
	staged := slices.Clone(s.Staged)
	slices.Sort(staged)
	return slices.Equal(tree, staged), nil
}

func (s *SpyGitRepository) Tip(_, revision string) (string, error) {
	return s.Tips[revision], nil
}

func (s *SpyGitRepository) Diff(_ string) (string, error) {
	return s.DiffOutput, s.DiffErr
}

func (s *SpyGitRepository) Fetch(_ context.Context, _ string, _ entities.GitAuth) error {
	s.Fetches++
	return s.FetchErr
}

func (s *SpyGitRepository) Checkout(_, branch string, keepIndex bool) error {
	s.Operations = append(s.Operations, fmt.Sprintf("checkout %s keep=%t", branch, keepIndex))
	if s.CheckoutErr != nil {
		return s.CheckoutErr
	}
	if !s.Branches[branch] {
		return fmt.Errorf("branch %s not found", branch)
	}
	s.HeadBranch = branch
	return nil
}

func (s *SpyGitRepository) CreateBranch(_, branch, startPoint string) error {
	s.Operations = append(s.Operations, fmt.Sprintf("create %s from %q", branch, startPoint))
	s.Branches[branch] = true
	if startPoint == "" {
		startPoint = s.HeadBranch
	}
	if tip, ok := s.Tips[startPoint]; ok {
		s.Tips[branch] = tip
	}
	s.HeadBranch = branch
	return nil
}

func (s *SpyGitRepository) BranchExists(_, branch string) (bool, error) {
	return s.Branches[branch], nil
}

func (s *SpyGitRepository) DeleteBranch(_, branch string) error {
	s.Operations = append(s.Operations, "delete "+branch)
	delete(s.Branches, branch)
	delete(s.Tips, branch)
	return nil
}

func (s *SpyGitRepository) Commit(_, message string) (string, error) {
	if s.CommitErr != nil {
		return "", s.CommitErr
	}
	s.Commits = append(s.Commits, message)
	hash := fmt.Sprintf("%040d", len(s.Commits))
	tree := slices.Clone(s.Staged)
	slices.Sort(tree)
	s.commitTrees[hash] = tree
	s.Tips[s.HeadBranch] = hash
	s.Staged = nil
	return hash, nil
}

func (s *SpyGitRepository) Push(
	_ context.Context, dir, branch string, force bool, auth entities.GitAuth,
) error {
	s.Pushes = append(s.Pushes, PushCall{Dir: dir, Branch: branch, Force: force, Auth: auth})
	return s.PushErr
}

func (s *SpyGitRepository) Pull(_ context.Context, _, branch string, _ entities.GitAuth) error {
	s.Pulls = append(s.Pulls, branch)
	return s.PullErr
}

func (s *SpyGitRepository) Head(_ string) (string, error) {
	return s.HeadBranch, nil
}

func (s *SpyGitRepository) Remotes(_ string) ([]string, error) {
	return slices.Clone(s.RemoteNames), nil
}
