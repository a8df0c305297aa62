// Package gitstore keeps the task snapshot under a ref of a git repository.
package gitstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/runoshun/todo/internal/domain"
)

// SnapshotFile is the tree entry holding the snapshot blob.
const SnapshotFile = "tasks.json"

// Store implements domain.SnapshotStore using git plumbing.
//
// Data structure:
//
//	<ref> → commit
//	          tree
//	            tasks.json → blob (snapshot)
//	          parent → previous save
//
// Every Save adds a commit, so `git log <ref>` shows the save history.
type Store struct {
	repo *git.Repository
	now  func() time.Time
	ref  plumbing.ReferenceName
	mu   sync.Mutex
}

// Ensure Store implements domain.SnapshotStore and domain.SnapshotInspector.
var (
	_ domain.SnapshotStore     = (*Store)(nil)
	_ domain.SnapshotInspector = (*Store)(nil)
)

// Open opens the repository at path, creating a bare one if the
// directory holds no repository yet.
func Open(path, ref string) (*Store, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create repository directory: %w", err)
	}
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(path, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, ref), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, ref string) *Store {
	if ref == "" {
		ref = domain.DefaultGitRef
	}
	return &Store{
		repo: repo,
		ref:  plumbing.ReferenceName(ref),
		now:  time.Now,
	}
}

// Load returns the snapshot at the tip of the ref, or nil if the ref does not exist.
func (s *Store) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commit, err := s.tip()
	if err != nil || commit == nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get snapshot tree: %w", err)
	}
	entry, err := tree.FindEntry(SnapshotFile)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", SnapshotFile, err)
	}
	return s.readBlob(entry.Hash)
}

// Save commits the snapshot on top of the current tip and moves the ref.
func (s *Store) Save(_ context.Context, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobHash, err := s.writeBlob(snapshot)
	if err != nil {
		return err
	}
	treeHash, err := s.writeTree(blobHash)
	if err != nil {
		return err
	}

	var parents []plumbing.Hash
	prev, err := s.tip()
	if err != nil {
		return err
	}
	if prev != nil {
		if prev.TreeHash == treeHash {
			return nil // unchanged
		}
		parents = append(parents, prev.Hash)
	}

	sig := object.Signature{Name: domain.AppName, Email: domain.AppName + "@localhost", When: s.now()}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      "Save task snapshot\n",
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	obj := s.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return fmt.Errorf("encode commit: %w", err)
	}
	commitHash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return fmt.Errorf("store commit: %w", err)
	}

	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(s.ref, commitHash)); err != nil {
		return fmt.Errorf("set snapshot ref: %w", err)
	}
	return nil
}

// Revisions returns up to limit saves, newest first. A limit of 0 means all.
func (s *Store) Revisions(_ context.Context, limit int) ([]domain.SnapshotRevision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	commit, err := s.tip()
	if err != nil || commit == nil {
		return nil, err
	}
	var revs []domain.SnapshotRevision
	for commit != nil {
		size, err := s.snapshotSize(commit)
		if err != nil {
			return nil, err
		}
		revs = append(revs, domain.SnapshotRevision{
			SavedAt: commit.Committer.When,
			ID:      commit.Hash.String(),
			Size:    size,
		})
		if limit > 0 && len(revs) >= limit {
			break
		}
		if commit.NumParents() == 0 {
			break
		}
		if commit, err = commit.Parent(0); err != nil {
			return nil, fmt.Errorf("walk history: %w", err)
		}
	}
	return revs, nil
}

func (s *Store) snapshotSize(commit *object.Commit) (int64, error) {
	tree, err := commit.Tree()
	if err != nil {
		return 0, fmt.Errorf("get snapshot tree: %w", err)
	}
	entry, err := tree.FindEntry(SnapshotFile)
	if err != nil {
		return 0, fmt.Errorf("find %s: %w", SnapshotFile, err)
	}
	blob, err := s.repo.BlobObject(entry.Hash)
	if err != nil {
		return 0, fmt.Errorf("get snapshot blob: %w", err)
	}
	return blob.Size, nil
}

// tip returns the commit the ref points at, or nil if the ref is missing.
func (s *Store) tip() (*object.Commit, error) {
	ref, err := s.repo.Reference(s.ref, true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot ref: %w", err)
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("get snapshot commit: %w", err)
	}
	return commit, nil
}

func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

func (s *Store) writeTree(blob plumbing.Hash) (plumbing.Hash, error) {
	tree := &object.Tree{Entries: []object.TreeEntry{{
		Name: SnapshotFile,
		Mode: filemode.Regular,
		Hash: blob,
	}}}

	obj := s.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode tree: %w", err)
	}

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store tree: %w", err)
	}

	return hash, nil
}

func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}
