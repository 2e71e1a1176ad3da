// Package avatar implements avatar file management for entities that
// own a single profile image.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"users_backend/internal/shared/strutil"
)

var (
	// ErrUnsupportedFileType is returned when the uploaded file's
	// extension is outside the allow-list. It is raised before any
	// storage I/O happens.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrOwnerNotPersisted is returned when the owning record has no
	// identity yet to key the file name on.
	ErrOwnerNotPersisted = errors.New("owner must be saved before uploading an avatar")
)

// allowedExtensions is the fixed set of accepted image extensions,
// matched case-insensitively.
var allowedExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {},
}

// Owner is the capability an entity exposes to have avatars managed
// for it. Implementations return their persisted ID, a stable kind
// name used in storage paths, and the currently stored relative path
// ("" when no avatar is set). Persisting a new path stays with the
// caller; the manager only touches storage.
type Owner interface {
	AvatarOwnerID() uint
	AvatarOwnerKind() string
	AvatarPath() string
}

// File is an uploaded image handed to the manager.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Storage is the subset of blob-store operations the manager needs.
// Following Go convention: the interface is defined by the consumer,
// not the provider (platform/storage).
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

// Manager stores and removes avatar files under deterministic keys:
// {rootDir}/{kebab(kind)}/{year}/{MM}/{ownerID}.{ext}. Keying the
// file name by owner ID guarantees at most one stored file per owner;
// partitioning by upload month keeps directory fan-out bounded.
type Manager struct {
	store   Storage
	rootDir string
	now     func() time.Time
}

// NewManager creates a Manager writing under rootDir
// ("thumbnails" when empty).
func NewManager(store Storage, rootDir string) *Manager {
	if rootDir == "" {
		rootDir = "thumbnails"
	}
	return &Manager{store: store, rootDir: rootDir, now: time.Now}
}

// Upload stores the image and returns its new relative key. Any
// previously stored blob for the owner is removed first. The caller
// is responsible for persisting the returned key on the owner record.
func (m *Manager) Upload(ctx context.Context, owner Owner, file File) (string, error) {
	if owner.AvatarOwnerID() == 0 {
		return "", ErrOwnerNotPersisted
	}

	// Validate the extension before touching storage.
	name, err := m.fileName(owner, file.Name)
	if err != nil {
		return "", err
	}

	// Replace, not append: drop the old blob so the owner never has
	// more than one stored file.
	if old := owner.AvatarPath(); old != "" {
		if err := m.removeIfExists(ctx, old); err != nil {
			return "", fmt.Errorf("failed to remove previous avatar: %w", err)
		}
	}

	key := m.keyPrefix(owner) + "/" + name
	if err := m.store.Put(ctx, key, file.Content, file.ContentType); err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	return key, nil
}

// Delete removes the stored blob when present. An owner without an
// avatar is a storage no-op; the caller clears the avatar field
// either way, which keeps the operation idempotent.
func (m *Manager) Delete(ctx context.Context, owner Owner) error {
	if path := owner.AvatarPath(); path != "" {
		return m.removeIfExists(ctx, path)
	}
	return nil
}

// PublicURL resolves the owner's avatar to a fully-qualified URL.
// The second return value is false when no avatar is set.
func (m *Manager) PublicURL(owner Owner) (string, bool) {
	if path := owner.AvatarPath(); path != "" {
		return m.store.PublicURL(path), true
	}
	return "", false
}

// keyPrefix builds the directory part of the storage key from the
// owner kind and the current calendar month.
func (m *Manager) keyPrefix(owner Owner) string {
	now := m.now()
	return fmt.Sprintf("%s/%s/%d/%02d",
		m.rootDir, strutil.Kebab(owner.AvatarOwnerKind()), now.Year(), int(now.Month()))
}

// fileName derives "{ownerID}.{ext}" and enforces the extension
// allow-list, case-insensitively.
func (m *Manager) fileName(owner Owner, original string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedFileType
	}
	return fmt.Sprintf("%d.%s", owner.AvatarOwnerID(), ext), nil
}

func (m *Manager) removeIfExists(ctx context.Context, key string) error {
	ok, err := m.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, key)
}
