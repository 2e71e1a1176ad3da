package avatar

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory Storage implementation for testing.
type fakeStorage struct {
	objects map[string][]byte
	baseURL string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, baseURL: "http://cdn.test"}
}

func (f *fakeStorage) Put(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if _, ok := f.objects[key]; !ok {
		return fmt.Errorf("no such key: %s", key)
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return f.baseURL + "/" + key
}

// testOwner implements Owner with settable state.
type testOwner struct {
	id   uint
	kind string
	path string
}

func (o *testOwner) AvatarOwnerID() uint     { return o.id }
func (o *testOwner) AvatarOwnerKind() string { return o.kind }
func (o *testOwner) AvatarPath() string      { return o.path }

// fixedManager returns a Manager with a deterministic clock.
func fixedManager(store Storage) *Manager {
	m := NewManager(store, "thumbnails")
	m.now = func() time.Time {
		return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	return m
}

func TestManager_Upload(t *testing.T) {
	t.Run("stores file under deterministic key", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)
		owner := &testOwner{id: 7, kind: "user"}

		key, err := m.Upload(context.Background(), owner, File{
			Name:    "selfie.PNG",
			Content: strings.NewReader("image-bytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, "thumbnails/user/2026/03/7.png", key)
		assert.Contains(t, store.objects, key)
	})

	t.Run("uploading twice leaves exactly one stored file", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)
		owner := &testOwner{id: 7, kind: "user"}

		first, err := m.Upload(context.Background(), owner, File{
			Name:    "a.jpg",
			Content: strings.NewReader("old"),
		})
		require.NoError(t, err)
		owner.path = first

		second, err := m.Upload(context.Background(), owner, File{
			Name:    "b.png",
			Content: strings.NewReader("new"),
		})
		require.NoError(t, err)

		assert.NotContains(t, store.objects, first, "old file should be removed")
		assert.Contains(t, store.objects, second)
		assert.Len(t, store.objects, 1)
	})

	t.Run("rejects unsaved owner", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)

		_, err := m.Upload(context.Background(), &testOwner{id: 0, kind: "user"}, File{
			Name:    "a.jpg",
			Content: strings.NewReader("x"),
		})

		assert.ErrorIs(t, err, ErrOwnerNotPersisted)
		assert.Empty(t, store.objects, "nothing should be written")
	})

	t.Run("kebab-cases multi-word owner kinds", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)
		owner := &testOwner{id: 3, kind: "ServiceProvider"}

		key, err := m.Upload(context.Background(), owner, File{
			Name:    "logo.webp",
			Content: strings.NewReader("x"),
		})

		require.NoError(t, err)
		assert.Equal(t, "thumbnails/service-provider/2026/03/3.webp", key)
	})
}

func TestManager_Upload_ExtensionAllowList(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"jpg allowed", "photo.jpg", false},
		{"jpeg allowed", "photo.jpeg", false},
		{"png allowed", "photo.png", false},
		{"gif allowed", "photo.gif", false},
		{"webp allowed", "photo.webp", false},
		{"uppercase PNG allowed", "photo.PNG", false},
		{"bmp rejected", "photo.bmp", true},
		{"svg rejected", "photo.svg", true},
		{"no extension rejected", "photo", true},
		{"executable rejected", "photo.exe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			m := fixedManager(store)
			owner := &testOwner{id: 1, kind: "user"}

			_, err := m.Upload(context.Background(), owner, File{
				Name:    tt.file,
				Content: strings.NewReader("x"),
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFileType)
				assert.Empty(t, store.objects, "rejected upload must not write")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManager_Delete(t *testing.T) {
	t.Run("removes stored blob", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)
		owner := &testOwner{id: 7, kind: "user"}

		key, err := m.Upload(context.Background(), owner, File{
			Name:    "a.jpg",
			Content: strings.NewReader("x"),
		})
		require.NoError(t, err)
		owner.path = key

		require.NoError(t, m.Delete(context.Background(), owner))
		assert.Empty(t, store.objects)
	})

	t.Run("idempotent: second delete is a no-op", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)
		owner := &testOwner{id: 7, kind: "user", path: "thumbnails/user/2026/03/7.jpg"}

		// Blob never existed; both calls must succeed.
		assert.NoError(t, m.Delete(context.Background(), owner))
		assert.NoError(t, m.Delete(context.Background(), owner))
	})

	t.Run("owner without avatar is a no-op", func(t *testing.T) {
		store := newFakeStorage()
		m := fixedManager(store)

		assert.NoError(t, m.Delete(context.Background(), &testOwner{id: 7, kind: "user"}))
	})
}

func TestManager_PublicURL(t *testing.T) {
	store := newFakeStorage()
	m := fixedManager(store)

	t.Run("resolves set avatar", func(t *testing.T) {
		owner := &testOwner{id: 7, kind: "user", path: "thumbnails/user/2026/03/7.jpg"}

		url, ok := m.PublicURL(owner)

		assert.True(t, ok)
		assert.Equal(t, "http://cdn.test/thumbnails/user/2026/03/7.jpg", url)
	})

	t.Run("absent when no avatar is set", func(t *testing.T) {
		_, ok := m.PublicURL(&testOwner{id: 7, kind: "user"})

		assert.False(t, ok)
	})
}
