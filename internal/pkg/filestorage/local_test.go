package filestorage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

func newFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestLocalStorageSaveResolveDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, time.Second)
	require.NoError(t, err)

	ctx := context.Background()
	stored, err := store.Save(ctx, newFileHeader(t, "Syllabus.PDF", []byte("%PDF-1.4 test")), "courses/1")
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.4 test")), stored.Size)
	assert.Equal(t, ".pdf", filepath.Ext(stored.Ref))
	assert.Equal(t, "courses/1", filepath.ToSlash(filepath.Dir(stored.Ref)))
	assert.Equal(t, "application/pdf", stored.MimeType)

	path, err := store.Resolve(ctx, stored.Ref)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	require.NoError(t, store.Delete(stored.Ref))
	_, err = store.Resolve(ctx, stored.Ref)
	assert.ErrorIs(t, err, apperrors.ErrContentMissing)

	// deleting twice is fine
	assert.NoError(t, store.Delete(stored.Ref))
}

func TestLocalStorageResolveRejectsEscapingRefs(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), time.Second)
	require.NoError(t, err)

	for _, ref := range []string{"", "../etc/passwd", "/etc/passwd", ".."} {
		_, err := store.Resolve(context.Background(), ref)
		assert.ErrorIs(t, err, apperrors.ErrContentMissing, ref)
	}
}

func TestLocalStorageSaveWithoutFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), time.Second)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), nil, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
