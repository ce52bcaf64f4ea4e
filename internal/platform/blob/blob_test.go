// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
openTestStore creates a Store backed by a temp file that is cleaned up
automatically when the test finishes.
*/
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestPutAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	payload := []byte("PK\x03\x04 fake archive bytes")

	meta, err := store.Put(ctx, "contract.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.ID)
	assert.Equal(t, "contract.docx", meta.FileName)
	assert.Equal(t, int64(len(payload)), meta.Size)
	assert.NotEmpty(t, meta.SHA256)

	data, got, err := store.Get(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, meta.ID, got.ID)
	assert.Equal(t, meta.SHA256, got.SHA256)
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	meta, err := store.Put(ctx, "a.docx", "application/octet-stream", []byte("abc"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, meta.ID))

	_, _, err = store.Get(ctx, meta.ID)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, meta.ID))
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "a.docx", "application/octet-stream", []byte("aaaa"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "b.docx", "application/octet-stream", []byte("bb"))
	require.NoError(t, err)

	count, size, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(6), size)
}
