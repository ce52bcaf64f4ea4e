// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Package blob provides content storage for uploaded template files.
//
// # Architecture
//
// Binary .docx payloads are kept out of PostgreSQL. They live in an embedded
// bbolt database on disk, keyed by a time-ordered blob ID that the relational
// layer references. Metadata (filename, size, checksum) is stored in a
// separate bucket next to the raw bytes.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/document-template-engine/backend/internal/platform/apperr"
	uuidv7 "github.com/document-template-engine/backend/pkg/uuid"
)

var (
	bucketBlobs = []byte("blobs")
	bucketMeta  = []byte("blob_meta")
)

// ErrBlobNotFound is returned when the requested blob ID does not exist.
var ErrBlobNotFound = apperr.NotFound("File")

// openTimeout bounds the wait for the bbolt file lock at startup.
const openTimeout = 5 * time.Second

// Meta describes a stored blob.
type Meta struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a bbolt-backed blob store.
//
// # Concurrency
//
// Store is safe for concurrent use; bbolt serializes writers internally.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the blob database at path and ensures buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("blob: failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketBlobs); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob: failed to create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores data under a freshly generated blob ID and returns its metadata.
func (s *Store) Put(ctx context.Context, fileName, contentType string, data []byte) (Meta, error) {
	checksum := sha256.Sum256(data)

	meta := Meta{
		ID:          uuidv7.New(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(checksum[:]),
		CreatedAt:   time.Now().UTC(),
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		return Meta{}, fmt.Errorf("blob: failed to marshal metadata: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlobs).Put([]byte(meta.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(meta.ID), encoded)
	})
	if err != nil {
		return Meta{}, fmt.Errorf("blob: failed to store %q: %w", fileName, err)
	}

	return meta, nil
}

// Get returns the raw bytes and metadata for a blob ID.
func (s *Store) Get(ctx context.Context, id string) ([]byte, Meta, error) {
	var (
		data []byte
		meta Meta
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketBlobs).Get([]byte(id))
		if raw == nil {
			return ErrBlobNotFound
		}

		// bbolt memory is only valid inside the transaction; copy out.
		data = make([]byte, len(raw))
		copy(data, raw)

		encoded := tx.Bucket(bucketMeta).Get([]byte(id))
		if encoded == nil {
			return ErrBlobNotFound
		}
		return json.Unmarshal(encoded, &meta)
	})
	if err != nil {
		return nil, Meta{}, err
	}

	return data, meta, nil
}

// Delete removes a blob and its metadata. Deleting a missing blob is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlobs).Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete([]byte(id))
	})
}

// Stats reports the number of stored blobs and their total size.
func (s *Store) Stats(ctx context.Context) (count int, totalSize int64, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketBlobs).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			count++
			totalSize += int64(len(v))
		}
		return nil
	})
	return count, totalSize, err
}
