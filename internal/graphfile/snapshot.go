package graphfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the Document layout changes
const SnapshotSchema uint16 = 1

// ErrSchema reports a snapshot written with a different schema version.
var ErrSchema = errors.New("snapshot schema mismatch")

type snapshot struct {
	Schema   uint16   `msgpack:"schema"`
	Document Document `msgpack:"document"`
}

// EncodeSnapshot writes doc as a schema-versioned msgpack snapshot.
func EncodeSnapshot(w io.Writer, doc *Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	return encodeWithSchema(w, SnapshotSchema, doc)
}

func encodeWithSchema(w io.Writer, schema uint16, doc *Document) error {
	return msgpack.NewEncoder(w).Encode(&snapshot{Schema: schema, Document: *doc})
}

// DecodeSnapshot reads a snapshot and rejects foreign schema versions.
func DecodeSnapshot(r io.Reader) (*Document, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Schema != SnapshotSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, snap.Schema, SnapshotSchema)
	}
	return &snap.Document, nil
}

// WriteSnapshot atomically replaces path with a snapshot of doc.
func WriteSnapshot(path string, doc *Document) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*"+SnapshotExt)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := EncodeSnapshot(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
