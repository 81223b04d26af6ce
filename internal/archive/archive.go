// Package archive stores whole graph documents in a SQLite database.
//
// Documents are keyed by their digest and stored as zstd-compressed YAML, so
// putting the same structure twice stores it once. Tags are mutable names
// pointing at a digest.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/yamldoc"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

//go:embed pragmas.sql
var pragmasSQL string

var (
	ErrNotFound     = errors.New("archive: not found")
	ErrAmbiguousRef = errors.New("archive: ambiguous digest prefix")
)

// MinPrefix is the shortest digest prefix Resolve accepts.
const MinPrefix = 4

// Archive is a handle on an open archive database. It is safe for
// concurrent use.
type Archive struct {
	conn    *sql.DB
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Entry describes a tag and the document it points at.
type Entry struct {
	Name      string
	Digest    document.Digest
	Entries   int
	Nodes     int
	Size      int
	UpdatedAt time.Time
}

// Open opens or creates the archive at path.
func Open(ctx context.Context, path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	for _, pragma := range strings.Split(pragmasSQL, "\n") {
		pragma = strings.TrimSpace(pragma)
		if pragma == "" || strings.HasPrefix(pragma, "--") {
			continue
		}
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}
	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Archive opened.", "path", path)
	return &Archive{conn: conn, path: path, encoder: encoder, decoder: decoder}, nil
}

// Path returns the database file the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Close releases the compressors and the database connection.
func (a *Archive) Close() error {
	a.decoder.Close()
	return errors.Join(a.encoder.Close(), a.conn.Close())
}

// Put stores g under its digest and points the tag name at it. An empty
// name stores the document untagged.
func (a *Archive) Put(ctx context.Context, name string, g *hrg.Graph) (document.Digest, error) {
	return a.PutDocument(ctx, name, document.Flatten(ctx, g))
}

// PutDocument is Put for an already flattened document.
func (a *Archive) PutDocument(ctx context.Context, name string, doc *document.Document) (document.Digest, error) {
	digest := doc.Digest()

	var raw bytes.Buffer
	if err := (yamldoc.Codec{}).Encode(ctx, &raw, doc); err != nil {
		return digest, err
	}
	blob := a.encoder.EncodeAll(raw.Bytes(), nil)

	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return digest, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixMilli()
	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (digest, entries, nodes, size, created_at, blob) VALUES (?, ?, ?, ?, ?, ?)`,
		digest[:], len(doc.Nodes), doc.Len(), raw.Len(), now, blob,
	)
	if err != nil {
		return digest, fmt.Errorf("inserting document: %w", err)
	}
	if name != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tags (name, digest, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET digest = excluded.digest, updated_at = excluded.updated_at`,
			name, digest[:], now,
		)
		if err != nil {
			return digest, fmt.Errorf("tagging document: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return digest, fmt.Errorf("committing document: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Document archived.", "name", name, "digest", digest.Short(), "size", raw.Len(), "stored", len(blob))
	return digest, nil
}

// GetDocument loads the document stored under digest.
func (a *Archive) GetDocument(ctx context.Context, digest document.Digest) (*document.Document, error) {
	var blob []byte
	err := a.conn.QueryRowContext(ctx, `SELECT blob FROM documents WHERE digest = ?`, digest[:]).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", digest.Short(), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}

	raw, err := a.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing document %s: %w", digest.Short(), err)
	}
	return yamldoc.Codec{}.Decode(ctx, bytes.NewReader(raw))
}

// Get loads the document stored under digest and builds it.
func (a *Archive) Get(ctx context.Context, digest document.Digest, opts ...hrg.Option) (*hrg.Graph, error) {
	doc, err := a.GetDocument(ctx, digest)
	if err != nil {
		return nil, err
	}
	return document.Build(ctx, doc, opts...)
}

// Resolve maps a reference to a stored digest. A reference is a tag name, a
// full hex digest, or a unique hex prefix of at least MinPrefix digits.
func (a *Archive) Resolve(ctx context.Context, ref string) (document.Digest, error) {
	var d document.Digest
	var raw []byte
	err := a.conn.QueryRowContext(ctx, `SELECT digest FROM tags WHERE name = ?`, ref).Scan(&raw)
	switch {
	case err == nil:
		copy(d[:], raw)
		return d, nil
	case !errors.Is(err, sql.ErrNoRows):
		return d, fmt.Errorf("querying tag: %w", err)
	}

	if len(ref) < MinPrefix || strings.Trim(strings.ToLower(ref), "0123456789abcdef") != "" {
		return d, fmt.Errorf("reference %q: %w", ref, ErrNotFound)
	}
	rows, err := a.conn.QueryContext(ctx,
		`SELECT digest FROM documents WHERE hex(digest) LIKE ? LIMIT 2`, strings.ToUpper(ref)+"%")
	if err != nil {
		return d, fmt.Errorf("querying digests: %w", err)
	}
	defer rows.Close()

	var found int
	for rows.Next() {
		if err := rows.Scan(&raw); err != nil {
			return d, fmt.Errorf("scanning digest: %w", err)
		}
		copy(d[:], raw)
		found++
	}
	if err := rows.Err(); err != nil {
		return d, fmt.Errorf("querying digests: %w", err)
	}
	switch found {
	case 0:
		return document.Digest{}, fmt.Errorf("reference %q: %w", ref, ErrNotFound)
	case 1:
		return d, nil
	}
	return document.Digest{}, fmt.Errorf("reference %q: %w", ref, ErrAmbiguousRef)
}

// List returns every tag in name order.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	rows, err := a.conn.QueryContext(ctx, `
		SELECT t.name, t.digest, d.entries, d.nodes, d.size, t.updated_at
		FROM tags t JOIN documents d ON d.digest = t.digest
		ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var raw []byte
		var updated int64
		if err := rows.Scan(&e.Name, &raw, &e.Entries, &e.Nodes, &e.Size, &updated); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		copy(e.Digest[:], raw)
		e.UpdatedAt = time.UnixMilli(updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Untag removes a tag. The document it pointed at stays stored.
func (a *Archive) Untag(ctx context.Context, name string) error {
	res, err := a.conn.ExecContext(ctx, `DELETE FROM tags WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tag %q: %w", name, ErrNotFound)
	}
	return nil
}
