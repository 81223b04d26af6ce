package document

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/hrggo/internal/hrg"
)

// Codec is a format-specific reader and writer of Documents.
type Codec interface {
	// Name identifies the format, e.g. "yaml".
	Name() string
	// Decode parses a whole document from r.
	Decode(ctx context.Context, r io.Reader) (*Document, error)
	// Encode writes doc to w.
	Encode(ctx context.Context, w io.Writer, doc *Document) error
}

// Read decodes a document with c and builds it into a graph.
func Read(ctx context.Context, c Codec, r io.Reader, opts ...hrg.Option) (*hrg.Graph, error) {
	doc, err := c.Decode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", c.Name(), err)
	}
	return Build(ctx, doc, opts...)
}

// Write flattens g and encodes it with c.
func Write(ctx context.Context, c Codec, w io.Writer, g *hrg.Graph) error {
	if err := c.Encode(ctx, w, Flatten(ctx, g)); err != nil {
		return fmt.Errorf("failed to encode %s document: %w", c.Name(), err)
	}
	return nil
}
