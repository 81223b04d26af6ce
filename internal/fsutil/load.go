package fsutil

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/hcldoc"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"github.com/specialistvlad/hrggo/internal/yamldoc"
)

// CompressedExt marks a zstd-compressed document, e.g. "doc.yaml.zst".
const CompressedExt = ".zst"

// Format describes how a path is encoded on disk.
type Format struct {
	Codec      document.Codec
	Compressed bool
}

// FormatOf picks the codec from the file extension: ".yaml" and ".yml" are
// YAML and ".hcl" is HCL, each optionally followed by ".zst".
func FormatOf(path string) (Format, error) {
	name := strings.ToLower(path)
	var f Format
	if strings.HasSuffix(name, CompressedExt) {
		f.Compressed = true
		name = strings.TrimSuffix(name, CompressedExt)
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		f.Codec = yamldoc.Codec{}
	case ".hcl":
		f.Codec = hcldoc.Codec{Filename: path}
	default:
		return Format{}, hrgerr.New(hrgerr.InvalidArgument, "unsupported document format for %s", path)
	}
	return f, nil
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(ctx context.Context, fs afero.Fs, path string) (*document.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	if format.Compressed {
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream %s: %w", path, err)
		}
		defer decoder.Close()
		r = decoder
	}

	doc, err := format.Codec.Decode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Document loaded.", "path", path, "format", format.Codec.Name(), "compressed", format.Compressed)
	return doc, nil
}

// Load reads the document at path and builds it into a graph.
func Load(ctx context.Context, fs afero.Fs, path string, opts ...hrg.Option) (*hrg.Graph, error) {
	doc, err := LoadDocument(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	g, err := document.Build(ctx, doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// SaveDocument encodes doc to path, replacing any existing file.
func SaveDocument(ctx context.Context, fs afero.Fs, path string, doc *document.Document) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	var w io.Writer = file
	var encoder *zstd.Encoder
	if format.Compressed {
		encoder, err = zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("open zstd stream %s: %w", path, err)
		}
		w = encoder
	}

	if err := format.Codec.Encode(ctx, w, doc); err != nil {
		if encoder != nil {
			_ = encoder.Close()
		}
		return fmt.Errorf("save %s: %w", path, err)
	}
	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("finish zstd stream %s: %w", path, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Document saved.", "path", path, "format", format.Codec.Name(), "compressed", format.Compressed)
	return nil
}

// Save flattens g and writes it to path.
func Save(ctx context.Context, fs afero.Fs, path string, g *hrg.Graph) error {
	return SaveDocument(ctx, fs, path, document.Flatten(ctx, g))
}
