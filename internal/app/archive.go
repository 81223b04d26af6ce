package app

import (
	"context"
	"time"

	"github.com/specialistvlad/hrggo/internal/archive"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/fsutil"
)

// ArchivePut stores the document at path in the archive under name.
func (a *App) ArchivePut(ctx context.Context, name, path string) (document.Digest, error) {
	ctx = a.Context(ctx)
	g, err := fsutil.Load(ctx, a.fs, path)
	if err != nil {
		return document.Digest{}, err
	}
	arc, err := a.openArchive(ctx)
	if err != nil {
		return document.Digest{}, err
	}
	defer arc.Close()

	d, err := arc.Put(ctx, name, g)
	if err != nil {
		return d, err
	}
	a.printf("%s  %s\n", d, name)
	return d, nil
}

// ArchiveGet resolves ref in the archive and writes the document to out.
func (a *App) ArchiveGet(ctx context.Context, ref, out string) (document.Digest, error) {
	ctx = a.Context(ctx)
	arc, err := a.openArchive(ctx)
	if err != nil {
		return document.Digest{}, err
	}
	defer arc.Close()

	d, err := arc.Resolve(ctx, ref)
	if err != nil {
		return d, err
	}
	g, err := arc.Get(ctx, d)
	if err != nil {
		return d, err
	}
	if err := fsutil.Save(ctx, a.fs, out, g); err != nil {
		return d, err
	}
	a.logger.Info("Document restored.", "ref", ref, "digest", d.Short(), "to", out)
	return d, nil
}

// ArchiveList prints every tag in the archive.
func (a *App) ArchiveList(ctx context.Context) ([]archive.Entry, error) {
	ctx = a.Context(ctx)
	arc, err := a.openArchive(ctx)
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	entries, err := arc.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		a.printf("%s  %-20s %6d nodes  %s\n", e.Digest.Short(), e.Name, e.Nodes, e.UpdatedAt.Format(time.RFC3339))
	}
	return entries, nil
}
