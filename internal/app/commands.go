package app

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/specialistvlad/hrggo/internal/ctxlog"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/fsutil"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// ErrInvalidDocuments is returned by Validate when any document fails.
var ErrInvalidDocuments = errors.New("invalid documents")

// Convert reads the document at in and writes it to out. The formats are
// taken from the file extensions.
func (a *App) Convert(ctx context.Context, in, out string) error {
	ctx = a.Context(ctx)
	g, err := fsutil.Load(ctx, a.fs, in)
	if err != nil {
		return err
	}
	if err := fsutil.Save(ctx, a.fs, out, g); err != nil {
		return err
	}
	a.logger.Info("Document converted.", "from", in, "to", out, "nodes", g.NodeCount())
	return nil
}

// Validate loads every file matching patterns and reports each result. It
// fails with ErrInvalidDocuments if any file does not load.
func (a *App) Validate(ctx context.Context, patterns ...string) error {
	ctx = a.Context(ctx)
	files, err := fsutil.FindAll(a.fs, patterns...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return hrgerr.New(hrgerr.InvalidArgument, "no documents match %v", patterns)
	}

	failed := 0
	for _, path := range files {
		g, err := fsutil.Load(ctx, a.fs, path)
		if err != nil {
			failed++
			a.printf("FAIL %s: %v\n", path, err)
			continue
		}
		a.printf("ok   %s (%d nodes)\n", path, g.NodeCount())
	}
	ctxlog.FromContext(ctx).Info("Validation finished.", "files", len(files), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(files), ErrInvalidDocuments)
	}
	return nil
}

// RelationStats summarizes one relation.
type RelationStats struct {
	Name      string
	Open      bool
	Nodes     int
	Sequenced int
}

// Stats summarizes a graph.
type Stats struct {
	Nodes     int
	Entities  int
	Relations []RelationStats
	Digest    document.Digest
}

// Summarize computes Stats for g.
func Summarize(ctx context.Context, g *hrg.Graph) Stats {
	s := Stats{
		Nodes:    g.NodeCount(),
		Entities: g.EntityCount(),
		Digest:   document.Fingerprint(ctx, g),
	}
	names := g.RelationNames()
	for _, rel := range g.Relations() {
		rs := RelationStats{Name: names.RelationName(rel.Label()), Open: rel.Open(), Nodes: rel.Len()}
		for range rel.All() {
			rs.Sequenced++
		}
		s.Relations = append(s.Relations, rs)
	}
	return s
}

// Stats loads path and prints its summary.
func (a *App) Stats(ctx context.Context, path string) (Stats, error) {
	ctx = a.Context(ctx)
	g, err := fsutil.Load(ctx, a.fs, path)
	if err != nil {
		return Stats{}, err
	}
	s := Summarize(ctx, g)

	a.printf("digest:   %s\nnodes:    %d\nentities: %d\n\n", s.Digest, s.Nodes, s.Entities)
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RELATION\tKIND\tNODES\tSEQUENCED")
	for _, r := range s.Relations {
		kind := "closed"
		if r.Open {
			kind = "open"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.Name, kind, r.Nodes, r.Sequenced)
	}
	return s, tw.Flush()
}

// Digest loads path and prints its structural digest.
func (a *App) Digest(ctx context.Context, path string) (document.Digest, error) {
	ctx = a.Context(ctx)
	g, err := fsutil.Load(ctx, a.fs, path)
	if err != nil {
		return document.Digest{}, err
	}
	d := document.Fingerprint(ctx, g)
	a.printf("%s  %s\n", d, path)
	return d, nil
}
