package testutil

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/hrggo/internal/document"
	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/stretchr/testify/require"
)

// AssertSameStructure fails the test unless both graphs flatten to the same
// document: the same memberships, links, endpoints and feature values.
func AssertSameStructure(t *testing.T, want, got *hrg.Graph) {
	t.Helper()
	ctx := context.Background()
	wantDoc := document.Flatten(ctx, want)
	gotDoc := document.Flatten(ctx, got)
	if diff := cmp.Diff(wantDoc, gotDoc); diff != "" {
		require.Fail(t, "graph structure mismatch", "(-want +got):\n%s", diff)
	}
}
