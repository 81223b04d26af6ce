package document

import (
	"context"
	"encoding/hex"
	"io"
	"slices"
	"strconv"

	"github.com/specialistvlad/hrggo/internal/hrg"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
	"lukechampine.com/blake3"
)

// Digest is the blake3 hash of a document's canonical byte stream.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex digits of d.
func (d Digest) Short() string {
	return d.String()[:12]
}

// ParseDigest decodes a 64 digit hex digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(d) {
		return d, hrgerr.New(hrgerr.InvalidArgument, "invalid digest %q", s)
	}
	copy(d[:], raw)
	return d, nil
}

// Digest hashes d. Features within an entry are hashed in name order and
// links in pivot order, so the result depends only on content.
func (d *Document) Digest() Digest {
	h := blake3.New(32, nil)
	d.writeCanonical(h)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint flattens g and hashes the result. Two graphs with equal
// fingerprints have the same memberships, links and features.
func Fingerprint(ctx context.Context, g *hrg.Graph) Digest {
	return Flatten(ctx, g).Digest()
}

func writeField(w io.Writer, tag byte, s string) {
	w.Write([]byte{tag})
	w.Write([]byte(strconv.Itoa(len(s))))
	w.Write([]byte{':'})
	w.Write([]byte(s))
}

func (d *Document) writeCanonical(w io.Writer) {
	for _, e := range d.Nodes {
		writeField(w, 'N', "")
		feats := slices.Clone(e.Features)
		slices.SortFunc(feats, func(a, b Feature) int {
			switch {
			case a.Name < b.Name:
				return -1
			case a.Name > b.Name:
				return 1
			}
			return 0
		})
		for _, f := range feats {
			writeField(w, 'f', f.Name)
			writeField(w, 'v', f.Value)
		}
		for _, m := range e.Memberships {
			writeField(w, 'm', m.Relation)
			writeField(w, 'i', m.ID)
			for _, l := range m.Links {
				writeField(w, 'p', l.Pivot)
				writeField(w, 't', l.Target)
			}
		}
	}
	for _, r := range d.Relations {
		writeField(w, 'R', r.Relation)
		writeField(w, 'F', r.First)
		writeField(w, 'L', r.Last)
	}
}
