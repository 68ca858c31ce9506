// Package hashfile implements the per-frame digest hash-file format
// emitted by `gltrace replay --hash` and consumed by `gltrace
// compare_hash_files` (spec §4.H.3, §6.4).
package hashfile

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tracegl/gltrace/gltraceerr"
)

// Entry is one frame's recorded digest.
type Entry struct {
	Frame  int
	Digest uint64
}

// Write emits one "<frame>\t<digest>" line per entry, hex-encoded, in
// ascending frame order.
func Write(w io.Writer, entries []Entry) error {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	bw := bufio.NewWriter(w)
	for _, e := range sorted {
		if _, err := fmt.Fprintf(bw, "%d\t%016x\n", e.Frame, e.Digest); err != nil {
			return gltraceerr.Wrap(gltraceerr.IOError, err, "hashfile: write")
		}
	}
	return bw.Flush()
}

// Read parses a hash file written by Write.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, gltraceerr.Newf(gltraceerr.FormatError, "hashfile: line %d: want 2 fields, got %d", line, len(parts))
		}
		frame, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, gltraceerr.Wrap(gltraceerr.FormatError, err, fmt.Sprintf("hashfile: line %d: frame", line))
		}
		digest, err := strconv.ParseUint(parts[1], 16, 64)
		if err != nil {
			return nil, gltraceerr.Wrap(gltraceerr.FormatError, err, fmt.Sprintf("hashfile: line %d: digest", line))
		}
		entries = append(entries, Entry{Frame: frame, Digest: digest})
	}
	if err := sc.Err(); err != nil {
		return nil, gltraceerr.Wrap(gltraceerr.IOError, err, "hashfile: read")
	}
	return entries, nil
}

// Mismatch describes one frame where two hash files disagree.
type Mismatch struct {
	Frame    int
	A, B     uint64
	MissingA bool
	MissingB bool
}

// Compare reports every frame where a and b disagree. threshold is the
// maximum fraction of mismatching frames (relative to the number of
// distinct frames present in either input) that still counts as an overall match; pass 0 for
// exact comparison.
func Compare(a, b []Entry, threshold float64) (mismatches []Mismatch, matched bool) {
	am := make(map[int]uint64, len(a))
	for _, e := range a {
		am[e.Frame] = e.Digest
	}
	bm := make(map[int]uint64, len(b))
	for _, e := range b {
		bm[e.Frame] = e.Digest
	}

	seen := make(map[int]bool, len(am)+len(bm))
	for f := range am {
		seen[f] = true
	}
	for f := range bm {
		seen[f] = true
	}

	for f := range seen {
		da, okA := am[f]
		db, okB := bm[f]
		if okA && okB && da == db {
			continue
		}
		mismatches = append(mismatches, Mismatch{Frame: f, A: da, B: db, MissingA: !okA, MissingB: !okB})
	}

	total := len(seen)
	if total == 0 {
		return mismatches, true
	}
	frac := float64(len(mismatches)) / float64(total)
	return mismatches, frac <= threshold
}
