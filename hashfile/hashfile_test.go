package hashfile

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	entries := []Entry{{Frame: 0, Digest: 0xdeadbeef}, {Frame: 1, Digest: 0x1}}
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}
	for i, e := range entries {
		if got[i] != e {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], e)
		}
	}
}

func TestCompareExactMatch(t *testing.T) {
	a := []Entry{{Frame: 0, Digest: 1}, {Frame: 1, Digest: 2}}
	b := []Entry{{Frame: 0, Digest: 1}, {Frame: 1, Digest: 2}}
	mismatches, matched := Compare(a, b, 0)
	if !matched || len(mismatches) != 0 {
		t.Fatalf("matched=%v mismatches=%+v, want true []", matched, mismatches)
	}
}

func TestCompareReportsMismatchesAndRespectsThreshold(t *testing.T) {
	a := []Entry{{Frame: 0, Digest: 1}, {Frame: 1, Digest: 2}, {Frame: 2, Digest: 3}, {Frame: 3, Digest: 4}}
	b := []Entry{{Frame: 0, Digest: 1}, {Frame: 1, Digest: 0xff}, {Frame: 2, Digest: 3}, {Frame: 3, Digest: 4}}

	mismatches, matched := Compare(a, b, 0)
	if matched {
		t.Fatal("expected exact comparison to fail with one differing frame")
	}
	if len(mismatches) != 1 || mismatches[0].Frame != 1 {
		t.Fatalf("mismatches = %+v, want one mismatch at frame 1", mismatches)
	}

	if _, matched := Compare(a, b, 0.5); !matched {
		t.Fatal("expected 1/4 mismatch fraction to pass a 0.5 threshold")
	}
}

func TestCompareMissingFrame(t *testing.T) {
	a := []Entry{{Frame: 0, Digest: 1}}
	b := []Entry{{Frame: 0, Digest: 1}, {Frame: 1, Digest: 2}}
	mismatches, matched := Compare(a, b, 0)
	if matched || len(mismatches) != 1 {
		t.Fatalf("matched=%v mismatches=%+v, want one missing-frame mismatch", matched, mismatches)
	}
	if !mismatches[0].MissingA {
		t.Fatalf("mismatch = %+v, want MissingA", mismatches[0])
	}
}

func TestReadRejectsMalformedLine(t *testing.T) {
	_, err := Read(bytes.NewBufferString("not-a-hash-line\n"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
}
