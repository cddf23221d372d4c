package opentype

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tesserfont/sfnt/fontdata"
)

func TestCoverageRoundTripContiguous(t *testing.T) {
	cov := Coverage{10: 0, 11: 1, 12: 2, 13: 3, 14: 4, 15: 5}
	encoded := cov.Encode()
	if got := encoded[1]; got != 2 {
		// a long contiguous run should pick format 2 (one range) over the
		// per-glyph format 1 array
		t.Fatalf("expected format 2 for a long contiguous run, got format %d", got)
	}
	decoded, err := DecodeCoverage(fontdata.New(encoded), 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cov, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCoverageRoundTripSparse(t *testing.T) {
	cov := Coverage{5: 0, 100: 1, 9000: 2}
	encoded := cov.Encode()
	decoded, err := DecodeCoverage(fontdata.New(encoded), 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cov, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !decoded.Contains(100) || decoded.Contains(101) {
		t.Fatal("Contains disagrees with the decoded map")
	}
}

func TestClassDefRoundTrip(t *testing.T) {
	cd := ClassDef{10: 1, 11: 1, 12: 1, 50: 2}
	encoded := cd.Encode()
	decoded, err := DecodeClassDef(fontdata.New(encoded), 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cd, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if decoded.NumClasses() != 3 {
		t.Fatalf("NumClasses() = %d, want 3", decoded.NumClasses())
	}
}

func TestClassDefEmpty(t *testing.T) {
	cd := ClassDef{}
	decoded, err := DecodeClassDef(fontdata.New(cd.Encode()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected an empty ClassDef, got %v", decoded)
	}
}
