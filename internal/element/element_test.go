package element

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rook-computer/spectroscope/internal/testutil"
)

func TestBuiltinLookup(t *testing.T) {
	ctx := context.Background()
	c := Builtin()

	na, err := c.Element(ctx, 11)
	if err != nil {
		t.Fatalf("Element(11) error: %v", err)
	}
	if na.Symbol != "Na" || len(na.Lines()) != len(na.Wavelengths) {
		t.Fatalf("unexpected sodium entry: %+v", na)
	}

	_, err = c.Element(ctx, 118)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Element(118) err=%v want ErrNotFound", err)
	}
}

func TestBuiltinHydrogenFollowsBalmer(t *testing.T) {
	h, err := Builtin().Element(context.Background(), 1)
	if err != nil {
		t.Fatalf("Element(1) error: %v", err)
	}
	if len(h.Wavelengths) != len(balmerStrengths) {
		t.Fatalf("hydrogen lines=%d want=%d", len(h.Wavelengths), len(balmerStrengths))
	}
	testutil.RequireNear(t, "H-alpha", h.Wavelengths[0], 6561.12, 0.01)
	testutil.RequireNear(t, "H-beta", h.Wavelengths[1], 4860.09, 0.01)
}

func TestElementsSortedAndCopied(t *testing.T) {
	ctx := context.Background()
	c := Builtin()
	list, err := c.Elements(ctx)
	if err != nil {
		t.Fatalf("Elements error: %v", err)
	}
	if len(list) != c.Len() {
		t.Fatalf("len=%d want=%d", len(list), c.Len())
	}
	for i := 1; i < len(list); i++ {
		if list[i].Number <= list[i-1].Number {
			t.Fatalf("elements not sorted at %d", i)
		}
	}

	list[0].Wavelengths[0] = -1
	again, _ := c.Element(ctx, list[0].Number)
	if again.Wavelengths[0] == -1 {
		t.Fatalf("Elements returned shared slices")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Builtin().Element(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestNewCatalogRejectsInvalid(t *testing.T) {
	if _, err := NewCatalog([]Element{{Number: 0, Symbol: "X"}}); err == nil {
		t.Fatalf("expected error for atomic number 0")
	}
	if _, err := NewCatalog([]Element{{Number: 5, Symbol: "B"}, {Number: 5, Symbol: "B2"}}); err == nil {
		t.Fatalf("expected error for duplicate number")
	}
}

func TestMergeReplacesAndExtends(t *testing.T) {
	base, err := NewCatalog([]Element{{Number: 1, Symbol: "H"}, {Number: 2, Symbol: "He"}})
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}
	overlay, err := NewCatalog([]Element{{Number: 2, Symbol: "He", Name: "Helium II"}, {Number: 3, Symbol: "Li"}})
	if err != nil {
		t.Fatalf("NewCatalog error: %v", err)
	}

	merged, err := base.Merge(overlay)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if merged.Len() != 3 {
		t.Fatalf("len=%d want 3", merged.Len())
	}
	he, err := merged.Element(context.Background(), 2)
	if err != nil || he.Name != "Helium II" {
		t.Fatalf("Element(2)=%+v err=%v", he, err)
	}
	if base.Len() != 2 {
		t.Fatalf("Merge modified its receiver: len=%d", base.Len())
	}
}

func TestDecodeTruncatesMismatchedArrays(t *testing.T) {
	c, err := Decode(strings.NewReader(`[{"number":7,"symbol":"N","name":"Nitrogen","wavelengths":[5001.5,5679.6,6482.1],"strengths":[1,0.6]}]`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	n, err := c.Element(context.Background(), 7)
	if err != nil {
		t.Fatalf("Element(7) error: %v", err)
	}
	if got := len(n.Lines()); got != 2 {
		t.Fatalf("lines=%d want=2", got)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader(`[{"number":7,"colour":"red"}]`)); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadFileOverlaysBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data := `[
		{"number":11,"symbol":"Na","name":"Sodium (doublet only)","wavelengths":[5889.95,5895.92],"strengths":[1,0.5]},
		{"number":7,"symbol":"N","name":"Nitrogen","wavelengths":[5679.6],"strengths":[1]}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if c.Len() != Builtin().Len()+1 {
		t.Fatalf("len=%d want=%d", c.Len(), Builtin().Len()+1)
	}
	na, err := c.Element(context.Background(), 11)
	if err != nil {
		t.Fatalf("Element(11) error: %v", err)
	}
	if na.Name != "Sodium (doublet only)" {
		t.Fatalf("overlay did not replace sodium: %q", na.Name)
	}
	if _, err := c.Element(context.Background(), 80); err != nil {
		t.Fatalf("builtin mercury missing after overlay: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v want os.ErrNotExist", err)
	}
	c, err := LoadFile("")
	if err != nil || c != Builtin() {
		t.Fatalf("empty path should return builtin catalog: %v", err)
	}
}

func TestNeighborWraps(t *testing.T) {
	list := []Element{{Number: 1}, {Number: 2}, {Number: 10}}
	tests := []struct {
		number, step, want int
	}{
		{1, 1, 2},
		{10, 1, 1},
		{1, -1, 10},
		{2, -4, 1},
		{99, 1, 1},
	}
	for _, tc := range tests {
		if got := Neighbor(list, tc.number, tc.step); got != tc.want {
			t.Fatalf("Neighbor(%d,%d)=%d want=%d", tc.number, tc.step, got, tc.want)
		}
	}
	if Neighbor(nil, 1, 1) != 0 {
		t.Fatalf("empty list should yield 0")
	}
}
