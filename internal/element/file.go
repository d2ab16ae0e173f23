package element

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON array of elements.
func Decode(r io.Reader) (*Catalog, error) {
	var elements []Element
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&elements); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(elements)
}

// LoadFile reads a JSON catalog from path and layers it over the built-in
// catalog. An empty path returns the built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	merged, err := Builtin().Merge(c)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return merged, nil
}
