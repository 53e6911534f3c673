package engine

import (
	"fmt"
	"hash/fnv"
)

// ColorTag derives a stable display color from a piece name. The hue is an
// FNV-1a hash of the name modulo 360, so identical names always get the
// same color and reports stay byte-identical across runs.
func ColorTag(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := h.Sum32() % 360
	return fmt.Sprintf("hsl(%d, 70%%, 80%%)", hue)
}
