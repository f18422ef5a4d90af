package request

import (
	"crypto/rand"
)

// Alphabet is the 32-symbol id alphabet: uppercase letters and digits with
// the visually ambiguous I, O, 0 and 1 removed. Ids are short enough to
// read over voice chat, which is the whole point.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// IDLength is the number of random symbols after the prefix.
const IDLength = 5

// Generator produces human-shareable request ids of the form
// PREFIX-XXXXX. Generation does not check existing records for collisions;
// with 32^5 possible suffixes the local record set stays far below any
// worrying density, and a collision merely replaces a prior best-effort
// record.
type Generator struct {
	prefix string
}

// NewGenerator creates a generator with the configured prefix.
func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Generate returns a fresh id. Symbols are drawn independently and
// uniformly; 256 is an exact multiple of the alphabet size, so a plain
// modulo stays unbiased.
func (g *Generator) Generate() string {
	buf := make([]byte, IDLength)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)
	out := make([]byte, 0, len(g.prefix)+1+IDLength)
	out = append(out, g.prefix...)
	out = append(out, '-')
	for _, b := range buf {
		out = append(out, Alphabet[int(b)%len(Alphabet)])
	}
	return string(out)
}
