package render

import (
	"math"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// signatureBits is how many significant mantissa bits survive in a face
// signature. Coarse on purpose: faces that are congruent up to small
// floating-point noise must land in the same class.
const signatureBits = 7

// classifyFaces assigns each face a class index such that congruent faces
// (same shape up to rigid motion) share a class. Classes are numbered in
// order of first appearance, so the assignment is deterministic.
func classifyFaces(p *polyhedron.Polyhedron) []int {
	classes := make(map[string]int)
	out := make([]int, 0, len(p.Faces))

	for _, f := range p.Faces {
		key := signatureKey(signature(p.FaceVertices(f)))
		class, ok := classes[key]
		if !ok {
			class = len(classes)
			classes[key] = class
		}
		out = append(out, class)
	}
	return out
}

// signature fingerprints a face shape: for every vertex, the magnitude of
// the cross product of the vectors to its two neighbors, sorted and
// truncated to signatureBits significant bits. Sorting discards the loop's
// starting point and direction; truncation discards floating-point noise.
func signature(vertices []v3.Vec) []uint64 {
	n := len(vertices)
	if n < 3 {
		return nil
	}

	crosses := make([]float64, n)
	for i, mid := range vertices {
		prev := vertices[(i+n-1)%n]
		next := vertices[(i+1)%n]
		crosses[i] = prev.Sub(mid).Cross(next.Sub(mid)).Length()
	}
	sort.Float64s(crosses)

	sig := make([]uint64, n)
	for i, c := range crosses {
		sig[i] = truncateMantissa(c, signatureBits)
	}
	return sig
}

// truncateMantissa returns the top `keep` significant bits of f's mantissa
// (with the implicit leading bit restored for normal values). The exponent
// is deliberately ignored, like the rest of the signature this only has to
// separate classes, not order them.
func truncateMantissa(f float64, keep uint) uint64 {
	b := math.Float64bits(f)
	mantissa := b & (1<<52 - 1)
	if b>>52&0x7ff != 0 {
		mantissa |= 1 << 52
	}

	significant := uint(bits.Len64(mantissa))
	if keep >= significant {
		return mantissa
	}
	return mantissa >> (significant - keep)
}

func signatureKey(sig []uint64) string {
	var sb strings.Builder
	for _, m := range sig {
		sb.WriteString(strconv.FormatUint(m, 16))
		sb.WriteByte(',')
	}
	return sb.String()
}
