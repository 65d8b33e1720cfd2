package glyphfix

// PreferVerticalOnTie decides Auto-mode ties: when both flips move the
// component by the same |dx|+|dy|, the vertical flip wins.
const PreferVerticalOnTie = true

// Flip names the basis row a mirror correction negates.
type Flip int

const (
	// FlipNone means no flip was applied.
	FlipNone Flip = iota
	// FlipVertical negates (M21, M22).
	FlipVertical
	// FlipHorizontal negates (M11, M12).
	FlipHorizontal
)

// String returns the string representation of the flip.
func (f Flip) String() string {
	switch f {
	case FlipNone:
		return "none"
	case FlipVertical:
		return "Y"
	case FlipHorizontal:
		return "X"
	default:
		return unknownStr
	}
}

// Candidate is one way to unmirror a placement.
type Candidate struct {
	Flip Flip
	// Transform is the corrected placement, translation already adjusted.
	Transform Transform
	// Delta is the translation added so the anchor point stays in place.
	Delta Point
	// Score is |Delta.X| + |Delta.Y|.
	Score float64
}

// MirrorCandidates returns the flips that restore a non-negative
// determinant for t, vertical first.
//
// Each candidate's bounds are measured with the flipped linear part and
// the original translation, then shifted so that the chosen anchor of the
// corrected bounds lands on the same anchor of the current bounds.
func MirrorCandidates(t Transform, base Rect, anchor Anchor) []Candidate {
	before := t.TransformRect(base).Anchor(anchor)

	out := make([]Candidate, 0, 2)
	for _, f := range [...]Flip{FlipVertical, FlipHorizontal} {
		flipped := t.FlipVertical()
		if f == FlipHorizontal {
			flipped = t.FlipHorizontal()
		}
		if flipped.Det() < 0 {
			continue
		}
		after := flipped.TransformRect(base).Anchor(anchor)
		delta := before.Sub(after)
		out = append(out, Candidate{
			Flip:      f,
			Transform: flipped.Offset(delta),
			Delta:     delta,
			Score:     delta.Manhattan(),
		})
	}
	return out
}

// ChooseCandidate picks the candidate method allows. Forced methods take
// their own flip or nothing; Auto takes the lowest score.
func ChooseCandidate(cands []Candidate, method Method) (Candidate, bool) {
	switch method {
	case MethodVerticalOnly:
		return findFlip(cands, FlipVertical)
	case MethodHorizontalOnly:
		return findFlip(cands, FlipHorizontal)
	}

	var best Candidate
	found := false
	for _, c := range cands {
		switch {
		case !found:
			best, found = c, true
		case c.Score < best.Score:
			best = c
		case c.Score == best.Score && c.Flip == FlipVertical && PreferVerticalOnTie:
			best = c
		case c.Score == best.Score && best.Flip == FlipVertical && !PreferVerticalOnTie:
			best = c
		}
	}
	return best, found
}

func findFlip(cands []Candidate, f Flip) (Candidate, bool) {
	for _, c := range cands {
		if c.Flip == f {
			return c, true
		}
	}
	return Candidate{}, false
}

// PlanMirror computes the corrected placement for a mirrored component.
// It returns ErrNoCandidate when no allowed flip yields a determinant >= 0.
func PlanMirror(t Transform, base Rect, m MirrorMode) (Candidate, error) {
	c, ok := ChooseCandidate(MirrorCandidates(t, base, m.Anchor), m.Method)
	if !ok || c.Transform.Det() < 0 {
		return Candidate{}, ErrNoCandidate
	}
	return c, nil
}
