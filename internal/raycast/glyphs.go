package raycast

// edgeGlyph is a partial block and the polarity it is drawn with. A
// negative lower block leaves the wall color in the upper part of the cell.
type edgeGlyph struct {
	glyph    rune
	polarity Polarity
}

const fullBlock = '█'

// Glyph tables for the rows a slice boundary falls in, indexed by the
// quartile of the row the wall covers. The last quartile is a full block.
var (
	// Wall from a fractional top edge down to the bottom of the row.
	topMeetsCeiling = [4]edgeGlyph{{'▁', Positive}, {'▃', Positive}, {'▅', Positive}, {fullBlock, Positive}}
	// Whole slice inside one row, sitting in its upper half.
	topInterior = [4]edgeGlyph{{'▔', Positive}, {'▀', Positive}, {'▀', Positive}, {fullBlock, Positive}}
	// Whole slice inside one row, sitting in its lower half.
	bottomInterior = [4]edgeGlyph{{'▁', Positive}, {'▂', Positive}, {'▄', Positive}, {fullBlock, Positive}}
	// Wall from the top of the row down to a fractional bottom edge.
	bottomMeetsFloor = [4]edgeGlyph{{'▇', Negative}, {'▅', Negative}, {'▃', Negative}, {fullBlock, Positive}}
)

func quartile(coverage float64) int {
	q := int(coverage * 4)
	switch {
	case q < 0:
		return 0
	case q > 3:
		return 3
	}
	return q
}

// rowGlyph picks the glyph for row y of a slice spanning [top, bottom).
// ok is false when the slice does not touch the row.
func rowGlyph(y int, top, bottom float64) (g edgeGlyph, ok bool) {
	cellTop, cellBottom := float64(y), float64(y+1)
	upper := max(top, cellTop)
	lower := min(bottom, cellBottom)
	coverage := lower - upper
	if coverage <= 0 {
		return edgeGlyph{}, false
	}
	q := quartile(coverage)
	startsHere := top > cellTop
	endsHere := bottom < cellBottom

	switch {
	case startsHere && endsHere:
		if (upper+lower)/2-cellTop < 0.5 {
			return topInterior[q], true
		}
		return bottomInterior[q], true
	case startsHere:
		return topMeetsCeiling[q], true
	case endsHere:
		return bottomMeetsFloor[q], true
	}
	return edgeGlyph{fullBlock, Positive}, true
}
