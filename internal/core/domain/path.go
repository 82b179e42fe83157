package domain

// Path is a connected polyline: an ordered sequence of segments where every
// segment starts exactly where the previous one ends. Connectivity is checked
// once, at construction; a Path value that exists is always valid.
//
// A path with zero segments is legal and measures 0 under any methodology.
// Nothing requires a path to close back on its own start.
type Path struct {
	segments []Segment
}

// NewPath validates segment-to-segment connectivity and returns the path.
// Validation fails fast: the first adjacent pair whose shared endpoint does
// not match (exact equality) aborts construction with a
// *DisconnectedPathError naming both offending indices.
//
// The segment slice is copied; the caller keeps ownership of its own slice.
func NewPath(segments ...Segment) (Path, error) {
	for i := 1; i < len(segments); i++ {
		if !segments[i-1].End.Equal(segments[i].Start) {
			return Path{}, &DisconnectedPathError{Prev: i - 1, Index: i}
		}
	}
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return Path{segments: segs}, nil
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []Segment {
	segs := make([]Segment, len(p.segments))
	copy(segs, p.segments)
	return segs
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}
