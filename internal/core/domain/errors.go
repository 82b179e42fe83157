package domain

import "fmt"

// DegenerateSegmentError reports a segment construction whose endpoints were
// identical. Both points are carried so callers can show them verbatim.
type DegenerateSegmentError struct {
	Start Point
	End   Point
}

func (e *DegenerateSegmentError) Error() string {
	return fmt.Sprintf("degenerate segment: start and end are the same point: start: %s; end: %s", e.Start, e.End)
}

// DisconnectedPathError reports the first adjacency break found during path
// construction: segment Index does not start where segment Prev ends.
type DisconnectedPathError struct {
	Prev  int
	Index int
}

func (e *DisconnectedPathError) Error() string {
	return fmt.Sprintf("disconnected path: segment %d does not connect to segment %d", e.Prev, e.Index)
}
