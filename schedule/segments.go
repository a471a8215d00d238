package schedule

// Segment is one pipe segment of a multi-segment well.
// Segment numbers come from the input deck and start at 1; the top
// (wellhead) segment has no outlet (Outlet == 0). Every other segment's
// outlet lies strictly closer to the wellhead, so the topology is a tree
// rooted at the top segment.
type Segment struct {
	Number int `json:"number"`
	Outlet int `json:"outlet"` // outlet segment number, 0 for the top segment
}

// SegmentSet is the ordered segment topology of a multi-segment well.
// Index 0 is always the top segment.
type SegmentSet struct {
	Segments []Segment `json:"segments"`
}

// Size returns the number of segments.
func (s *SegmentSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Segments)
}

// NumberToIndex returns the arena index of the segment with the given
// number, or -1 if no such segment exists.
func (s *SegmentSet) NumberToIndex(number int) int {
	for i := range s.Segments {
		if s.Segments[i].Number == number {
			return i
		}
	}
	return -1
}
