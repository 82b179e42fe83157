package domain_test

import (
	"errors"
	"testing"

	"github.com/aldasoro/waymark/internal/core/domain"
)

func mustSegment(t *testing.T, start, end domain.Point) domain.Segment {
	t.Helper()
	seg, err := domain.NewSegment(start, end)
	if err != nil {
		t.Fatalf("NewSegment(%v, %v): %v", start, end, err)
	}
	return seg
}

func TestNewPath(t *testing.T) {
	a := domain.NewPoint(10.123456, -20.654321)
	b := domain.NewPoint(11.123456, -21.654321)
	c := domain.NewPoint(12.123456, -22.654321)

	path, err := domain.NewPath(
		mustSegment(t, a, b),
		mustSegment(t, b, c),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.Len() != 2 {
		t.Errorf("Len() = %d, want 2", path.Len())
	}
	if segs := path.Segments(); !segs[0].Start.Equal(a) || !segs[1].End.Equal(c) {
		t.Errorf("segments not preserved: %v", segs)
	}
}

func TestNewPathDisconnected(t *testing.T) {
	a := domain.NewPoint(10.123456, -20.654321)
	b := domain.NewPoint(11.123456, -21.654321)
	c := domain.NewPoint(12.123456, -22.654321)

	_, err := domain.NewPath(
		mustSegment(t, a, b),
		mustSegment(t, c, a), // does not start at b
	)
	if err == nil {
		t.Fatal("expected error for disconnected segments")
	}

	var disconnected *domain.DisconnectedPathError
	if !errors.As(err, &disconnected) {
		t.Fatalf("error type = %T, want *DisconnectedPathError", err)
	}
	if disconnected.Prev != 0 || disconnected.Index != 1 {
		t.Errorf("offending indices = (%d, %d), want (0, 1)", disconnected.Prev, disconnected.Index)
	}
}

func TestNewPathDuplicateSegments(t *testing.T) {
	a := domain.NewPoint(0, 0)
	b := domain.NewPoint(3, 4)

	// The same a->b segment twice: the second does not start at b.
	_, err := domain.NewPath(
		mustSegment(t, a, b),
		mustSegment(t, a, b),
	)
	var disconnected *domain.DisconnectedPathError
	if !errors.As(err, &disconnected) {
		t.Fatalf("expected *DisconnectedPathError, got %v", err)
	}
	if disconnected.Index != 1 {
		t.Errorf("offending index = %d, want 1", disconnected.Index)
	}
}

func TestNewPathEmpty(t *testing.T) {
	path, err := domain.NewPath()
	if err != nil {
		t.Fatalf("empty path must be legal, got %v", err)
	}
	if path.Len() != 0 {
		t.Errorf("Len() = %d, want 0", path.Len())
	}
}

func TestNewPathClosed(t *testing.T) {
	a := domain.NewPoint(0, 0)
	b := domain.NewPoint(3, 4)

	// A path may return to its own start.
	if _, err := domain.NewPath(
		mustSegment(t, a, b),
		mustSegment(t, b, a),
	); err != nil {
		t.Fatalf("closed path must be legal, got %v", err)
	}
}

func TestPathSegmentsReturnsCopy(t *testing.T) {
	a := domain.NewPoint(0, 0)
	b := domain.NewPoint(3, 4)

	path, err := domain.NewPath(mustSegment(t, a, b))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segs := path.Segments()
	segs[0] = domain.Segment{}

	if fresh := path.Segments(); !fresh[0].Start.Equal(a) {
		t.Error("mutating the returned slice must not affect the path")
	}
}
