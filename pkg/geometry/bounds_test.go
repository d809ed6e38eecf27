package geometry

import "testing"

func TestBoxAround(t *testing.T) {
	b := BoxAround(NewVector3(0, 0, 5), NewVector3(4, 2, 10))

	if b.Min != NewVector3(-2, -1, 0) {
		t.Errorf("Min: got %v", b.Min)
	}
	if b.Max != NewVector3(2, 1, 10) {
		t.Errorf("Max: got %v", b.Max)
	}
	if b.Center() != NewVector3(0, 0, 5) {
		t.Errorf("Center: got %v", b.Center())
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	b := NewBoundingBox()
	if !b.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}

	b.Union(NewBoundingBox())
	if !b.IsEmpty() {
		t.Fatal("union with an empty box should stay empty")
	}

	b.Union(BoxAround(NewVector3(0, 0, 0), NewVector3(2, 2, 2)))
	b.Union(BoxAround(NewVector3(10, 0, 0), NewVector3(2, 2, 2)))

	if got := b.Size(); got != NewVector3(12, 2, 2) {
		t.Errorf("Size: got %v", got)
	}
}
