package app

import "testing"

func TestOptionsNormalized(t *testing.T) {
	got := Options{CellSize: 0, HUDWidth: -5}.normalized()
	if got.CellSize != defaultCellSize || got.HUDWidth != 0 {
		t.Fatalf("normalized() = %+v", got)
	}
	kept := Options{CellSize: 3, HUDWidth: 200}.normalized()
	if kept != (Options{CellSize: 3, HUDWidth: 200}) {
		t.Fatalf("normalized() changed valid options: %+v", kept)
	}
}
