package storage

import "testing"

func TestClampPageSize(t *testing.T) {
	tests := map[int]int{
		-1:              DefaultPageSize,
		0:               DefaultPageSize,
		10:              10,
		MaxPageSize:     MaxPageSize,
		MaxPageSize + 1: MaxPageSize,
	}
	for in, want := range tests {
		if got := ClampPageSize(in); got != want {
			t.Fatalf("ClampPageSize(%d) = %d, want %d", in, got, want)
		}
	}
}
