package models

import "testing"

func TestCoverageFor(t *testing.T) {
	tests := []struct {
		sources int
		want    string
	}{
		{0, CoverageMinimal},
		{1, CoverageMinimal},
		{2, CoverageMinimal},
		{3, CoverageModerate},
		{5, CoverageModerate},
		{7, CoverageModerate},
		{8, CoverageExtensive},
		{50, CoverageExtensive},
	}

	for _, tt := range tests {
		if got := CoverageFor(tt.sources); got != tt.want {
			t.Errorf("CoverageFor(%d) = %q, want %q", tt.sources, got, tt.want)
		}
	}
}

func TestCoverageForMonotonic(t *testing.T) {
	rank := map[string]int{
		CoverageMinimal:   0,
		CoverageModerate:  1,
		CoverageExtensive: 2,
	}

	prev := CoverageFor(0)
	for n := 1; n <= 20; n++ {
		cur := CoverageFor(n)
		if rank[cur] < rank[prev] {
			t.Fatalf("coverage regressed from %q to %q at %d sources", prev, cur, n)
		}
		prev = cur
	}
}
