package models

import (
	"reflect"
	"testing"
)

func TestPath_Compare(t *testing.T) {
	testCases := []struct {
		name string
		p, q Path
		want int
	}{
		{"Equal", Path{"A", "B"}, Path{"A", "B"}, 0},
		{"SegmentOrder", Path{"A", "B"}, Path{"A", "C"}, -1},
		{"PrefixFirst", Path{"A"}, Path{"A", "B"}, -1},
		{"LongerAfterPrefix", Path{"A", "B", "C"}, Path{"A", "B"}, 1},
		{"DisjointRoots", Path{"B"}, Path{"A", "X"}, 1},
		{"SegmentBeatsLength", Path{"A", "Z"}, Path{"B"}, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.p.Compare(tc.q)
			if sign(got) != sign(tc.want) {
				t.Errorf("Compare(%v, %v) = %d, want sign %d", tc.p, tc.q, got, tc.want)
			}
			if back := tc.q.Compare(tc.p); sign(back) != -sign(tc.want) {
				t.Errorf("Compare(%v, %v) = %d, want sign %d", tc.q, tc.p, back, -tc.want)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestPath_CommonPrefixLen(t *testing.T) {
	testCases := []struct {
		name string
		p, q Path
		want int
	}{
		{"Identical", Path{"A", "B"}, Path{"A", "B"}, 2},
		{"SharedAncestor", Path{"A", "B", "X"}, Path{"A", "C", "Y"}, 1},
		{"NoneShared", Path{"A", "X"}, Path{"B", "Y"}, 0},
		{"PrefixOfOther", Path{"A"}, Path{"A", "B", "C"}, 1},
		{"AgainstEmpty", nil, Path{"A"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.CommonPrefixLen(tc.q); got != tc.want {
				t.Errorf("CommonPrefixLen(%v, %v) = %d, want %d", tc.p, tc.q, got, tc.want)
			}
		})
	}
}

func TestSortPairs(t *testing.T) {
	pairs := []Pair{
		{Path: Path{"B", "Y"}, Value: "2"},
		{Path: Path{"A", "B", "X"}, Value: "1"},
		{Path: Path{"A", "B"}, Value: "0"},
		{Path: Path{"A", "C"}, Value: "3"},
	}

	SortPairs(pairs)

	want := []Pair{
		{Path: Path{"A", "B"}, Value: "0"},
		{Path: Path{"A", "B", "X"}, Value: "1"},
		{Path: Path{"A", "C"}, Value: "3"},
		{Path: Path{"B", "Y"}, Value: "2"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("SortPairs() = %v, want %v", pairs, want)
	}
	if !PairsSorted(pairs) {
		t.Errorf("PairsSorted() = false after SortPairs, want true")
	}
}

func TestPairsSorted_Unsorted(t *testing.T) {
	pairs := []Pair{
		{Path: Path{"B"}, Value: "1"},
		{Path: Path{"A"}, Value: "2"},
	}
	if PairsSorted(pairs) {
		t.Errorf("PairsSorted() = true for unsorted pairs, want false")
	}
}

func TestLiteral_Interface(t *testing.T) {
	testCases := []struct {
		name string
		lit  Literal
		want interface{}
	}{
		{"Integer", IntegerOf(42), int64(42)},
		{"Double", DoubleOf(3.5), 3.5},
		{"Bool", BoolOf(true), true},
		{"String", StringOf("info"), "info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.lit.Interface(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Interface() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestLiteral_Text(t *testing.T) {
	testCases := []struct {
		name string
		lit  Literal
		want string
	}{
		{"Integer", IntegerOf(-7), "-7"},
		{"Double", DoubleOf(10.5), "10.5"},
		{"DoubleWholeKeepsDot", DoubleOf(10), "10.0"},
		{"BoolFalse", BoolOf(false), "false"},
		{"String", StringOf("plain"), "plain"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.lit.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}
