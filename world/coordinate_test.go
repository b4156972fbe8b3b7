package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors4(t *testing.T) {
	tests := []struct {
		name     string
		input    Coordinate
		expected [4]Coordinate
	}{
		{
			name:  "Origin",
			input: Coordinate{X: 0, Y: 0},
			expected: [4]Coordinate{
				{X: 0, Y: -1},
				{X: 1, Y: 0},
				{X: 0, Y: 1},
				{X: -1, Y: 0},
			},
		},
		{
			name:  "Negative quadrant",
			input: Coordinate{X: -3, Y: -7},
			expected: [4]Coordinate{
				{X: -3, Y: -8},
				{X: -2, Y: -7},
				{X: -3, Y: -6},
				{X: -4, Y: -7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Neighbors4())
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        Coordinate
		b        Coordinate
		expected int
	}{
		{
			name:     "Same coordinate",
			a:        Coordinate{X: 2, Y: 3},
			b:        Coordinate{X: 2, Y: 3},
			expected: 0,
		},
		{
			name:     "Axis aligned",
			a:        Coordinate{X: 0, Y: 0},
			b:        Coordinate{X: 5, Y: 0},
			expected: 5,
		},
		{
			name:     "Diagonal",
			a:        Coordinate{X: 1, Y: 1},
			b:        Coordinate{X: 4, Y: 5},
			expected: 7,
		},
		{
			name:     "Across negative coordinates",
			a:        Coordinate{X: -2, Y: -3},
			b:        Coordinate{X: 2, Y: 3},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.ManhattanDistance(tt.b))
			assert.Equal(t, tt.expected, tt.b.ManhattanDistance(tt.a), "distance should be symmetric")
		})
	}
}

func TestEuclideanDistance(t *testing.T) {
	a := Coordinate{X: 0, Y: 0}
	b := Coordinate{X: 3, Y: 4}

	assert.InDelta(t, 5.0, a.EuclideanDistance(b), 1e-9)
	assert.InDelta(t, 0.0, a.EuclideanDistance(a), 1e-9)
}

func TestSortCoordinates(t *testing.T) {
	coords := []Coordinate{
		{X: 2, Y: 1},
		{X: 0, Y: 0},
		{X: -1, Y: 1},
		{X: 5, Y: -2},
	}

	SortCoordinates(coords)

	expected := []Coordinate{
		{X: 5, Y: -2},
		{X: 0, Y: 0},
		{X: -1, Y: 1},
		{X: 2, Y: 1},
	}
	assert.Equal(t, expected, coords)
}

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name     string
		coords   []Coordinate
		expected *Bounds
	}{
		{
			name:     "Empty set",
			coords:   nil,
			expected: nil,
		},
		{
			name:     "Single coordinate",
			coords:   []Coordinate{{X: 3, Y: -2}},
			expected: &Bounds{MinX: 3, MaxX: 3, MinY: -2, MaxY: -2},
		},
		{
			name: "Spread across quadrants",
			coords: []Coordinate{
				{X: 0, Y: 0},
				{X: -4, Y: 2},
				{X: 3, Y: -5},
			},
			expected: &Bounds{MinX: -4, MaxX: 3, MinY: -5, MaxY: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoundsOf(tt.coords))
		})
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2}

	assert.True(t, b.Contains(Coordinate{X: 0, Y: 0}))
	assert.True(t, b.Contains(Coordinate{X: -2, Y: 2}), "boundary is inclusive")
	assert.False(t, b.Contains(Coordinate{X: 3, Y: 0}))
	assert.Equal(t, 5, b.Width())
	assert.Equal(t, 5, b.Height())
}

func TestCoordinateString(t *testing.T) {
	require.Equal(t, "(3,-7)", Coordinate{X: 3, Y: -7}.String())
}
