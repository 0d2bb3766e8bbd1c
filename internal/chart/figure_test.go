package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"Line": KindLine, "bar": KindBar, " AREA ": KindArea, "Scatter": KindScatter}
	for label, want := range cases {
		got, err := ParseKind(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("pie")
	assert.Error(t, err)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Line", KindLine.Label())
	assert.Equal(t, "Area", KindArea.Label())
}

func TestFigureBoundsAndCount(t *testing.T) {
	fig := Figure{Kind: KindScatter, Series: []Series{
		{Name: "a", Points: []Point{{X: 1, Y: 5}, {X: -2, Y: 3}}},
		{Name: "b", Points: []Point{{X: 4, Y: -1}}},
	}}
	minX, maxX, minY, maxY, ok := fig.Bounds()
	require.True(t, ok)
	assert.Equal(t, -2.0, minX)
	assert.Equal(t, 4.0, maxX)
	assert.Equal(t, -1.0, minY)
	assert.Equal(t, 5.0, maxY)
	assert.Equal(t, 3, fig.PointCount())
	assert.NoError(t, fig.Validate())
}

func TestFigureBoundsSkipsNonFinitePoints(t *testing.T) {
	fig := Figure{Kind: KindScatter, Series: []Series{
		{Name: "a", Points: []Point{{X: 1, Y: 2}, {X: 2, Y: math.Inf(1)}, {X: math.NaN(), Y: 0}, {X: 3, Y: 4}}},
	}}
	minX, maxX, minY, maxY, ok := fig.Bounds()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 3, 2, 4}, []float64{minX, maxX, minY, maxY})
	assert.False(t, Point{X: math.Inf(-1)}.Finite())

	_, _, _, _, ok = Figure{Series: []Series{{Points: []Point{{X: math.Inf(1), Y: 1}}}}}.Bounds()
	assert.False(t, ok)
}

func TestFigureValidate(t *testing.T) {
	assert.Error(t, Figure{Kind: KindLine}.Validate())
	assert.Error(t, Figure{Kind: "pie", Series: []Series{{Name: "x"}}}.Validate())
}

func TestColorAtWraps(t *testing.T) {
	assert.Equal(t, Palette[0], ColorAt(len(Palette)))
}
