package mosaic

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beads/internal/bead"
	"beads/internal/bead/beadtest"
	"beads/internal/telemetry"
)

func TestInit(t *testing.T) {
	e, _ := beadtest.NewEngine()
	e.Start(New(bead.NewRand(1)))

	f := e.Snapshot()
	assert.Equal(t, 31, f.Width)
	assert.Equal(t, 31, f.Height)
	assert.Equal(t, bead.Hex(0x737070), f.GridColor)
	assert.Equal(t, "Mosaic Maker", f.Status)
	for _, b := range f.Beads {
		assert.Zero(t, b.Border)
	}
}

func TestInitReportsStartup(t *testing.T) {
	ctx := context.Background()
	store, err := telemetry.Open(ctx, filepath.Join(t.TempDir(), "t.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	e, _ := beadtest.NewEngine(bead.WithTelemetry(store, "ada", false))
	e.Start(New(bead.NewRand(1)))

	n, err := store.Sessions(ctx, Team)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pending, err := store.Pending(ctx, Team)
	require.NoError(t, err)
	assert.Empty(t, pending, "startup is sent with discard")

	sent, err := store.Sent(ctx, Team)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "startup", sent[0].Name)
}

func TestPaintPatterns(t *testing.T) {
	tests := []struct {
		p       Pattern
		painted [][2]int
		clear   [][2]int
	}{
		{Row, [][2]int{{0, 5}, {30, 5}, {12, 5}}, [][2]int{{12, 6}}},
		{Column, [][2]int{{12, 0}, {12, 30}}, [][2]int{{11, 5}}},
		{OddColumns, [][2]int{{1, 5}, {29, 5}}, [][2]int{{0, 5}, {30, 5}, {12, 5}}},
		{OddRows, [][2]int{{12, 1}, {12, 29}}, [][2]int{{12, 0}, {12, 30}, {12, 6}}},
	}
	for _, tt := range tests {
		e, _ := beadtest.NewEngine()
		g := New(bead.NewRand(1))
		e.Start(g)

		g.Paint(tt.p, 12, 5, bead.Red)
		for _, xy := range tt.painted {
			assert.Equal(t, bead.Red, e.BeadColor(xy[0], xy[1]), "pattern %d at %v", tt.p, xy)
		}
		for _, xy := range tt.clear {
			assert.Equal(t, bead.White, e.BeadColor(xy[0], xy[1]), "pattern %d at %v", tt.p, xy)
		}
	}
}

func TestTouchPaintsRandomStripe(t *testing.T) {
	const seed = 99
	e, played := beadtest.NewEngine()
	e.Start(New(bead.NewRand(seed)))

	ref := bead.NewRand(seed)
	c := ref.Color(255)
	p := Pattern(ref.Intn(12) % 4)

	e.Touch(4, 8)
	assert.Equal(t, "xylo_c5", played.Last())

	switch p {
	case Row:
		assert.Equal(t, c, e.BeadColor(0, 8))
	case Column:
		assert.Equal(t, c, e.BeadColor(4, 0))
	case OddColumns:
		assert.Equal(t, c, e.BeadColor(1, 8))
	case OddRows:
		assert.Equal(t, c, e.BeadColor(4, 1))
	}
}

func TestTouchColourNeverReachesFull(t *testing.T) {
	e, _ := beadtest.NewEngine()
	e.Start(New(bead.NewRand(3)))
	for i := 0; i < 200; i++ {
		e.Color(bead.All, bead.All, bead.Black)
		e.Touch(i%31, (i*11)%31)
		for _, b := range e.Snapshot().Beads {
			assert.NotEqual(t, uint8(255), b.Color.R)
			assert.NotEqual(t, uint8(255), b.Color.G)
			assert.NotEqual(t, uint8(255), b.Color.B)
		}
	}
}

func TestEnterWhitensOrIgnores(t *testing.T) {
	const seed = 5
	e, played := beadtest.NewEngine()
	g := New(bead.NewRand(seed))
	e.Start(g)
	e.Color(bead.All, bead.All, bead.Black)

	ref := bead.NewRand(seed)
	for i := 0; i < 20; i++ {
		played.Reset()
		x, y := i%31, (i*7)%31
		e.Color(bead.All, bead.All, bead.Black)
		r := ref.Intn(4)
		g.Enter(x, y, 0)

		switch r {
		case 0:
			assert.Equal(t, bead.White, e.BeadColor((x+1)%31, y))
			assert.Equal(t, []float64{0.25}, played.Volumes)
		case 1:
			assert.Equal(t, bead.White, e.BeadColor(x, (y+1)%31))
			assert.Equal(t, []string{"xylo_a4"}, played.Names)
		default:
			assert.Empty(t, played.Names)
			assert.Equal(t, bead.Black, e.BeadColor(x, y))
		}
	}
}
