package linker

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/vmath"
)

func staticField(n int, seed int64) *field.Field {
	cfg := field.Config{Motion: field.MotionStatic, Radius: field.Range{Min: 2, Max: 2}}
	return field.Initialize(n, vmath.R(0, 0, 400, 300), cfg, rand.New(rand.NewSource(seed)))
}

// TestAssignInitialFixedFanOut wires ten points with exactly two links each
func TestAssignInitialFixedFanOut(t *testing.T) {
	for _, symmetric := range []bool{false, true} {
		f := staticField(10, 42)
		g := NewGraph(symmetric)
		AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 2, Max: 2}, Dedup: true, Symmetric: symmetric}, rand.New(rand.NewSource(1)))

		outbound := make(map[int]int)
		for _, e := range g.Edges {
			assert.NotEqual(t, e.From, e.To)
			outbound[e.From]++
		}
		for _, p := range f.Points {
			assert.GreaterOrEqual(t, len(p.Links), 2, "point %d", p.ID)
			assert.GreaterOrEqual(t, outbound[p.ID], 2, "point %d", p.ID)
		}
	}
}

func TestAssignInitialSymmetricAppendsBothEnds(t *testing.T) {
	f := staticField(6, 3)
	g := NewGraph(true)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 1, Max: 1}, Dedup: true}, rand.New(rand.NewSource(2)))

	// Every forward record has a mirrored record
	require.Equal(t, 0, g.Len()%2)
	for i := 0; i < g.Len(); i += 2 {
		fwd, rev := g.Edges[i], g.Edges[i+1]
		assert.Equal(t, fwd.From, rev.To)
		assert.Equal(t, fwd.To, rev.From)
		assert.True(t, f.Points[fwd.To].HasLink(fwd.From))
	}
}

func TestAssignInitialOneSidedLeavesTargetsAlone(t *testing.T) {
	f := staticField(2, 3)
	g := NewGraph(false)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 1, Max: 1}, Dedup: true}, rand.New(rand.NewSource(2)))
	assert.Equal(t, []int{1}, f.Points[0].Links)
	assert.Equal(t, []int{0}, f.Points[1].Links)
	assert.Equal(t, 2, g.Len())
}

func TestAssignInitialCapsAtAvailableTargets(t *testing.T) {
	f := staticField(3, 1)
	g := NewGraph(false)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 5, Max: 5}, Dedup: true}, rand.New(rand.NewSource(1)))
	for _, p := range f.Points {
		assert.Len(t, p.Links, 2)
	}
}

func TestAssignInitialWithReplacementNeverSelfLinks(t *testing.T) {
	f := staticField(4, 1)
	g := NewGraph(false)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 4, Max: 4}}, rand.New(rand.NewSource(8)))
	for _, e := range g.Edges {
		assert.NotEqual(t, e.From, e.To)
	}
}

func TestAssignInitialTopsUpSpecialPoint(t *testing.T) {
	f := staticField(20, 5)
	user := f.NewPoint(field.KindUser)
	uid := f.Add(user)
	g := NewGraph(true)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 2, Max: 5}, Dedup: true, Symmetric: true, SpecialMin: 8}, rand.New(rand.NewSource(6)))
	assert.GreaterOrEqual(t, len(f.Points[uid].Links), 8)
}

func TestAssignInitialTooFewPoints(t *testing.T) {
	f := staticField(1, 1)
	g := NewGraph(false)
	AssignInitial(f, g, Config{FanOut: field.IntRange{Min: 2, Max: 2}, Dedup: true}, rand.New(rand.NewSource(1)))
	assert.Zero(t, g.Len())
	assert.Empty(t, f.Points[0].Links)
}

func TestAssignForWiresLatePoint(t *testing.T) {
	f := staticField(8, 9)
	g := NewGraph(false)
	cfg := Config{FanOut: field.IntRange{Min: 3, Max: 3}, Dedup: true}
	rng := rand.New(rand.NewSource(4))
	AssignInitial(f, g, cfg, rng)
	before := g.Len()

	late := f.Add(f.NewPoint(field.KindSignature))
	AssignFor(f, g, late, cfg, rng)

	assert.Equal(t, before+3, g.Len())
	require.Len(t, f.Points[late].Links, 3)
	seen := make(map[int]bool)
	for _, to := range f.Points[late].Links {
		assert.NotEqual(t, late, to)
		assert.False(t, seen[to])
		seen[to] = true
	}
}

func TestLinkRejectsSelfAndStale(t *testing.T) {
	f := staticField(3, 1)
	g := NewGraph(false)
	assert.Equal(t, -1, g.Link(f, 1, 1, 1))
	assert.Equal(t, -1, g.Link(f, 1, 7, 1))
	assert.Equal(t, 0, g.Link(f, 0, 1, 1))
	// Duplicates are kept
	assert.Equal(t, 1, g.Link(f, 0, 1, 1))
	assert.Equal(t, []int{1, 1}, f.Points[0].Links)
}

func TestFullMeshGap(t *testing.T) {
	f := staticField(5, 1)
	g := NewGraph(false)
	FullMesh(f, g, 0, 0.2)
	assert.Equal(t, 20, g.Len())

	f = staticField(5, 1)
	g = NewGraph(false)
	FullMesh(f, g, 2, 0.2)
	// pairs with |i-j| <= 2: 2*(4+3) = 14
	assert.Equal(t, 14, g.Len())
}

func TestStar(t *testing.T) {
	f := staticField(6, 1)
	g := NewGraph(false)
	Star(f, g, 0, 0.2)
	assert.Equal(t, 5, g.Len())
	assert.Len(t, f.Points[0].Links, 5)
}

// TestOpacity covers the falloff curve and its clamps
func TestOpacity(t *testing.T) {
	assert.Equal(t, 1.0, Opacity(0, 200, FalloffLinear))
	assert.Equal(t, 0.5, Opacity(100, 200, FalloffLinear))
	assert.Equal(t, 0.25, Opacity(100, 200, FalloffSquared))
	assert.Equal(t, 0.0, Opacity(200, 200, FalloffLinear))
	assert.Equal(t, 0.0, Opacity(250, 200, FalloffLinear))
	assert.Equal(t, 0.0, Opacity(math.NaN(), 200, FalloffLinear))
	assert.Equal(t, 0.0, Opacity(math.Inf(1), 200, FalloffLinear))
	assert.Equal(t, 1.0, Opacity(-3, 200, FalloffLinear))
	assert.Equal(t, 1.0, Opacity(50, 0, FalloffLinear))

	prev := 1.0
	for d := 0.0; d < 200; d += 7 {
		o := Opacity(d, 200, FalloffLinear)
		assert.LessOrEqual(t, o, prev)
		assert.GreaterOrEqual(t, o, 0.0)
		prev = o
	}
}

// TestOpacityCoincidentPoints places two points on top of each other
func TestOpacityCoincidentPoints(t *testing.T) {
	a, b := vmath.V(50, 50), vmath.V(50, 50)
	o := Opacity(a.Dist(b), 200, FalloffLinear)
	assert.Equal(t, 1.0, o)
	assert.False(t, math.IsNaN(o))
	assert.True(t, ShouldRender(a, b, 200))
}

func TestShouldRender(t *testing.T) {
	assert.True(t, ShouldRender(vmath.V(0, 0), vmath.V(199, 0), 200))
	assert.False(t, ShouldRender(vmath.V(0, 0), vmath.V(200, 0), 200))
	assert.True(t, ShouldRender(vmath.V(0, 0), vmath.V(5000, 0), 0))
}

func runtimeField() *field.Field {
	f := staticField(0, 1)
	for _, pos := range []vmath.Vec2{{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 110, Y: 100}, {X: 390, Y: 290}} {
		p := f.NewPoint(field.KindOrdinary)
		p.Pos = pos
		f.Add(p)
	}
	return f
}

func TestRuntimeLinksNearestWithinRange(t *testing.T) {
	f := runtimeField()
	g := NewGraph(true)
	r := NewRuntime(RuntimeConfig{Cooldown: 2 * time.Second, MaxDistance: 150, ExcludeLinked: true})
	rng := rand.New(rand.NewSource(1))
	now := time.Unix(1000, 0)

	idx, ok := r.MaybeLink(f, g, 0, now, rng)
	require.True(t, ok)
	assert.Equal(t, 2, g.Edges[idx].To)

	// Cooldown blocks the next attempt
	_, ok = r.MaybeLink(f, g, 0, now.Add(1999*time.Millisecond), rng)
	assert.False(t, ok)

	// After cooldown the linked neighbour is skipped
	idx, ok = r.MaybeLink(f, g, 0, now.Add(2*time.Second), rng)
	require.True(t, ok)
	assert.Equal(t, 1, g.Edges[idx].To)

	// Remaining candidate is too far
	_, ok = r.MaybeLink(f, g, 0, now.Add(4*time.Second), rng)
	assert.False(t, ok)
}

func TestRuntimeFailedSearchStillConsumesCooldown(t *testing.T) {
	f := runtimeField()
	g := NewGraph(false)
	r := NewRuntime(RuntimeConfig{Cooldown: time.Second, MaxDistance: 1})
	now := time.Unix(0, 0)
	_, ok := r.MaybeLink(f, g, 3, now, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
	assert.False(t, r.Ready(3, now))
	assert.True(t, r.Ready(3, now.Add(time.Second)))
}

func TestRuntimeChanceMissKeepsCooldown(t *testing.T) {
	f := runtimeField()
	g := NewGraph(false)
	r := NewRuntime(RuntimeConfig{Cooldown: 5 * time.Second, MaxDistance: 150, Chance: 1e-9})
	now := time.Unix(0, 0)
	_, ok := r.MaybeLink(f, g, 0, now, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
	assert.True(t, r.Ready(0, now))
}

func TestRuntimeNeedsTwoPoints(t *testing.T) {
	f := staticField(1, 1)
	r := NewRuntime(RuntimeConfig{MaxDistance: 1e9})
	_, ok := r.MaybeLink(f, NewGraph(false), 0, time.Now(), rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestConstellationSpreadAndDedup(t *testing.T) {
	f := staticField(0, 1)
	bounds := vmath.R(0, 0, 100, 100)
	f.SetBounds(bounds)
	// Centre star with six neighbours, two of them nearly collinear
	for _, pos := range []vmath.Vec2{
		{X: 50, Y: 50}, {X: 55, Y: 50}, {X: 57, Y: 50.5}, {X: 50, Y: 55}, {X: 45, Y: 50}, {X: 50, Y: 45}, {X: 54, Y: 54},
	} {
		p := f.NewPoint(field.KindOrdinary)
		p.Pos = pos
		f.Add(p)
	}

	cfg := ConstellationConfig{Reach: 20, LinkRadius: 15, MaxLinks: 4, MinAngle: DefaultMinAngle}
	pairs := Constellation(f.Points, bounds, vmath.V(50, 50), cfg)
	require.NotEmpty(t, pairs)

	seen := make(map[[2]int]bool)
	perSource := make(map[int]int)
	for _, p := range pairs {
		key := [2]int{min(p.A, p.B), max(p.A, p.B)}
		assert.False(t, seen[key], "duplicate pair %v", key)
		seen[key] = true
		perSource[p.A]++
		assert.GreaterOrEqual(t, p.Strength, 0.0)
		assert.LessOrEqual(t, p.Strength, 1.0)
	}
	for src, n := range perSource {
		assert.LessOrEqual(t, n, 4, "star %d", src)
	}
	// Centre star never links to both collinear neighbours
	assert.False(t, seen[[2]int{0, 1}] && seen[[2]int{0, 2}])
}

func TestConstellationPointerFarAway(t *testing.T) {
	f := staticField(20, 2)
	cfg := ConstellationConfig{Reach: 1, LinkRadius: 15, MaxLinks: 4, MinAngle: DefaultMinAngle}
	assert.Empty(t, Constellation(f.Points, f.Bounds, vmath.V(-1000, -1000), cfg))
}

func TestProximityPairs(t *testing.T) {
	pts := []field.Point{
		{ID: 0, Pos: vmath.V(0, 0)},
		{ID: 1, Pos: vmath.V(30, 0)},
		{ID: 2, Pos: vmath.V(0, 40)},
		{ID: 3, Pos: vmath.V(200, 200)},
	}
	pairs := Proximity(pts, 60, FalloffSquared)
	require.Len(t, pairs, 3)
	assert.Equal(t, Pair{A: 0, B: 1, Strength: 0.25}, pairs[0])
	assert.Equal(t, 0, pairs[1].A)
	assert.Equal(t, 2, pairs[1].B)
	assert.Equal(t, 1, pairs[2].A)
	for _, p := range pairs {
		assert.NotEqual(t, 3, p.B)
		assert.GreaterOrEqual(t, p.Strength, 0.0)
		assert.LessOrEqual(t, p.Strength, 1.0)
	}

	assert.Nil(t, Proximity(pts[:1], 60, FalloffLinear))
	assert.Nil(t, Proximity(pts, 0, FalloffLinear))
}
