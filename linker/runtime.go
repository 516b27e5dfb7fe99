package linker

import (
	"math"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/luna-scenes/field"
)

// RuntimeConfig controls opportunistic links formed while a scene runs
type RuntimeConfig struct {
	// Cooldown is the minimum spacing between attempts of one point
	Cooldown time.Duration
	// MaxDistance bounds the nearest-neighbour search, exclusive
	MaxDistance float64
	// Chance is rolled before an attempt consumes the cooldown; 0 means always
	Chance float64
	// ExcludeLinked skips candidates already in the source's adjacency
	ExcludeLinked bool
	Alpha         field.Range
}

// Runtime forms rate-limited nearest-neighbour links
// Each source point owns a token bucket of size one refilled once per cooldown
type Runtime struct {
	cfg      RuntimeConfig
	limiters map[int]*rate.Limiter
}

// NewRuntime creates a runtime linker
func NewRuntime(cfg RuntimeConfig) *Runtime {
	return &Runtime{
		cfg:      cfg,
		limiters: make(map[int]*rate.Limiter),
	}
}

func (r *Runtime) limiter(id int) *rate.Limiter {
	lim, ok := r.limiters[id]
	if !ok {
		every := rate.Inf
		if r.cfg.Cooldown > 0 {
			every = rate.Every(r.cfg.Cooldown)
		}
		lim = rate.NewLimiter(every, 1)
		r.limiters[id] = lim
	}
	return lim
}

// Ready reports whether id is out of cooldown at now
func (r *Runtime) Ready(id int, now time.Time) bool {
	return r.limiter(id).TokensAt(now) >= 1
}

// MaybeLink tries to connect id to its nearest eligible neighbour
// Returns the new edge index and true on success
func (r *Runtime) MaybeLink(f *field.Field, g *Graph, id int, now time.Time, rng *rand.Rand) (int, bool) {
	if f.Len() < 2 {
		return -1, false
	}
	src, ok := f.Get(id)
	if !ok {
		return -1, false
	}
	if !r.Ready(id, now) {
		return -1, false
	}
	if c := r.cfg.Chance; c > 0 && c < 1 && rng.Float64() >= c {
		return -1, false
	}
	r.limiter(id).AllowN(now, 1)

	best, bestDist := -1, math.Inf(1)
	for j := range f.Points {
		if j == id {
			continue
		}
		if r.cfg.ExcludeLinked && src.HasLink(j) {
			continue
		}
		if d := src.Pos.Dist(f.Points[j].Pos); d < bestDist {
			best, bestDist = j, d
		}
	}
	if best < 0 || bestDist >= r.cfg.MaxDistance {
		return -1, false
	}

	idx := g.Link(f, id, best, r.cfg.Alpha.Sample(rng))
	return idx, idx >= 0
}
