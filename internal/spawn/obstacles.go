package spawn

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/polarforge/santavors/internal/core"
	"github.com/polarforge/santavors/internal/session"
)

// noiseField wraps the simplex generator so the director can be tested with
// a deterministic seed.
type noiseField struct {
	n opensimplex.Noise
}

func newNoiseField(seed int64) noiseField {
	return noiseField{n: opensimplex.NewNormalized(seed)}
}

// at samples the field in [0,1] at world coordinates.
func (f noiseField) at(x, z float64) float64 {
	const freq = 0.05
	return f.n.Eval2(x*freq, z*freq)
}

// obstacleKinds cycle by grid position so the playfield gets some visual
// variety without extra state.
var obstacleKinds = []string{"pine", "rock", "snowdrift"}

// placeObstacles samples the noise field over the world grid once and turns
// every cell above the threshold into an obstacle. The area around the
// origin stays clear so the player never wakes up inside one.
func (d *Director) placeObstacles() []session.Obstacle {
	var out []session.Obstacle
	w := d.cfg.WorldSize
	step := d.cfg.ObstacleGridStep
	i := 0
	for x := -w + step; x < w; x += step {
		for z := -w + step; z < w; z += step {
			i++
			v := d.noise.at(x, z)
			if v < d.cfg.ObstacleThreshold {
				continue
			}
			pos := core.Vec3{X: x, Z: z}
			if pos.LenXZ() < d.cfg.ObstacleClearance {
				continue
			}
			out = append(out, session.Obstacle{
				Pos:    pos,
				Radius: 1 + 1.5*(v-d.cfg.ObstacleThreshold)/(1-d.cfg.ObstacleThreshold),
				Height: 2 + 3*v,
				Kind:   obstacleKinds[i%len(obstacleKinds)],
			})
		}
	}
	return out
}
