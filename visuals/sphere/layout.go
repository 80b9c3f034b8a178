package sphere

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"orrery/visuals/noise"
	"orrery/visuals/quarkgl"
)

// Particle is a non-interactive point sprite.
type Particle struct {
	Position mgl32.Vec3
	Size     float32
	Color    quarkgl.Color
}

var (
	starBlue  = mgl32.Vec3{0.55, 0.65, 1.0}
	starWhite = mgl32.Vec3{0.95, 0.95, 1.0}
	starAmber = mgl32.Vec3{1.0, 0.72, 0.3}
)

// Fibonacci lays out n particles on a sphere of the given radius with the
// Y axis as the pole. Each radius is perturbed by at most jitter. The
// output depends only on the arguments.
func Fibonacci(n int, radius, jitter float32, seed int64) []Particle {
	if n <= 0 {
		return nil
	}
	field := perlin.NewPerlin(2, 2, 3, seed)
	out := make([]Particle, n)
	spin := math.Sqrt(float64(n) * math.Pi)
	for i := range out {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := spin * phi

		// Integer lattice points of Perlin noise are zero; sample between them.
		j := noise.Clamp(float32(field.Noise1D(float64(i)*0.173+0.5)), -1, 1)
		r := float64(radius + jitter*j)

		sp, cp := math.Sincos(phi)
		st, ct := math.Sincos(theta)
		pos := mgl32.Vec3{
			float32(r * sp * ct),
			float32(r * cp),
			float32(r * sp * st),
		}

		k := noise.Clamp(float32(field.Noise2D(float64(i)*0.091, 3.7))*0.5+0.5, 0, 1)
		size := 0.03 + 0.04*k
		var c mgl32.Vec3
		if k < 0.5 {
			c = noise.MixVec3(starBlue, starWhite, k*2)
		} else {
			c = noise.MixVec3(starWhite, starAmber, (k-0.5)*2)
		}
		out[i] = Particle{
			Position: pos,
			Size:     size,
			Color:    quarkgl.FromVec3(c, 0.55+0.45*k),
		}
	}
	return out
}
