package frame

import "math"

// Sod shock tube states (density, velocity, pressure) left and right of
// the initial discontinuity at x = 0.
const (
	sodRhoL = 1.0
	sodPL   = 1.0
	sodRhoR = 0.125
	sodPR   = 0.1
	gamma   = 1.4
)

// Synthetic returns a smooth stand-in for frame n of a Sod shock tube on
// [-1, 1] with mx cells and 3 components (density, momentum, energy).
// The jump travels right and spreads with time; it is meant for demos
// and tests, not as a solution of the Euler equations.
func Synthetic(n int, t float64, mx int) *Frame {
	const xlow, xhigh = -1.0, 1.0
	dx := (xhigh - xlow) / float64(mx)

	p := Patch{GridNumber: 1, Level: 1, Mx: mx, XLow: xlow, Dx: dx, Q: make([][]float64, 3)}
	for m := range p.Q {
		p.Q[m] = make([]float64, mx)
	}

	front := 0.9 * t
	width := 0.02 + 0.25*t
	for i, x := range p.Centers() {
		s := 0.5 * (1 - math.Tanh((x-front)/width))
		rho := sodRhoR + (sodRhoL-sodRhoR)*s
		pr := sodPR + (sodPL-sodPR)*s
		u := 0.75 * s * (1 - s) * 4 * math.Min(t*5, 1)
		p.Q[0][i] = rho
		p.Q[1][i] = rho * u
		p.Q[2][i] = pr/(gamma-1) + 0.5*rho*u*u
	}

	return &Frame{
		Number:  n,
		Time:    t,
		Meqn:    3,
		Ndim:    1,
		Patches: []Patch{p},
		Header:  map[string]string{},
	}
}
