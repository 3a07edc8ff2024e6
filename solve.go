package glyph

import (
	"math"
)

// DefaultAccuracy is the accuracy, in glyph units, used for arc length
// computations when no other value is given.
const DefaultAccuracy = 1e-6

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// This function tries to be quite numerically robust. If the equation is nearly
// linear, it will return the root ignoring the quadratic term; the other root
// might be out of representable range. In the degenerate case where all
// coefficients are zero, so that all values of x satisfy the equation, a single
// 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			// Degenerate case
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !math.IsInf(root2, 0) {
		// Sort just to be friendly and make results deterministic.
		if root2 > root1 {
			return [2]float64{root1, root2}, 2
		} else {
			return [2]float64{root2, root1}, 2
		}
	} else {
		return [2]float64{root1}, 1
	}
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the [ITP method], as described in the paper [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// The values of ya and yb are given as arguments rather than computed from f,
// as the values may already be known, or they may be less expensive to compute
// as special cases.
//
// It is assumed that ya < 0.0 and yb > 0.0, otherwise unexpected results may
// occur.
//
// The value of epsilon must be larger than 2**-63 * (b - a), otherwise integer
// overflow may occur. The a and b parameters represent the lower and upper
// bounds of the bracket searched for a solution.
//
// The ITP method has tuning parameters. This implementation hardwires k2 to 2,
// both because it avoids an expensive floating point exponentiation and because
// this value has been tested to work well with curve fitting problems.
//
// The n0 parameter controls the relative impact of the bisection and secant
// components. When it is 0, the number of iterations is guaranteed to be no
// more than the number required by bisection (thus, this method is strictly
// superior to bisection). However, when the function is smooth, a value of 1
// gives the secant method more of a chance to engage, so the average number of
// iterations is likely lower, though there can be one more iteration than
// bisection in the worst case.
//
// The k1 parameter is harder to characterize, and interested users are referred
// to the paper, as well as encouraged to do empirical testing. To match the
// paper, a value of 0.2 / (b - a) is suggested, and this is confirmed to give
// good results.
//
// When the function is monotonic, the returned result is guaranteed to be
// within epsilon of the zero crossing. For more detailed analysis, again see
// the paper.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		// This has k2 = 2 hardwired for efficiency.
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs8Half = [...][2]float64{
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}
