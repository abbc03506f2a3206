package integral

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/num/dual"
)

// boysSeriesCutoff is the argument below which the Boys function is
// evaluated by its Taylor series; the incomplete-gamma closed form
// loses precision as x -> 0.
const boysSeriesCutoff = 0.1

// boys evaluates the Boys function
//
//	F_nu(x) = int_0^1 t^(2 nu) exp(-x t^2) dt
//
// via the regularized lower incomplete gamma function, with a series
// expansion for small arguments.
func boys(nu int, x float64) float64 {
	if x < boysSeriesCutoff {
		// F_nu(x) = sum_k (-x)^k / (k! (2 nu + 2k + 1))
		sum := 0.0
		term := 1.0
		for k := 0; k < 20; k++ {
			sum += term / float64(2*nu+2*k+1)
			term *= -x / float64(k+1)
		}
		return sum
	}
	a := float64(nu) + 0.5
	return 0.5 * math.Gamma(a) * mathext.GammaIncReg(a, x) * math.Pow(x, -a)
}

// boysDual propagates a first derivative through the Boys function
// using dF_nu/dx = -F_{nu+1}(x).
func boysDual(nu int, x dual.Number) dual.Number {
	return dual.Number{
		Real: boys(nu, x.Real),
		Emag: -boys(nu+1, x.Real) * x.Emag,
	}
}
