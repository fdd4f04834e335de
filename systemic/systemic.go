// Package systemic provides the Vasicek integrated-mean/variance and MGF,
// and the gamma systemic MGF, used to collapse EconomicCapitalAttributes'
// conditional log-CF matrix to a 1-D unconditional CF (spec §4.4).
// Treated as an external collaborator by spec §1 — the CORE only needs
// any callable (m complex values) → complex — but implemented here so
// the driver can run end to end.
package systemic

import (
	"math"
	"math/cmplx"
)

// VasicekIntegratedMean returns, for each systemic factor j, the
// expectation of the time-t integral of an Ornstein–Uhlenbeck process
// with mean-reversion speed alpha[j], initial value y0[j], and long-run
// mean fixed at 1: E[∫₀ᵗ y_s ds] = t + (y0−1)·(1−e^(−αt))/α.
func VasicekIntegratedMean(y0, alpha []float64, t float64) []float64 {
	out := make([]float64, len(alpha))
	for j, a := range alpha {
		if a == 0 {
			out[j] = y0[j] * t
			continue
		}
		out[j] = t + (y0[j]-1)*(1-expNeg(a*t))/a
	}
	return out
}

// VasicekIntegratedVariance returns, for each systemic factor j, the
// variance of the time-t integral of the same OU process, scaled by the
// factor's loading rho[j]:
// Var[∫₀ᵗ y_s ds] = ρ²·(σ²/α²)·(t − 2(1−e^(−αt))/α + (1−e^(−2αt))/(2α)).
func VasicekIntegratedVariance(alpha, sigma, rho []float64, t float64) []float64 {
	out := make([]float64, len(alpha))
	for j, a := range alpha {
		if a == 0 {
			out[j] = rho[j] * rho[j] * sigma[j] * sigma[j] * t * t * t / 3
			continue
		}
		base := t - 2*(1-expNeg(a*t))/a + (1-expNeg(2*a*t))/(2*a)
		out[j] = rho[j] * rho[j] * (sigma[j] * sigma[j]) / (a * a) * base
	}
	return out
}

func expNeg(x float64) float64 {
	return math.Exp(-x)
}

// VasicekMGF builds M(x) = exp(Σ mean_j·x_j + ½Σ variance_j·x_j²), the
// independent-factor specialization of the Vasicek composite MGF
// (spec §4.4). mean and variance must have the same length as any x
// this MGF is later evaluated on.
func VasicekMGF(mean, variance []float64) func([]complex128) complex128 {
	return func(x []complex128) complex128 {
		var acc complex128
		for j, xj := range x {
			acc += complex(mean[j], 0)*xj + 0.5*complex(variance[j], 0)*xj*xj
		}
		return cmplx.Exp(acc)
	}
}

// GammaMGF builds M(x) = exp(Σ −ln(1−v_j·x_j)/v_j), equivalent to a
// product of independent gamma MGFs with shape 1/v_j, scale v_j
// (E=1, Var=v_j) (spec §4.4).
func GammaMGF(variance []float64) func([]complex128) complex128 {
	return func(x []complex128) complex128 {
		var acc complex128
		for j, xj := range x {
			acc += -cmplx.Log(1-complex(variance[j], 0)*xj) / complex(variance[j], 0)
		}
		return cmplx.Exp(acc)
	}
}
