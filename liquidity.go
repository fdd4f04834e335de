package creditcf

import "math/cmplx"

// LiquidityTransform returns T(u) = u − q·(exp(−u·lambda) − 1), the
// Jarrow–Yildirim-style liquidity shock applied to a Fourier argument
// before it reaches an LGD CF (spec §4.1). Pure function, no state.
func LiquidityTransform(lambda, q float64) func(u complex128) complex128 {
	return func(u complex128) complex128 {
		return u - (cmplx.Exp(-u*complex(lambda, 0))-1)*complex(q, 0)
	}
}

// ExpectationLiquidity computes E[L_liquid] = E[L]·(1+q·λ) (spec §4.5).
func ExpectationLiquidity(lambda, q, expectation float64) float64 {
	return expectation * (1 + q*lambda)
}

// VarianceLiquidity computes Var[L_liquid] = Var[L]·(1+q·λ)² − E[L]·q·λ²
// (spec §4.5).
func VarianceLiquidity(lambda, q, expectation, variance float64) float64 {
	return variance*(1+q*lambda)*(1+q*lambda) - expectation*q*lambda*lambda
}
