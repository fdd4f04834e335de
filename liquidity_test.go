package creditcf_test

import (
	"testing"

	"github.com/finrisk/creditcf"
	"github.com/stretchr/testify/assert"
)

// TestLiquidityIdentity covers spec §8.6: expectation_liquidity(λ,0,E)=E
// and variance_liquidity(λ,0,E,V)=V exactly (q=0 means no shock).
func TestLiquidityIdentity(t *testing.T) {
	e := creditcf.ExpectationLiquidity(1000, 0, -260.0)
	assert.Equal(t, -260.0, e)

	v := creditcf.VarianceLiquidity(1000, 0, -260.0, 5000.0)
	assert.Equal(t, 5000.0, v)
}

func TestExpectationLiquidity_ScalesByOnePlusQLambda(t *testing.T) {
	e := creditcf.ExpectationLiquidity(1000, 0.0001, -250.0)
	assert.InDelta(t, -250.0*(1+0.0001*1000), e, 1e-9)
}

func TestVarianceLiquidity_MatchesFormula(t *testing.T) {
	lambda, q, expectation, variance := 500.0, 0.001, -100.0, 2000.0
	v := creditcf.VarianceLiquidity(lambda, q, expectation, variance)
	want := variance*(1+q*lambda)*(1+q*lambda) - expectation*q*lambda*lambda
	assert.InDelta(t, want, v, 1e-9)
}

// TestLiquidityTransform_ZeroQIsIdentity covers the q=0 edge of spec §4.1:
// T(u) = u when q=0, regardless of lambda.
func TestLiquidityTransform_ZeroQIsIdentity(t *testing.T) {
	transform := creditcf.LiquidityTransform(1000, 0)
	u := complex(0.3, -0.7)
	got := transform(u)
	assert.InDelta(t, real(u), real(got), 1e-12)
	assert.InDelta(t, imag(u), imag(got), 1e-12)
}

// TestLiquidityTransform_ZeroLambdaIsIdentity: with lambda=0, exp(-u*0)-1=0
// regardless of q, so T(u) = u.
func TestLiquidityTransform_ZeroLambdaIsIdentity(t *testing.T) {
	transform := creditcf.LiquidityTransform(0, 0.5)
	u := complex(1.2, 0.4)
	got := transform(u)
	assert.InDelta(t, real(u), real(got), 1e-12)
	assert.InDelta(t, imag(u), imag(got), 1e-12)
}
