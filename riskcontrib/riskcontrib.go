// Package riskcontrib implements the Euler risk-contribution formula of
// spec §4.6: each loan's share of E[L_liquid] + c·sd(L_liquid),
// decomposed into an incremental term (the loan's own marginal moment
// contribution) and a scaling term tied to the portfolio's liquidity
// coefficient lambda. Grounded on the original source's
// loan_ec.rs::risk_contribution.
package riskcontrib

import "math"

// Accumulator is the subset of EconomicCapitalAttributes that
// Contribution needs: the portfolio's moment vectors before the probe
// loan, and its accumulated lambda. Declared locally so this package
// does not import creditcf; *creditcf.EconomicCapitalAttributes
// satisfies it.
type Accumulator interface {
	ElVecValues() []float64
	VarVecValues() []float64
	LambdaValue() float64
}

// Contribution computes rc(loan) per spec §4.6.
//
//   - before is the portfolio's accumulator prior to including the loan.
//   - incElVec, incVarVec, incLambda are the loan's own incremental
//     moment contributions (EconomicCapitalAttributes.IncrementalMoments).
//   - expectationSystemic, varianceSystemic are the exogenous per-factor
//     systemic moments (spec §3).
//   - lambdaExternal is the "other" lambda (λ) to be scaled against, per
//     spec §4.6's sd_liq using lambda_total = λ + λ₀.
//   - q is the liquidity shock probability coefficient, c the risk
//     measure's standard-deviation multiplier.
func Contribution(
	before Accumulator,
	incElVec, incVarVec []float64,
	incLambda float64,
	expectationSystemic, varianceSystemic []float64,
	lambdaExternal, q, c float64,
) float64 {
	lambda0 := before.LambdaValue()
	lambdaPrime := incLambda

	sInc := 1 + q*lambda0
	sTot := q * lambdaPrime
	vInc := sInc * sInc
	vTot := sTot * (2*sInc + q*lambdaExternal)
	vElTot := sTot * (2*lambda0 + lambdaExternal)

	eInc := weightedSum(incElVec, expectationSystemic)
	vIncTerm := incrementalVariance(incElVec, incVarVec, before.ElVecValues(), expectationSystemic, varianceSystemic)

	elVecTot := addVectors(before.ElVecValues(), incElVec)
	varVecTot := addVectors(before.VarVecValues(), incVarVec)
	eTot := weightedSum(elVecTot, expectationSystemic)
	varTot := portfolioVariance(elVecTot, varVecTot, expectationSystemic, varianceSystemic)

	lambdaTotal := lambdaExternal + lambda0
	varLiquid := varTot*(1+q*lambdaTotal)*(1+q*lambdaTotal) - eTot*q*lambdaTotal*lambdaTotal
	sdLiq := math.Sqrt(varLiquid)

	return sInc*eInc + sTot*eTot +
		(c/sdLiq)*(vInc*vIncTerm+vTot*varTot-eInc*q*lambda0*lambda0-eTot*vElTot)
}

func weightedSum(vec, weights []float64) float64 {
	var s float64
	for j, v := range vec {
		s += v * weights[j]
	}
	return s
}

// incrementalVariance is V_inc(loan): the loan's marginal contribution
// to portfolio variance, including the cross term against the
// pre-existing el_vec (spec §4.6).
func incrementalVariance(incElVec, incVarVec, existingElVec, expectationSystemic, varianceSystemic []float64) float64 {
	var v float64
	for j := range incElVec {
		v += incVarVec[j]*expectationSystemic[j] + incElVec[j]*existingElVec[j]*varianceSystemic[j]
	}
	return v
}

func portfolioVariance(elVec, varVec, expectationSystemic, varianceSystemic []float64) float64 {
	var v float64
	for j := range elVec {
		v += varVec[j]*expectationSystemic[j] + elVec[j]*elVec[j]*varianceSystemic[j]
	}
	return v
}

func addVectors(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for j := range a {
		out[j] = a[j] + b[j]
	}
	return out
}
