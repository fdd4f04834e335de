package creditcf

// Loan is an immutable record for a loan, or a class of Num identical
// loans. Balance, Pd, Lgd have no defaults; the loader does not reject a
// line that omits one and reads it as 0. R, LgdVariance, Num take the
// defaults documented on each field when absent from input.
type Loan struct {
	Balance     float64   // ≥ 0
	Pd          float64   // probability of default, ∈ [0,1]
	Lgd         float64   // mean loss given default, ∈ [0,1]
	LgdVariance float64   // variance proportion of stochastic LGD; 0 = deterministic LGD
	R           float64   // per-unit-balance liquidity coefficient; defaults to 0
	Weight      []float64 // exposure to each systemic factor, length m, need not sum to 1
	Num         float64   // multiplicity of identical loans; defaults to 1
}

// elContribution is −lgd·balance·w·pd·num, the loan's contribution to
// el_vec[j] for weight w = Weight[j] (spec §3, §4.3).
func (l Loan) elContribution(w float64) float64 {
	return -l.Lgd * l.Balance * w * l.Pd * l.Num
}

// varContribution is (1+lgdVariance)·(lgd·balance)²·w·pd·num, the
// loan's contribution to var_vec[j]. Not a true variance — see
// EconomicCapitalAttributes.VarVec.
func (l Loan) varContribution(w float64) float64 {
	return (1 + l.LgdVariance) * (l.Lgd * l.Balance) * (l.Lgd * l.Balance) * w * l.Pd * l.Num
}

// lambdaContribution is balance·r·num, the loan's contribution to the
// aggregated liquidity coefficient λ.
func (l Loan) lambdaContribution() float64 {
	return l.Balance * l.R * l.Num
}
