package creditcf

import (
	"runtime"

	"github.com/finrisk/creditcf/parallel"
)

// EconomicCapitalAttributes is the stateful accumulator at the center of
// the engine (spec §3): the conditional log-CF matrix, the analytic
// moment vectors, and the aggregated liquidity coefficient. Grown
// monotonically by ProcessLoan, probed non-destructively by
// ExperimentLoan, and consumed by GetFullCF/GetPortfolioExpectation/
// GetPortfolioVariance and the riskcontrib package.
type EconomicCapitalAttributes struct {
	// Cf is the N·m conditional log-CF matrix in row-major layout:
	// Cf[i*NumW+j] is the accumulated contribution of systemic factor j
	// at Fourier grid point i.
	Cf []complex128
	// ElVec[j] = −Σ lgd·balance·weight[j]·pd·num (negative: losses are
	// negative numbers).
	ElVec []float64
	// VarVec[j] = Σ (1+lgdVariance)·(lgd·balance)²·weight[j]·pd·num.
	// Not a true variance — it is p·E[L²]·w (spec §9(c)). Never rename
	// without auditing every call site against §4.5's identity.
	VarVec []float64
	// Lambda = Σ balance·r·num, the aggregated liquidity coefficient.
	Lambda float64
	// NumW = m, fixed at construction.
	NumW int

	u []complex128
}

// NewEconomicCapitalAttributes constructs an empty accumulator over the
// given Fourier grid u (length N) with m = numW systemic factors. All
// fields start at zero (spec §8.1).
func NewEconomicCapitalAttributes(u []complex128, numW int) *EconomicCapitalAttributes {
	if numW <= 0 {
		panic("creditcf: numW must be > 0")
	}
	return &EconomicCapitalAttributes{
		Cf:     make([]complex128, len(u)*numW),
		ElVec:  make([]float64, numW),
		VarVec: make([]float64, numW),
		NumW:   numW,
		u:      u,
	}
}

// logCF is the composed per-loan log-CF contribution g(u, L) for a fixed
// loan: lgd.LogContribution's result with the loan's l, v and pd bound.
type logCF func(u complex128) complex128

// ProcessLoan accumulates loan L's contribution into the receiver
// in place (spec §4.3). g is the composed log-CF for this loan
// (liquidity transform ∘ LGD CF, see lgd.LogContribution). The N·m
// matrix update is partitioned across workers, each owning a disjoint
// row range — no locking needed since rows never overlap (spec §5).
func (a *EconomicCapitalAttributes) ProcessLoan(l Loan, g logCF) {
	if len(l.Weight) != a.NumW {
		panic("creditcf: loan weight length does not match attributes numW")
	}
	LogDebug("processing loan: balance=%v pd=%v lgd=%v num=%v", l.Balance, l.Pd, l.Lgd, l.Num)

	n := len(a.u)
	gVals := make([]complex128, n)
	parallel.Partition(n, runtime.GOMAXPROCS(0), func(start, end int) {
		for i := start; i < end; i++ {
			gVals[i] = g(a.u[i])
		}
	})

	parallel.Partition(n, runtime.GOMAXPROCS(0), func(start, end int) {
		for i := start; i < end; i++ {
			row := i * a.NumW
			for j := 0; j < a.NumW; j++ {
				a.Cf[row+j] += gVals[i] * complex(l.Weight[j]*l.Num, 0)
			}
		}
	})

	for j := 0; j < a.NumW; j++ {
		w := l.Weight[j]
		a.ElVec[j] += l.elContribution(w)
		a.VarVec[j] += l.varContribution(w)
	}
	a.Lambda += l.lambdaContribution()
}

// ExperimentLoan returns a new EconomicCapitalAttributes as if L had
// been processed, leaving the receiver unchanged (spec §4.3). Used by
// riskcontrib's probe.
func (a *EconomicCapitalAttributes) ExperimentLoan(l Loan, g logCF) *EconomicCapitalAttributes {
	clone := &EconomicCapitalAttributes{
		Cf:     append([]complex128(nil), a.Cf...),
		ElVec:  append([]float64(nil), a.ElVec...),
		VarVec: append([]float64(nil), a.VarVec...),
		Lambda: a.Lambda,
		NumW:   a.NumW,
		u:      a.u,
	}
	clone.ProcessLoan(l, g)
	return clone
}

// IncrementalMoments computes, without touching Cf, the moment
// contribution a loan WOULD make if processed: its el/var vectors and
// lambda delta. This is what risk contribution needs (spec §9); it
// avoids the O(N·m) cost of a full ExperimentLoan when only the
// incremental scalars are required.
func (a *EconomicCapitalAttributes) IncrementalMoments(l Loan) (elVec, varVec []float64, lambda float64) {
	if len(l.Weight) != a.NumW {
		panic("creditcf: loan weight length does not match attributes numW")
	}
	elVec = make([]float64, a.NumW)
	varVec = make([]float64, a.NumW)
	for j, w := range l.Weight {
		elVec[j] = l.elContribution(w)
		varVec[j] = l.varContribution(w)
	}
	return elVec, varVec, l.lambdaContribution()
}

// GetFullCF collapses the N×m conditional matrix to an N-vector of
// complex CF values by applying the systemic MGF row-wise:
// FinalCF[i] = M(Cf[i,0],...,Cf[i,m-1]) (spec §4.4). Each row is
// independent, so rows are partitioned across workers.
func (a *EconomicCapitalAttributes) GetFullCF(m func([]complex128) complex128) []complex128 {
	n := len(a.u)
	out := make([]complex128, n)
	parallel.Partition(n, runtime.GOMAXPROCS(0), func(start, end int) {
		row := make([]complex128, a.NumW)
		for i := start; i < end; i++ {
			copy(row, a.Cf[i*a.NumW:(i+1)*a.NumW])
			out[i] = m(row)
		}
	})
	return out
}

// GetPortfolioExpectation computes E[L | systemic] = Σ_j el_vec[j]·
// expectationSystemic[j] (spec §4.5).
func (a *EconomicCapitalAttributes) GetPortfolioExpectation(expectationSystemic []float64) float64 {
	return portfolioExpectation(a.ElVec, expectationSystemic)
}

// GetPortfolioVariance computes Var[L] = Σ_j var_vec[j]·expectationSystemic[j]
// + Σ_j el_vec[j]²·varianceSystemic[j] (spec §4.5).
func (a *EconomicCapitalAttributes) GetPortfolioVariance(expectationSystemic, varianceSystemic []float64) float64 {
	return portfolioVariance(a.ElVec, a.VarVec, expectationSystemic, varianceSystemic)
}

// ElVecValues, VarVecValues, and LambdaValue satisfy riskcontrib.Accumulator,
// letting the risk-contribution calculator read the portfolio's moment
// vectors without riskcontrib importing creditcf (spec §4.6 reads
// "Attributes' moment vectors and λ after accumulation").
func (a *EconomicCapitalAttributes) ElVecValues() []float64  { return a.ElVec }
func (a *EconomicCapitalAttributes) VarVecValues() []float64 { return a.VarVec }
func (a *EconomicCapitalAttributes) LambdaValue() float64    { return a.Lambda }

func portfolioExpectation(elVec, expectationSystemic []float64) float64 {
	var e float64
	for j, el := range elVec {
		e += el * expectationSystemic[j]
	}
	return e
}

func portfolioVariance(elVec, varVec, expectationSystemic, varianceSystemic []float64) float64 {
	var v float64
	for j := range elVec {
		v += varVec[j]*expectationSystemic[j] + elVec[j]*elVec[j]*varianceSystemic[j]
	}
	return v
}
