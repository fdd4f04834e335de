package systemic_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/finrisk/creditcf/systemic"
	"github.com/stretchr/testify/assert"
)

func TestVasicekIntegratedMean_ZeroSpeedIsLinear(t *testing.T) {
	mean := systemic.VasicekIntegratedMean([]float64{2.0}, []float64{0}, 3.0)
	assert.InDelta(t, 6.0, mean[0], 1e-12)
}

func TestVasicekIntegratedMean_AtY0EqualsOne(t *testing.T) {
	// when y0=1 (already at long-run mean), the integral is just t
	// regardless of speed.
	mean := systemic.VasicekIntegratedMean([]float64{1.0}, []float64{0.3}, 2.0)
	assert.InDelta(t, 2.0, mean[0], 1e-9)
}

func TestVasicekIntegratedVariance_ZeroSpeedIsCubic(t *testing.T) {
	v := systemic.VasicekIntegratedVariance([]float64{0}, []float64{2.0}, []float64{1.0}, 3.0)
	want := 1.0 * 1.0 * 2.0 * 2.0 * 27.0 / 3.0
	assert.InDelta(t, want, v[0], 1e-9)
}

func TestVasicekIntegratedVariance_NonNegative(t *testing.T) {
	v := systemic.VasicekIntegratedVariance([]float64{0.3, 0.5}, []float64{0.3, 0.2}, []float64{1.0, 0.8}, 1.0)
	for _, vj := range v {
		assert.GreaterOrEqual(t, vj, 0.0)
	}
}

func TestVasicekMGF_AtZeroIsOne(t *testing.T) {
	m := systemic.VasicekMGF([]float64{0.5, 0.2}, []float64{0.1, 0.3})
	got := m([]complex128{0, 0})
	assert.InDelta(t, 1.0, real(got), 1e-12)
	assert.InDelta(t, 0.0, imag(got), 1e-12)
}

func TestVasicekMGF_MatchesClosedForm(t *testing.T) {
	mean := []float64{0.4}
	variance := []float64{0.25}
	m := systemic.VasicekMGF(mean, variance)
	x := complex(0.6, -0.2)
	got := m([]complex128{x})
	want := cmplx.Exp(complex(mean[0], 0)*x + 0.5*complex(variance[0], 0)*x*x)
	assert.InDelta(t, real(want), real(got), 1e-9)
	assert.InDelta(t, imag(want), imag(got), 1e-9)
}

func TestGammaMGF_ClosedForm(t *testing.T) {
	// spec §8.7: for single-factor M, M([u]) = (1-v*u)^(-1/v) exactly.
	v := 0.5
	u := complex(0.5, 0.5)
	m := systemic.GammaMGF([]float64{v})
	got := m([]complex128{u})
	want := cmplx.Pow(1-complex(v, 0)*u, complex(-1/v, 0))
	assert.InDelta(t, real(want), real(got), 1e-9)
	assert.InDelta(t, imag(want), imag(got), 1e-9)
}

func TestGammaMGF_AtZeroIsOne(t *testing.T) {
	m := systemic.GammaMGF([]float64{0.3, 0.7})
	got := m([]complex128{0, 0})
	assert.InDelta(t, 1.0, real(got), 1e-9)
	assert.True(t, !math.IsNaN(imag(got)))
}
