package fuel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mass int
		want int
	}{
		{mass: 12, want: 2},
		{mass: 14, want: 2},
		{mass: 1969, want: 654},
		{mass: 100756, want: 33583},
		{mass: 6, want: 0},
		{mass: 0, want: -2},
		{mass: -1, want: -3},
		{mass: -3, want: -3},
		{mass: -4, want: -4},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Base(tc.mass), "Base(%d)", tc.mass)
	}
}

func TestBaseNonPositiveBelowSix(t *testing.T) {
	t.Parallel()

	for mass := -100; mass < 6; mass++ {
		assert.LessOrEqual(t, Base(mass), 0, "Base(%d)", mass)
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mass int
		want int
	}{
		{name: "NoExtraFuel", mass: 14, want: 2},
		{name: "SmallModule", mass: 12, want: 2},
		{name: "MediumModule", mass: 1969, want: 966},
		{name: "LargeModule", mass: 100756, want: 50346},
		{name: "BelowThreshold", mass: 5, want: -1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Total(tc.mass))
		})
	}
}

func TestForFuelSeededWithBase(t *testing.T) {
	t.Parallel()

	base := Base(14)
	assert.Equal(t, 2, ForFuel(base, base))

	base = Base(100756)
	assert.Equal(t, 50346, ForFuel(base, base))
}

func TestForFuelStopsOnNonPositiveIncrement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, ForFuel(10, 8))
	assert.Equal(t, 10, ForFuel(10, -50))
	assert.Equal(t, 11, ForFuel(10, 9))
}

func TestForFuelIncrementsStrictlyDecrease(t *testing.T) {
	t.Parallel()

	for _, mass := range []int{9, 1969, 100756, 1 << 30} {
		last := Base(mass)
		steps := 0
		for next := Base(last); next > 0; next = Base(last) {
			require.Less(t, next, last, "mass %d", mass)
			last = next
			steps++
			require.Less(t, steps, 64, "mass %d did not converge", mass)
		}
	}
}

func TestPure(t *testing.T) {
	t.Parallel()

	for _, mass := range []int{12, 1969, 100756} {
		assert.Equal(t, Base(mass), Base(mass))
		assert.Equal(t, Total(mass), Total(mass))
	}
}

func TestBreakdown(t *testing.T) {
	t.Parallel()

	report, err := New().Breakdown([]int{12, 14, 1969, 100756})
	require.NoError(t, err)

	assert.Equal(t, 51316, report.Total)
	require.Len(t, report.Modules, 4)
	assert.Equal(t, ModuleFuel{Mass: 1969, Base: 654, Total: 966}, report.Modules[2])
}

func TestBreakdownEmpty(t *testing.T) {
	t.Parallel()

	report, err := New().Breakdown(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Modules)
	assert.Zero(t, report.Total)
}

func TestBreakdownRejectsNegativeMass(t *testing.T) {
	t.Parallel()

	_, err := New().Breakdown([]int{12, -1})
	assert.ErrorIs(t, err, ErrNegativeMass)
}

func BenchmarkTotal(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Total(100756)
	}
}
