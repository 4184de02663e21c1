package fuel

// Base returns the fuel required to lift mass: floor(mass/3) - 2.
// Masses below 6 yield zero or a negative amount.
func Base(mass int) int {
	return floorDiv(mass, 3) - 2
}

// ForFuel adds to acc the fuel needed to carry last, then the fuel needed to
// carry that fuel, and so on until the increment is no longer positive.
func ForFuel(acc, last int) int {
	for {
		next := Base(last)
		if next <= 0 {
			return acc
		}
		acc += next
		last = next
	}
}

// Total returns the fuel for a module of the given mass, including the fuel
// needed to carry the fuel itself.
func Total(mass int) int {
	base := Base(mass)
	return ForFuel(base, base)
}

type moduleCalculator struct{}

// New returns a stateless Calculator.
func New() Calculator {
	return moduleCalculator{}
}

func (moduleCalculator) Base(mass int) int {
	return Base(mass)
}

func (moduleCalculator) Total(mass int) int {
	return Total(mass)
}

func (moduleCalculator) Breakdown(masses []int) (Report, error) {
	report := Report{Modules: make([]ModuleFuel, 0, len(masses))}
	for _, mass := range masses {
		if mass < 0 {
			return Report{}, ErrNegativeMass
		}
		entry := ModuleFuel{
			Mass:  mass,
			Base:  Base(mass),
			Total: Total(mass),
		}
		report.Modules = append(report.Modules, entry)
		report.Total += entry.Total
	}
	return report, nil
}

// floorDiv divides rounding toward negative infinity; Go's / truncates toward zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
