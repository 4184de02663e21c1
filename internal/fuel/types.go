package fuel

// ModuleFuel is the fuel requirement of a single module.
// Base is the fuel for the module's own mass; Total adds the fuel needed to
// carry that fuel.
type ModuleFuel struct {
	Mass  int
	Base  int
	Total int
}

// Report summarises the fuel requirements of a manifest, in input order.
type Report struct {
	Modules []ModuleFuel
	Total   int
}

// Calculator describes the behaviour required from a fuel calculator.
type Calculator interface {
	Base(mass int) int
	Total(mass int) int
	Breakdown(masses []int) (Report, error)
}
