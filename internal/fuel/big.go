package fuel

import "math/big"

var (
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// BaseBig is Base for masses of any size.
func BaseBig(mass *big.Int) *big.Int {
	// Div is Euclidean, which equals floor division for a positive divisor.
	q := new(big.Int).Div(mass, bigThree)
	return q.Sub(q, bigTwo)
}

// TotalBig is Total for masses of any size. mass is not modified.
func TotalBig(mass *big.Int) *big.Int {
	acc := BaseBig(mass)
	last := new(big.Int).Set(acc)
	for {
		next := BaseBig(last)
		if next.Sign() <= 0 {
			return acc
		}
		acc.Add(acc, next)
		last = next
	}
}
