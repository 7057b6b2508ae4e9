package mapper

import (
	"fmt"
	"math/big"
)

// tokenScale converts on-chain fixed-point amounts (scaled by 10^18) down to
// cents, so display formatting needs only integer arithmetic.
var tokenScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)

var hundred = big.NewInt(100)

// FormatTokenAmount renders a 10^18-scaled integer string as a dollar amount
// with two decimal places, e.g. "2500000000000000000" -> "$2.50". Unparsable
// input degrades to "$0.00".
func FormatTokenAmount(raw string) string {
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "$0.00"
	}

	cents := new(big.Int).Quo(value, tokenScale)
	dollars, rem := new(big.Int).QuoRem(cents, hundred, new(big.Int))

	return fmt.Sprintf("$%s.%02d", dollars.String(), rem.Int64())
}
