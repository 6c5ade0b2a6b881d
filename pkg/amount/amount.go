// Package amount converts between display units of the chain's native coin and
// octas, its smallest on-chain unit.
package amount

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

const (
	// Decimals is the number of decimal places between a coin and an octa.
	Decimals = 8
	// OctasPerUnit is 10^Decimals.
	OctasPerUnit uint64 = 100_000_000
	// FundingBuffer is added on top of every escrow funding to cover contract fees.
	FundingBuffer uint64 = 10_000_000
)

// ToOctas converts a whole-number reward to octas.
func ToOctas(reward uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(reward), uint256.NewInt(OctasPerUnit))
}

// FundingAmount is the number of octas sent when funding a bounty escrow:
// the reward in octas plus FundingBuffer.
func FundingAmount(reward uint64) *uint256.Int {
	return new(uint256.Int).Add(ToOctas(reward), uint256.NewInt(FundingBuffer))
}

// String renders an octa amount in base 10, the form contract arguments use.
func String(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.ToBig().String()
}

// FormatOctas renders an octa amount with thousands separators.
func FormatOctas(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return humanize.BigComma(v.ToBig())
}

// FromOctas parses a raw balance as returned by the chain (a JSON number or a
// quoted string) and converts it to display units. An empty or null body counts
// as zero.
func FromOctas(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", types.ErrInvalidBalance, raw)
	}
	return d.Shift(-Decimals), nil
}

// ToUnits converts an octa amount to display units.
func ToUnits(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v.ToBig(), -Decimals)
}

// FromUnits converts a display amount to octas, dropping any precision below
// one octa. Negative and out-of-range values yield zero.
func FromUnits(d decimal.Decimal) *uint256.Int {
	if d.Sign() <= 0 {
		return new(uint256.Int)
	}
	v, overflow := uint256.FromBig(d.Shift(Decimals).Truncate(0).BigInt())
	if overflow {
		return new(uint256.Int)
	}
	return v
}
