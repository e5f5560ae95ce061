package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/samber/lo"
)

const maxShortStringLen = 31

var u128Mask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

var maxU256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Calldata is an ordered list of felts passed to a constructor or entrypoint.
type Calldata []*felt.Felt

// Strings renders each felt as a 0x-prefixed hex string.
func (c Calldata) Strings() []string {
	return lo.Map(c, func(f *felt.Felt, _ int) string {
		return f.String()
	})
}

// ShortString encodes an ASCII string of at most 31 characters as a Cairo short string felt.
func ShortString(s string) (*felt.Felt, error) {
	if len(s) > maxShortStringLen {
		return nil, fmt.Errorf("%w: %q", ErrShortStringTooLong, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return nil, fmt.Errorf("%w: %q", ErrShortStringNotASCII, s)
		}
	}
	return new(felt.Felt).SetBytes([]byte(s)), nil
}

// U256 splits an unsigned 256-bit amount into its low and high 128-bit felts.
func U256(amount *big.Int) (low, high *felt.Felt, err error) {
	if amount == nil {
		return nil, nil, errors.New("nil u256 amount")
	}
	if amount.Sign() < 0 {
		return nil, nil, fmt.Errorf("negative u256 amount: %s", amount)
	}
	if amount.Cmp(maxU256) > 0 {
		return nil, nil, fmt.Errorf("amount overflows u256: %s", amount)
	}

	lowInt := new(big.Int).And(amount, u128Mask)
	highInt := new(big.Int).Rsh(amount, 128)

	return new(felt.Felt).SetBigInt(lowInt), new(felt.Felt).SetBigInt(highInt), nil
}

// TokenAmount scales a whole token amount by 10^decimals.
func TokenAmount(whole int64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(whole), scale)
}

// ParseFelt parses a hex or decimal string into a felt.
func ParseFelt(s string) (*felt.Felt, error) {
	f, err := new(felt.Felt).SetString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid felt %q: %w", s, err)
	}
	return f, nil
}
