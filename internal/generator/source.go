// Package generator produces the random content served under /fun. All
// randomness comes from an injectable Source so callers can make it
// deterministic.
package generator

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"

	"github.com/Aidin1998/apihub/common/errors"
)

// Source yields uniform integers in [0, n). n is always positive.
type Source interface {
	Int64N(n int64) int64
}

type mathSource struct{}

func (mathSource) Int64N(n int64) int64 { return rand.Int64N(n) }

// cryptoSource draws from crypto/rand and is used for secrets.
type cryptoSource struct{}

func (cryptoSource) Int64N(n int64) int64 {
	v, err := crand.Int(crand.Reader, big.NewInt(n))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return v.Int64()
}

var (
	DefaultSource Source = mathSource{}
	SecureSource  Source = cryptoSource{}
)

func intN(src Source, n int) int {
	return int(src.Int64N(int64(n)))
}

// Pick returns a uniformly chosen element of items. An empty list means the
// backing data is missing and yields an Unavailable error naming it.
func Pick[T any](src Source, items []T, what string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.Unavailable.Explain("%s data is unavailable.", what)
	}
	return items[intN(src, len(items))], nil
}

func mustPick[T any](src Source, items []T) T {
	return items[intN(src, len(items))]
}
