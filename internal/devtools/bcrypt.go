package devtools

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Aidin1998/apihub/common/errors"
)

// Accepted bcrypt cost range. Higher costs are refused to keep requests cheap.
const (
	MinBcryptCost     = bcrypt.MinCost
	MaxBcryptCost     = 14
	DefaultBcryptCost = bcrypt.DefaultCost
)

func BcryptHash(password string, cost int) (string, error) {
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		return "", errors.Invalid.Explain("'cost' must be between %d and %d", MinBcryptCost, MaxBcryptCost)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return "", errors.Invalid.Explain("'password' must be at most 72 bytes")
		}
		return "", errors.Internal.Explain("failed to hash password").Wrap(err)
	}
	return string(hash), nil
}

// BcryptVerify reports whether password matches hash. A malformed hash is a
// validation error, a mismatch is not.
func BcryptVerify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case err == bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, errors.Invalid.Explain("Invalid bcrypt hash: %s", err.Error())
	}
}
