package devtools

import (
	"github.com/google/uuid"

	"github.com/Aidin1998/apihub/common/errors"
)

// UUID batch bounds
const (
	MinUUIDCount = 1
	MaxUUIDCount = 100
)

// GenerateUUIDs returns count random (v4) or time-ordered (v7) UUIDs.
func GenerateUUIDs(version, count int) ([]string, error) {
	if count < MinUUIDCount || count > MaxUUIDCount {
		return nil, errors.Invalid.Explain("'count' must be between %d and %d", MinUUIDCount, MaxUUIDCount)
	}

	var gen func() (uuid.UUID, error)
	switch version {
	case 4:
		gen = uuid.NewRandom
	case 7:
		gen = uuid.NewV7
	default:
		return nil, errors.Invalid.Explain("Unsupported UUID version %d. Supported: 4, 7", version)
	}

	out := make([]string, count)
	for i := range out {
		id, err := gen()
		if err != nil {
			return nil, errors.Internal.Explain("failed to generate UUID").Wrap(err)
		}
		out[i] = id.String()
	}
	return out, nil
}
