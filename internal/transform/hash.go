package transform

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/Aidin1998/apihub/common/errors"
)

// Algorithm is a supported digest algorithm.
type Algorithm int

const (
	MD5 Algorithm = iota
	SHA1
	SHA256
	SHA512
	SHA3_256
	SHA3_512
	BLAKE2b256
)

var algorithmNames = [...]string{
	MD5:        "md5",
	SHA1:       "sha1",
	SHA256:     "sha256",
	SHA512:     "sha512",
	SHA3_256:   "sha3-256",
	SHA3_512:   "sha3-512",
	BLAKE2b256: "blake2b-256",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return "unknown"
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps an algorithm name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, errors.Invalid.Explain(
		"Unsupported hash algorithm %q. Supported: %s", name, strings.Join(algorithmNames[:], ", "))
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	case SHA3_256:
		return sha3.New256()
	case SHA3_512:
		return sha3.New512()
	case BLAKE2b256:
		h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes
		return h
	default:
		return sha256.New()
	}
}

// Hash returns the lowercase hex digest of the UTF-8 bytes of text.
func Hash(text string, alg Algorithm) string {
	h := alg.newHash()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
