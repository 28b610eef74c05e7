// Package auth provides the credential-hashing and token-issuing primitives
// of the server: argon2id password hashes and EdDSA-signed JWTs.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id cost parameters (OWASP recommendation). They are embedded in
// every produced hash string, so they can be raised later without breaking
// verification of existing records.
const (
	argonIterations = 1
	argonMemory     = 64 * 1024 // KiB
	argonThreads    = 4
	argonSaltLen    = 16
	argonKeyLen     = 32
)

// PasswordHasher converts plaintext passwords to and from a storable,
// salted, parameterized hash.
type PasswordHasher interface {
	// Hash produces a PHC-encoded argon2id hash with a fresh random salt.
	// It fails only when the RNG is unavailable, never on input content.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the encoded hash.
	// Returns (false, nil) on mismatch; an error only when the encoded
	// hash cannot be parsed.
	Verify(password, encoded string) (bool, error)
}

// Argon2idHasher implements PasswordHasher using argon2id.
type Argon2idHasher struct{}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: reading salt: %v", common.ErrorHashing, err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonThreads, argonKeyLen)

	// PHC string format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonIterations, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

func (h *Argon2idHasher) Verify(password, encoded string) (bool, error) {
	p, err := parseHash(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), p.salt, p.iterations, p.memory, p.threads, uint32(len(p.digest)))

	return subtle.ConstantTimeCompare(computed, p.digest) == 1, nil
}

type hashParams struct {
	memory     uint32
	iterations uint32
	threads    uint8
	salt       []byte
	digest     []byte
}

// parseHash splits a PHC-encoded argon2id hash into its parameters. Any
// deviation from the expected shape yields common.ErrorMalformedHash so
// callers can tell data corruption apart from a failed match.
func parseHash(encoded string) (*hashParams, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: want 6 segments, got %d", common.ErrorMalformedHash, len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", common.ErrorMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: bad version segment", common.ErrorMalformedHash)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", common.ErrorMalformedHash, version)
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return nil, fmt.Errorf("%w: bad parameter segment", common.ErrorMalformedHash)
	}
	if threads == 0 || threads > math.MaxUint8 {
		return nil, fmt.Errorf("%w: parallelism %d out of range", common.ErrorMalformedHash, threads)
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt encoding", common.ErrorMalformedHash)
	}
	digest, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: bad digest encoding", common.ErrorMalformedHash)
	}
	if len(digest) == 0 {
		return nil, fmt.Errorf("%w: empty digest", common.ErrorMalformedHash)
	}

	return &hashParams{
		memory:     memory,
		iterations: iterations,
		threads:    uint8(threads),
		salt:       salt,
		digest:     digest,
	}, nil
}
