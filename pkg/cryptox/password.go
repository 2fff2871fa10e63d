package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hash algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	ErrPasswordMismatch  = errors.New("cryptox: password does not match")
	ErrUnknownHashFormat = errors.New("cryptox: unknown hash format")
	ErrUnknownAlgorithm  = errors.New("cryptox: unknown hash algorithm")
)

// Hasher produces and checks salted password hashes.
//
// New hashes use Algorithm. VerifyPassword recognises every supported format
// from the stored hash itself, so accounts hashed with bcrypt keep working
// after the service switches to argon2id.
type Hasher struct {
	Algorithm  string // bcrypt (default) or argon2id
	BcryptCost int    // 0 means bcrypt.DefaultCost
}

// MaxPasswordBytes is the longest password the configured algorithm hashes
// in full, or 0 when there is no limit.
func (h Hasher) MaxPasswordBytes() int {
	if h.algorithm() == AlgorithmBcrypt {
		return 72
	}
	return 0
}

// HashPassword returns a freshly salted hash of password.
func (h Hasher) HashPassword(password string) (string, error) {
	switch h.algorithm() {
	case AlgorithmBcrypt:
		cost := h.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return "", fmt.Errorf("cryptox: bcrypt: %w", err)
		}
		return string(hash), nil
	case AlgorithmArgon2id:
		return hashArgon2id(password)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, h.Algorithm)
	}
}

// VerifyPassword compares a plaintext password against a stored hash. It
// returns nil on a match; any malformed hash is reported as an error, never a
// panic.
func (h Hasher) VerifyPassword(password, encodedHash string) error {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(password, encodedHash)
	case strings.HasPrefix(encodedHash, "$2a$"),
		strings.HasPrefix(encodedHash, "$2b$"),
		strings.HasPrefix(encodedHash, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownHashFormat, err)
		}
		return nil
	default:
		return ErrUnknownHashFormat
	}
}

func (h Hasher) algorithm() string {
	if h.Algorithm == "" {
		return AlgorithmBcrypt
	}
	return h.Algorithm
}

// hashArgon2id generates a PHC-format Argon2id hash string including salt and parameters.
func hashArgon2id(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

func verifyArgon2id(password, encodedHash string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return fmt.Errorf("%w: expected 6 parts", ErrUnknownHashFormat)
	}
	if parts[2] != "v=19" {
		return fmt.Errorf("%w: wrong version", ErrUnknownHashFormat)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: parameters: %v", ErrUnknownHashFormat, err)
	}
	if iters == 0 || par == 0 {
		return fmt.Errorf("%w: zero parameters", ErrUnknownHashFormat)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrUnknownHashFormat, err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expectedHash) == 0 {
		return fmt.Errorf("%w: hash", ErrUnknownHashFormat)
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - decoded from a short base64 field
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
