package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/asemenov-dev/bookmarkd/internal/common"
)

// Argon2id parameters. The output is self-describing, so these can change
// without invalidating hashes already stored.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword derives an argon2id hash from the plaintext with a fresh
// random salt and returns it in the standard encoded form
// $argon2id$v=19$m=...,t=...,p=...$salt$hash. Two calls with the same
// plaintext produce different strings.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return encoded, nil
}

// VerifyPassword recomputes the hash of the candidate with the parameters and
// salt embedded in encoded, and compares in constant time. A wrong password
// is (false, nil); only an undecodable stored hash is an error
// (common.ErrCorruptHash).
func VerifyPassword(encoded, candidate string) (bool, error) {
	salt, key, time, memory, threads, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidateKey := argon2.IDKey([]byte(candidate), salt, time, memory, threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidateKey) == 1, nil
}

func decodeHash(encoded string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	// argon2.IDKey panics on degenerate parameters instead of returning an error
	if time == 0 || threads == 0 || memory < 8*uint32(threads) {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, 0, 0, 0, common.ErrCorruptHash
	}

	return salt, key, time, memory, threads, nil
}
