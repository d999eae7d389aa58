package password

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrInvalidCodeSpec indicates a non-positive length or empty alphabet.
var ErrInvalidCodeSpec = errors.New("code length and alphabet must be non-empty")

// DefaultAlphabet is the keyspace used for verification codes.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateCode returns a string of length characters drawn uniformly at
// random from alphabet, using crypto/rand.
func GenerateCode(length int, alphabet string) (string, error) {
	if length <= 0 || len(alphabet) == 0 {
		return "", ErrInvalidCodeSpec
	}

	chars := []rune(alphabet)
	max := big.NewInt(int64(len(chars)))

	code := make([]rune, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = chars[n.Int64()]
	}

	return string(code), nil
}
