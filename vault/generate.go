package vault

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// Charset selects the character classes a generated password is drawn
// from. Classes combine with the | operator.
type Charset uint8

const (
	Lower Charset = 1 << iota
	Upper
	Digits
	Symbols
)

// AllClasses combines every supported character class.
const AllClasses = Lower | Upper | Digits | Symbols

// DefaultLength is the generated password length when the caller does not
// choose one.
const DefaultLength = 16

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}|;:,.<>?/"
)

func (c Charset) chars() string {
	var alphabet string
	if c&Lower != 0 {
		alphabet += lowerChars
	}
	if c&Upper != 0 {
		alphabet += upperChars
	}
	if c&Digits != 0 {
		alphabet += digitChars
	}
	if c&Symbols != 0 {
		alphabet += symbolChars
	}
	return alphabet
}

// Generate returns a random password of the given length, drawn uniformly
// from the union of the requested character classes. It does not touch
// any store; callers decide whether to keep the result.
func Generate(length int, classes Charset) (string, error) {
	if length < 1 {
		return "", errors.Errorf("invalid password length %d", length)
	}
	alphabet := classes.chars()
	if alphabet == "" {
		return "", errors.New("no character class selected")
	}

	max := big.NewInt(int64(len(alphabet)))
	password := make([]byte, length)
	for i := range password {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "cannot generate password")
		}
		password[i] = alphabet[idx.Int64()]
	}
	return string(password), nil
}
