package bookings

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"unicode"
)

// codePattern is the canonical booking code shape: two letters derived
// from the listing title, a dash, six random digits.
var codePattern = regexp.MustCompile(`^[A-Z]{2}-\d{6}$`)

// IsValidCode reports whether s is a well-formed booking code.
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// generateCode builds a candidate booking code from the listing title.
// Uniqueness is the caller's problem: the repository retries on
// collision.
func generateCode(listingTitle string) (string, error) {
	prefix := codePrefix(listingTitle)

	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return prefix + "-" + string(digits), nil
}

// codePrefix takes the first two letters of the title, uppercased,
// padding with 'X' when the title has fewer than two letters.
func codePrefix(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() == 2 {
				break
			}
		}
	}
	for b.Len() < 2 {
		b.WriteByte('X')
	}
	return b.String()
}
