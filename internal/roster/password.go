package roster

import (
	"fmt"
	"strings"

	"github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
)

// PasswordScheme selects how new passwords are written to the roster.
type PasswordScheme string

const (
	SchemePlain       PasswordScheme = "plain"
	SchemeSHA512Crypt PasswordScheme = "sha512-crypt"
)

func ParseScheme(s string) (PasswordScheme, error) {
	switch PasswordScheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemePlain:
		return SchemePlain, nil
	case SchemeSHA512Crypt:
		return SchemeSHA512Crypt, nil
	default:
		return "", fmt.Errorf("unknown password scheme %q", s)
	}
}

func (s PasswordScheme) encode(password string) (string, error) {
	switch s {
	case SchemeSHA512Crypt:
		return sha512_crypt.New().Generate([]byte(password), nil)
	default:
		return password, nil
	}
}

// matchPassword compares a stored value to a candidate. Cleartext lines are
// compared exactly; $1$, $5$ and $6$ hashes are verified with crypt and never
// match their own literal text.
func matchPassword(stored, password string) bool {
	if !isCryptHash(stored) {
		return stored == password
	}
	for _, c := range []crypt.Crypter{sha512_crypt.New(), sha256_crypt.New(), md5_crypt.New()} {
		if err := c.Verify(stored, []byte(password)); err == nil {
			return true
		}
	}
	return false
}

func isCryptHash(s string) bool {
	return strings.HasPrefix(s, "$1$") || strings.HasPrefix(s, "$5$") || strings.HasPrefix(s, "$6$")
}
