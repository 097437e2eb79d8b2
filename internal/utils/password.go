package utils

import "golang.org/x/crypto/bcrypt"

// HashPasscode returns the bcrypt hash of an edit-mode passcode.  It backs
// the hash-passcode subcommand that produces EDIT_PASSCODE_HASH.
func HashPasscode(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPasscode compares a bcrypt hash with the typed passcode.  An empty
// hash means edit mode is not guarded and every passcode is accepted.
func VerifyPasscode(hash, plain string) bool {
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
