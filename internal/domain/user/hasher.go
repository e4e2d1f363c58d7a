package user

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches stored.
	Verify(password, stored string) error
	// NeedsRehash reports whether stored is not in the current hash format.
	NeedsRehash(stored string) bool
}
