package ports

// PasswordHasher provides one-way hashing and verification of passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on a simple mismatch; the error is
	// reserved for internal failures such as a malformed hash.
	Verify(password, hash string) (bool, error)
}
