package auth

// SecretHasher provides one-way hashing for passwords and product keys.
// Hash salts per call, so two hashes of the same secret differ; comparisons
// must go through Verify. A mismatch is a normal false result, not an error.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashed string) bool
}
