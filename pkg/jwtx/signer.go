package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer from raw secret bytes. The secret
// is injected here once, at construction; nothing in the signing path reads
// the environment.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
