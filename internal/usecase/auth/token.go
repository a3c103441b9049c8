package auth

import "time"

// Claims is the decoded identity carried by a bearer token. It is
// reconstructed per request and never persisted.
type Claims struct {
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Issue(name, userID string) (string, error)
	Decode(token string) (*Claims, error)
}
