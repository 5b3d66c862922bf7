package model

import "time"

// TokenType is the closed set of token classes stored in the `tokens`
// table. The column is a string in the schema; at the type level only
// these two values exist. In practice only refresh rows are written —
// access tokens are never persisted.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// RefreshToken models an entry in the `tokens` table. The signed token
// string is stored verbatim so that a presented refresh token can be
// compared byte-for-byte against the ledger.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token (users.id).
//  Type      – token class, always TokenTypeRefresh for stored rows.
//  Token     – the signed token string, stored as issued.
//  IsValid   – active flag, true on insert.
//  CreatedAt – timestamp of issuance.
//  ExpiresAt – issuance time plus the refresh TTL.
type RefreshToken struct {
	ID        uint64    // tokens.id
	UserID    string    // tokens.user_id
	Type      TokenType // tokens.token_type
	Token     string    // tokens.token
	IsValid   bool      // tokens.is_valid
	CreatedAt time.Time // tokens.created_at
	ExpiresAt time.Time // tokens.expires_at
}
