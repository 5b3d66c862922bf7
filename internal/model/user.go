package model

// User represents a row in the `users` table. The identifier is
// caller-supplied at sign-up (a username) and doubles as the primary
// key. Only the bcrypt hash of the password is ever stored.
//
// Fields:
//  ID           – users.id, unique, chosen by the user.
//  PasswordHash – users.password, bcrypt hash of the plaintext.
type User struct {
	ID           string // users.id
	PasswordHash string // users.password
}
