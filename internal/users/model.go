// Package users implements the user record business logic: listing,
// lookup, creation with password hashing, and the credential-checked
// rename and delete operations.
package users

// User is a stored user record. Password always holds a bcrypt hash,
// never plaintext.
type User struct {
	ID       string
	Username string
	Email    string
	Password string
}
