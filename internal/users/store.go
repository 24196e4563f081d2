package users

import "context"

// Store is the persistence contract the service runs on. The database
// package provides the MySQL implementation; tests substitute fakes.
//
// Get returns ErrNotFound when no row matches. All other failures
// surface as *database.QueryError values and are passed through to the
// caller untouched.
type Store interface {
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user *User) error
	UpdateUsername(ctx context.Context, id, username string) error
	Delete(ctx context.Context, id string) error
}
