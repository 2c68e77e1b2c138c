package user

import "context"

// Store is the credential store contract. Lookups return (nil, nil) when no
// record exists; a non-nil error always means the store itself failed.
// At-most-one record per normalized email is the store's responsibility.
type Store interface {
	// FindByEmail returns the user with the given normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create persists a new user record.
	Create(ctx context.Context, u *User) error

	// Update applies a patch to the user with the given ID and returns the
	// updated record, or (nil, nil) if no such user exists.
	Update(ctx context.Context, id string, patch Patch) (*User, error)

	// Delete removes the user with the given ID. Deleting a missing user
	// is not an error.
	Delete(ctx context.Context, id string) error
}
