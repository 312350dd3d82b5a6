package playerok

import (
	"context"
	"fmt"
)

// session is the client reference every entity carries. It is a reference
// only: closing the client leaves the entity readable but every
// network-backed method fails with ErrClientNotAttached.
type session struct {
	client Client
}

func (s session) require() (Client, error) {
	if s.client == nil || !s.client.Attached() {
		return nil, ErrClientNotAttached
	}

	return s.client, nil
}

// Client returns the session the entity was issued by, nil when detached.
func (s session) Client() Client {
	return s.client
}

// User is a marketplace user. Fields the marketplace did not return are nil
// (or the zero enum value), never a guessed default.
type User struct {
	session

	id string

	Username     *string
	AvatarURL    *string
	Role         UserRole
	IsOnline     *bool
	IsBlocked    *bool
	Rating       *float64
	ReviewsCount *int
}

// NewUser creates a user bound to client. With only an id set it is a stub.
func NewUser(client Client, id string) *User {
	return &User{session: session{client: client}, id: id}
}

// ID returns the immutable user id.
func (u *User) ID() string {
	return u.id
}

// IsStub reports whether nothing but the id is known.
func (u *User) IsStub() bool {
	return u.Username == nil && u.AvatarURL == nil && u.Role == UserRoleUnknown &&
		u.IsOnline == nil && u.IsBlocked == nil && u.Rating == nil && u.ReviewsCount == nil
}

// Refresh fetches the user again, bypassing the identity map.
func (u *User) Refresh(ctx context.Context) (*User, error) {
	client, err := u.require()
	if err != nil {
		return nil, err
	}

	user, err := client.Account().GetUser(ctx, UserByID(u.id), WithForceRefresh())
	if err != nil {
		return nil, fmt.Errorf("refreshing user %s: %w", u.id, err)
	}

	return user, nil
}

// String implements fmt.Stringer.
func (u *User) String() string {
	if u.Username != nil {
		return fmt.Sprintf("User(%s, %s)", u.id, *u.Username)
	}

	return fmt.Sprintf("User(%s)", u.id)
}
