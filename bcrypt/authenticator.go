// Package bcrypt implements tagscrape.Authenticator against bcrypt password
// hashes.
package bcrypt

import (
	"context"

	"github.com/fwojciec/tagscrape"
	"golang.org/x/crypto/bcrypt"
)

// Ensure Authenticator implements tagscrape.Authenticator at compile time.
var _ tagscrape.Authenticator = (*Authenticator)(nil)

// Authenticator checks credentials against a fixed set of users.
type Authenticator struct {
	users map[string][]byte

	// dummy is compared against when the username is unknown. It has the
	// highest cost among the configured hashes, so lookups for missing users
	// cost as much as for existing ones.
	dummy []byte
}

// NewAuthenticator creates an Authenticator from a username to bcrypt hash map.
func NewAuthenticator(users map[string]string) *Authenticator {
	a := &Authenticator{users: make(map[string][]byte, len(users))}
	cost := 0
	for name, hash := range users {
		a.users[name] = []byte(hash)
		if c, err := bcrypt.Cost([]byte(hash)); err == nil && c > cost {
			cost = c
		}
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	a.dummy, _ = bcrypt.GenerateFromPassword([]byte("tagscrape-dummy"), cost)
	return a
}

// Authenticate returns EUNAUTHORIZED unless username exists and password
// matches its hash.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) error {
	hash, ok := a.users[username]
	if !ok {
		hash = a.dummy
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err != nil || !ok {
		return tagscrape.Errorf(tagscrape.EUNAUTHORIZED, "authentication required")
	}
	return nil
}

// HashPassword returns a bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
