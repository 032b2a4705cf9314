// Package storage persists the per-device session record and cart snapshot.
// The engine talks to the Store interface only, so tests can substitute the
// in-memory implementation and assert round-trip behavior without a real
// database file.
package storage

import "github.com/S4ntifdz/new-pwa/models"

type Store interface {
	// LoadSession returns the stored session, or (nil, nil) when none exists.
	LoadSession() (*models.SessionRecord, error)
	SaveSession(rec models.SessionRecord) error
	DeleteSession() error

	// LoadCart returns the stored cart snapshot, or (nil, nil) when none exists.
	LoadCart() (*models.CartSnapshot, error)
	SaveCart(snap models.CartSnapshot) error
	DeleteCart() error
}
