package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/storage"
)

func openTestStore(t *testing.T) *storage.GormStore {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	return store
}

func TestSessionRecordRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, rec, "fresh store has no session")

	require.NoError(t, store.SaveSession(models.SessionRecord{
		Credential: "cred-1",
		Identifier: "+541155550000",
		TableUUID:  "table-7",
	}))

	rec, err = store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "cred-1", rec.Credential)
	assert.Equal(t, "+541155550000", rec.Identifier)
	assert.Equal(t, "table-7", rec.TableUUID)

	// Saving again overwrites the single record instead of growing a table.
	require.NoError(t, store.SaveSession(models.SessionRecord{Credential: "cred-2"}))
	rec, err = store.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "cred-2", rec.Credential)

	require.NoError(t, store.DeleteSession())
	rec, err = store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCartSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	snap, err := store.LoadCart()
	require.NoError(t, err)
	assert.Nil(t, snap, "fresh store has no cart")

	saved := models.CartSnapshot{
		ProductLines: []models.ProductLine{
			{Product: models.Product{UUID: "a", Name: "Empanada", Price: 2.50, Stock: 24}, Quantity: 6},
			{Product: models.Product{UUID: "b", Name: "Milanesa", Price: 11.00, Stock: 5}, Quantity: 1},
		},
		OfferLines: []models.OfferLine{
			{Offer: models.Offer{UUID: "o", Name: "Combo", Price: 15.00}, Quantity: 2},
		},
		Notes: "sin sal",
	}
	require.NoError(t, store.SaveCart(saved))

	snap, err = store.LoadCart()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, saved, *snap)

	require.NoError(t, store.DeleteCart())
	snap, err = store.LoadCart()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestCorruptCartSnapshotSurfacesAnError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SessionRecord{}, &models.CartRecord{}))

	require.NoError(t, db.Save(&models.CartRecord{
		ID:        1,
		Payload:   "{not json",
		UpdatedAt: time.Now(),
	}).Error)

	store := storage.NewGormStore(db)
	_, err = store.LoadCart()
	assert.Error(t, err)
}
