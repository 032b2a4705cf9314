package cart_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S4ntifdz/new-pwa/cart"
	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/storage"
	"github.com/S4ntifdz/new-pwa/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func newLedger(t *testing.T) (*cart.Ledger, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	l, err := cart.NewLedger(store)
	require.NoError(t, err)
	return l, store
}

func product(uuid string, price float64, stock int) models.Product {
	return models.Product{UUID: uuid, Name: "Item " + uuid, Price: price, Stock: stock}
}

func offer(uuid string, price float64) models.Offer {
	return models.Offer{UUID: uuid, Name: "Offer " + uuid, Price: price}
}

func TestAddProductClampsToStockCeiling(t *testing.T) {
	l, _ := newLedger(t)

	// Requesting more than available stock caps silently at the ceiling.
	l.AddProduct(product("x", 5.0, 3), 5)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	// Further adds cannot push past the captured ceiling.
	l.AddProduct(product("x", 5.0, 3), 2)
	assert.Equal(t, 3, l.Lines()[0].Quantity)
}

func TestAddProductAccumulatesSingleLine(t *testing.T) {
	l, _ := newLedger(t)

	l.AddProduct(product("x", 2.5, 10), 2)
	l.AddProduct(product("x", 2.5, 10), 3)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, l.ItemCount())
}

func TestSetProductQuantity(t *testing.T) {
	l, _ := newLedger(t)
	l.AddProduct(product("x", 2.5, 4), 1)

	l.SetProductQuantity("x", 9)
	assert.Equal(t, 4, l.Lines()[0].Quantity, "absolute set clamps to ceiling")

	l.SetProductQuantity("x", 2)
	assert.Equal(t, 2, l.Lines()[0].Quantity)

	// Zero removes the line; doing it twice is the same as once.
	l.SetProductQuantity("x", 0)
	assert.Empty(t, l.Lines())
	l.SetProductQuantity("x", 0)
	assert.Empty(t, l.Lines())

	// Unknown ids are a no-op.
	l.SetProductQuantity("ghost", 3)
	assert.Empty(t, l.Lines())
}

func TestRemoveProduct(t *testing.T) {
	l, _ := newLedger(t)
	l.AddProduct(product("x", 2.5, 4), 2)

	l.RemoveProduct("x")
	assert.Empty(t, l.Lines())
	l.RemoveProduct("x")
	assert.Empty(t, l.Lines())
}

func TestOfferQuantityCeiling(t *testing.T) {
	l, _ := newLedger(t)

	l.AddOffer(offer("promo", 15.0), 1500)
	require.Len(t, l.OfferLines(), 1)
	assert.Equal(t, cart.OfferCeiling, l.OfferLines()[0].Quantity)

	l.SetOfferQuantity("promo", 0)
	assert.Empty(t, l.OfferLines())
}

func TestTotals(t *testing.T) {
	l, _ := newLedger(t)

	// Product A (10.00 x 2) plus offer B (15.00 x 1), 10% service.
	l.AddProduct(product("a", 10.00, 50), 2)
	l.AddOffer(offer("b", 15.00), 1)

	assert.InDelta(t, 35.00, l.Subtotal(), 1e-9)
	assert.InDelta(t, 3.50, l.ServiceCharge(), 1e-9)
	assert.InDelta(t, 38.50, l.Total(), 1e-9)
}

func TestTotalInvariantsHoldAfterEveryMutation(t *testing.T) {
	l, _ := newLedger(t)

	mutations := []func(){
		func() { l.AddProduct(product("a", 3.75, 20), 3) },
		func() { l.AddProduct(product("b", 1.10, 5), 9) },
		func() { l.SetProductQuantity("a", 1) },
		func() { l.AddOffer(offer("o", 12.30), 2) },
		func() { l.SetOfferQuantity("o", 1) },
		func() { l.RemoveProduct("b") },
		func() { l.SetNotes("no onions") },
	}

	for _, mutate := range mutations {
		mutate()

		assert.InDelta(t, l.Subtotal()+l.ServiceCharge(), l.Total(), 1e-9)
		assert.InDelta(t, l.Subtotal()*cart.ServiceRate, l.ServiceCharge(), 1e-9)

		count := 0
		for _, line := range l.Lines() {
			assert.GreaterOrEqual(t, line.Quantity, 1)
			assert.LessOrEqual(t, line.Quantity, line.Product.Stock)
			count += line.Quantity
		}
		for _, line := range l.OfferLines() {
			assert.GreaterOrEqual(t, line.Quantity, 1)
			count += line.Quantity
		}
		assert.Equal(t, count, l.ItemCount())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l, store := newLedger(t)

	l.AddProduct(product("a", 10.00, 5), 2)
	l.AddProduct(product("b", 4.25, 9), 1)
	l.AddOffer(offer("o", 15.00), 1)
	l.SetNotes("extra napkins")

	// A reload reconstructs an equal cart from the persisted snapshot.
	reloaded, err := cart.NewLedger(store)
	require.NoError(t, err)
	assert.Equal(t, l.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, "extra napkins", reloaded.Notes())
	assert.InDelta(t, l.Total(), reloaded.Total(), 1e-9)
}

func TestClearEmptiesCartAndSnapshot(t *testing.T) {
	l, store := newLedger(t)
	l.AddProduct(product("a", 10.00, 5), 2)
	l.SetNotes("rush")

	l.Clear()

	assert.Empty(t, l.Lines())
	assert.Empty(t, l.OfferLines())
	assert.Equal(t, "", l.Notes())
	assert.Equal(t, 0, l.ItemCount())

	snap, err := store.LoadCart()
	require.NoError(t, err)
	assert.Nil(t, snap)
}
