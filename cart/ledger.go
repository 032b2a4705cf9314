// Package cart owns the order-in-progress: product lines, bundled-offer
// lines, kitchen notes and the derived totals every screen renders from.
package cart

import (
	"sync"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/storage"
	"github.com/S4ntifdz/new-pwa/utils"
)

// ServiceRate is the fixed service surcharge applied to the subtotal.
const ServiceRate = 0.10

// OfferCeiling bounds offer quantities. Offers carry no stock, this is only
// a sanity cap.
const OfferCeiling = 999

// Ledger is the single source of truth for the cart. All mutations are
// synchronous and persist a best-effort snapshot; totals are always
// recomputed from current lines, never stored.
type Ledger struct {
	mu     sync.Mutex
	items  []models.ProductLine
	offers []models.OfferLine
	notes  string
	store  storage.Store
}

// NewLedger restores the persisted snapshot, if any. A corrupt snapshot is
// reported to the caller; a missing one starts an empty cart.
func NewLedger(store storage.Store) (*Ledger, error) {
	l := &Ledger{store: store}

	snap, err := store.LoadCart()
	if err != nil {
		return nil, err
	}
	if snap != nil {
		l.items = snap.ProductLines
		l.offers = snap.OfferLines
		l.notes = snap.Notes
	}
	return l, nil
}

// AddProduct increases the line for product by quantity, creating it if
// needed. The result is clamped to the stock ceiling captured here at
// add-time; exceeding it is not an error.
func (l *Ledger) AddProduct(product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Product.UUID == product.UUID {
			l.items[i].Quantity = clamp(l.items[i].Quantity+quantity, l.items[i].Product.Stock)
			l.persistLocked()
			return
		}
	}

	qty := clamp(quantity, product.Stock)
	if qty > 0 {
		l.items = append(l.items, models.ProductLine{Product: product, Quantity: qty})
	}
	l.persistLocked()
}

// SetProductQuantity sets the line to an absolute quantity. Zero or negative
// removes the line; above the captured ceiling clamps. Unknown ids are a
// no-op, there is no catalog snapshot to price a new line from.
func (l *Ledger) SetProductQuantity(productID string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Product.UUID == productID {
			if quantity <= 0 {
				l.items = append(l.items[:i], l.items[i+1:]...)
			} else {
				l.items[i].Quantity = clamp(quantity, l.items[i].Product.Stock)
			}
			l.persistLocked()
			return
		}
	}
}

func (l *Ledger) RemoveProduct(productID string) {
	l.SetProductQuantity(productID, 0)
}

// AddOffer mirrors AddProduct for bundled offers.
func (l *Ledger) AddOffer(offer models.Offer, quantity int) {
	if quantity <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.offers {
		if l.offers[i].Offer.UUID == offer.UUID {
			l.offers[i].Quantity = clamp(l.offers[i].Quantity+quantity, OfferCeiling)
			l.persistLocked()
			return
		}
	}

	l.offers = append(l.offers, models.OfferLine{Offer: offer, Quantity: clamp(quantity, OfferCeiling)})
	l.persistLocked()
}

func (l *Ledger) SetOfferQuantity(offerID string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.offers {
		if l.offers[i].Offer.UUID == offerID {
			if quantity <= 0 {
				l.offers = append(l.offers[:i], l.offers[i+1:]...)
			} else {
				l.offers[i].Quantity = clamp(quantity, OfferCeiling)
			}
			l.persistLocked()
			return
		}
	}
}

func (l *Ledger) RemoveOffer(offerID string) {
	l.SetOfferQuantity(offerID, 0)
}

// SetNotes replaces the free-text kitchen note verbatim.
func (l *Ledger) SetNotes(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = text
	l.persistLocked()
}

// Clear empties all lines and notes. Called only after an order built from
// this cart was confirmed as submitted.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.offers = nil
	l.notes = ""

	if err := l.store.DeleteCart(); err != nil {
		utils.ErrorLogger.Printf("Error clearing cart snapshot: %v", err)
	}
}

// Subtotal is the sum of price × quantity over product and offer lines,
// kept at full floating precision. Round only at display time.
func (l *Ledger) Subtotal() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subtotalLocked()
}

func (l *Ledger) ServiceCharge() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subtotalLocked() * ServiceRate
}

func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	sub := l.subtotalLocked()
	return sub + sub*ServiceRate
}

// ItemCount is the sum of all surviving line quantities, products and
// offers alike.
func (l *Ledger) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, it := range l.items {
		count += it.Quantity
	}
	for _, of := range l.offers {
		count += of.Quantity
	}
	return count
}

func (l *Ledger) Notes() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notes
}

// Lines returns a copy of the product lines for rendering.
func (l *Ledger) Lines() []models.ProductLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.ProductLine(nil), l.items...)
}

// OfferLines returns a copy of the offer lines for rendering.
func (l *Ledger) OfferLines() []models.OfferLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.OfferLine(nil), l.offers...)
}

// Snapshot returns the full serializable cart state, the same shape that is
// persisted and that checkout reads.
func (l *Ledger) Snapshot() models.CartSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) subtotalLocked() float64 {
	var sum float64
	for _, it := range l.items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	for _, of := range l.offers {
		sum += of.Offer.Price * float64(of.Quantity)
	}
	return sum
}

func (l *Ledger) snapshotLocked() models.CartSnapshot {
	return models.CartSnapshot{
		ProductLines: append([]models.ProductLine(nil), l.items...),
		OfferLines:   append([]models.OfferLine(nil), l.offers...),
		Notes:        l.notes,
	}
}

// persistLocked writes the snapshot best-effort. A storage failure must not
// fail the in-memory mutation, the cart stays usable for this page lifetime.
func (l *Ledger) persistLocked() {
	if err := l.store.SaveCart(l.snapshotLocked()); err != nil {
		utils.ErrorLogger.Printf("Error persisting cart snapshot: %v", err)
	}
}

func clamp(quantity, ceiling int) int {
	if quantity > ceiling {
		return ceiling
	}
	return quantity
}
