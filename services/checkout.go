package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/S4ntifdz/new-pwa/cart"
	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/utils"
)

// ErrEmptyCart means there is nothing to submit.
var ErrEmptyCart = errors.New("cart is empty")

// OrderSubmitter and PaymentSubmitter are the slices of the API client the
// checkout flow needs.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.Order, error)
}

type PaymentSubmitter interface {
	CreatePayment(ctx context.Context, payment models.PaymentRequest) (*models.PaymentResponse, error)
}

// Checkout hands the cart off to the order pipeline. The cart is read-only
// input here; it is cleared only after the backend confirms the submission,
// so a failed attempt leaves everything intact for retry.
type Checkout struct {
	orders   OrderSubmitter
	payments PaymentSubmitter
	ledger   *cart.Ledger

	// pendingKey makes retries of one logical submission idempotent: it is
	// minted on the first attempt and reused until the order goes through.
	pendingKey string
}

func NewCheckout(orders OrderSubmitter, payments PaymentSubmitter, ledger *cart.Ledger) *Checkout {
	return &Checkout{orders: orders, payments: payments, ledger: ledger}
}

// SubmitOrder builds the order request from the current cart snapshot and
// posts it. On success the cart is cleared and the idempotency key reset.
func (co *Checkout) SubmitOrder(ctx context.Context) (*models.Order, error) {
	snap := co.ledger.Snapshot()
	if len(snap.ProductLines) == 0 && len(snap.OfferLines) == 0 {
		return nil, ErrEmptyCart
	}

	if co.pendingKey == "" {
		co.pendingKey = uuid.NewString()
	}

	order, err := co.orders.CreateOrder(ctx, buildOrderRequest(snap), co.pendingKey)
	if err != nil {
		return nil, err
	}

	co.pendingKey = ""
	co.ledger.Clear()
	utils.InfoLogger.Printf("Order %s submitted, cart cleared", order.UUID)
	return order, nil
}

// Pay settles the given amount (the backend's unpaid total) with the chosen
// method and settlement scope. A failure leaves orders and cart untouched.
func (co *Checkout) Pay(ctx context.Context, method, paymentType string, amount float64) (*models.PaymentResponse, error) {
	return co.payments.CreatePayment(ctx, models.PaymentRequest{
		Method: method,
		Amount: utils.FormatAmount(amount),
		Type:   paymentType,
	})
}

func buildOrderRequest(snap models.CartSnapshot) models.OrderRequest {
	req := models.OrderRequest{Notes: snap.Notes}
	for _, line := range snap.ProductLines {
		req.Items = append(req.Items, models.OrderItemRequest{
			ProductUUID: line.Product.UUID,
			Quantity:    line.Quantity,
		})
	}
	for _, line := range snap.OfferLines {
		req.Offers = append(req.Offers, models.OrderOfferRequest{
			OfferUUID: line.Offer.UUID,
			Quantity:  line.Quantity,
		})
	}
	return req
}
