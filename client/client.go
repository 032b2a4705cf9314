// Package client is the authenticated request layer for the restaurant
// backend. It attaches the session credential and diner identifier to every
// call and maps authorization refusals to ErrUnauthorized so the session
// layer can force re-identification.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/S4ntifdz/new-pwa/models"
)

// ErrUnauthorized is returned when any endpoint answers 401 or 403. The
// stored credential is no longer valid anywhere, not just for that call.
var ErrUnauthorized = errors.New("unauthorized")

const apiPrefix = "/api/v1"

// CredentialSource supplies the bearer credential and identity header per
// request. The session manager implements it.
type CredentialSource interface {
	CurrentCredential() string
	Identifier() string
}

type Client struct {
	baseURL string
	http    *http.Client

	source CredentialSource
	// onUnauthorized fires once per refused call, before ErrUnauthorized is
	// returned. Wired to session.Manager.EndSession.
	onUnauthorized func()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetCredentialSource and SetUnauthorizedHook are called once during wiring,
// before any request is made.
func (c *Client) SetCredentialSource(src CredentialSource) { c.source = src }

func (c *Client) SetUnauthorizedHook(fn func()) { c.onUnauthorized = fn }

type requestOpts struct {
	// bearerOverride replaces the stored credential, used when validating
	// with the raw table token (there is no credential yet).
	bearerOverride string
	identifier     string
	idempotencyKey string
	// skipHook suppresses the unauthorized hook, for calls where a 401 is an
	// expected answer rather than a lost session.
	skipHook bool
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts requestOpts) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	switch {
	case opts.bearerOverride != "":
		req.Header.Set("Authorization", "Bearer "+opts.bearerOverride)
	case c.source != nil && c.source.CurrentCredential() != "":
		req.Header.Set("Authorization", "Bearer "+c.source.CurrentCredential())
	}

	switch {
	case opts.identifier != "":
		req.Header.Set("X-Identifier", opts.identifier)
	case c.source != nil && c.source.Identifier() != "":
		req.Header.Set("X-Identifier", c.source.Identifier())
	}

	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if !opts.skipHook && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d from %s: %s", resp.StatusCode, path, text)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid JSON from %s: %w", path, err)
	}
	return nil
}

// ValidateSession asks the identity-validation endpoint to accept the diner
// identifier together with the raw table token. A 401/403 here means the
// token was declined, which is an explicit rejection, not a lost session.
func (c *Client) ValidateSession(ctx context.Context, identifier, tableToken string) (*models.ValidateSessionResponse, error) {
	var out models.ValidateSessionResponse
	err := c.do(ctx, http.MethodGet, "/validate-jwt", nil, &out, requestOpts{
		bearerOverride: tableToken,
		identifier:     identifier,
		skipHook:       true,
	})
	if errors.Is(err, ErrUnauthorized) {
		return &models.ValidateSessionResponse{Valid: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOffers(ctx context.Context) ([]models.Offer, error) {
	var out []models.Offer
	if err := c.do(ctx, http.MethodGet, "/offers/", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMenuCategories(ctx context.Context) ([]models.MenuCategory, error) {
	var out []models.MenuCategory
	if err := c.do(ctx, http.MethodGet, "/menu-categories/", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOpenSessions counts the diner sessions currently active at the caller's
// table.
func (c *Client) GetOpenSessions(ctx context.Context) (*models.OpenSessionsResponse, error) {
	var out models.OpenSessionsResponse
	if err := c.do(ctx, http.MethodGet, "/tables/open-sessions", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetClientUnpaidOrders returns only the calling diner's unpaid orders.
func (c *Client) GetClientUnpaidOrders(ctx context.Context) (*models.UnpaidOrdersResponse, error) {
	var out models.UnpaidOrdersResponse
	if err := c.do(ctx, http.MethodGet, "/orders/client-unpaid-orders", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTableUnpaidOrders returns every unpaid order at the table, used when the
// diner settles the whole table.
func (c *Client) GetTableUnpaidOrders(ctx context.Context, tableID string) (*models.UnpaidOrdersResponse, error) {
	var out models.UnpaidOrdersResponse
	path := fmt.Sprintf("/tables/%s/unpaid-orders/", tableID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits an order. Retries of the same submission must reuse
// the same idempotency key so the kitchen never receives it twice.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.Order, error) {
	var out models.Order
	err := c.do(ctx, http.MethodPost, "/orders/", order, &out, requestOpts{
		idempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePayment(ctx context.Context, payment models.PaymentRequest) (*models.PaymentResponse, error) {
	var out models.PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/", payment, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CallWaiter(ctx context.Context, tableID string) (*models.WaiterCallResponse, error) {
	var out models.WaiterCallResponse
	path := fmt.Sprintf("/tables/call/%s/", tableID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelWaiterCall(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/call-cancel/", nil, nil, requestOpts{})
}

// GetVenueConfig fetches the venue's display settings.
func (c *Client) GetVenueConfig(ctx context.Context) (*models.VenueConfig, error) {
	var out models.VenueConfig
	if err := c.do(ctx, http.MethodGet, "/config/", nil, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}
