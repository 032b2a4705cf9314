package split_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/split"
	"github.com/S4ntifdz/new-pwa/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type fakeCounter struct {
	count int
	err   error
	calls int
}

func (f *fakeCounter) GetOpenSessions(ctx context.Context) (*models.OpenSessionsResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.OpenSessionsResponse{OpenSessions: f.count}, nil
}

type fakeTable struct{}

func (fakeTable) TableID() string { return "table-7" }

func TestSingleDinerGoesStraightToIndividualPayment(t *testing.T) {
	unpaid := &models.UnpaidOrdersResponse{TotalAmountOwed: 38.50}
	r := split.NewResolver(&fakeCounter{count: 1}, fakeTable{})

	d := r.Resolve(context.Background(), unpaid)

	assert.Equal(t, split.RouteIndividual, d.Route)
	assert.Equal(t, models.PaymentTypeIndividual, d.PaymentType)
	assert.Same(t, unpaid, d.UnpaidOrders, "summary is carried forward, not re-fetched")
}

func TestMultipleDinersGetTheChoiceScreen(t *testing.T) {
	r := split.NewResolver(&fakeCounter{count: 3}, fakeTable{})

	d := r.Resolve(context.Background(), &models.UnpaidOrdersResponse{})

	assert.Equal(t, split.RouteSplitChoice, d.Route)
	assert.Equal(t, 3, d.OpenSessions)
	assert.Empty(t, d.PaymentType, "scope is the diner's choice, not pre-decided")
}

func TestZeroOpenSessionsCountsAsSingleDiner(t *testing.T) {
	r := split.NewResolver(&fakeCounter{count: 0}, fakeTable{})

	d := r.Resolve(context.Background(), nil)
	assert.Equal(t, split.RouteIndividual, d.Route)
}

func TestQueryFailureFailsOpenToTheChoiceScreen(t *testing.T) {
	unpaid := &models.UnpaidOrdersResponse{TotalAmountOwed: 12.00}
	counter := &fakeCounter{err: errors.New("gateway timeout")}
	r := split.NewResolver(counter, fakeTable{})

	d := r.Resolve(context.Background(), unpaid)

	// Under-detecting co-diners risks a wrong settlement default; an extra
	// choice screen is just a click.
	assert.Equal(t, split.RouteSplitChoice, d.Route)
	assert.Same(t, unpaid, d.UnpaidOrders)
	assert.Equal(t, 1, counter.calls, "one-shot decision, no re-polling")
}
