// Package split decides, at payment time, between the individual-settlement
// path and the table-wide split-choice screen.
package split

import (
	"context"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/utils"
)

type Route string

const (
	// RouteIndividual goes straight to payment with the individual scope.
	RouteIndividual Route = "individual"
	// RouteSplitChoice presents the pay-mine / pay-whole-table screen.
	RouteSplitChoice Route = "split_choice"
)

// Decision carries the chosen route plus the unpaid-orders summary that was
// already on screen, so the next screen does not re-fetch it.
type Decision struct {
	Route        Route
	PaymentType  string
	OpenSessions int
	UnpaidOrders *models.UnpaidOrdersResponse
}

// SessionCounter is the open-session collaborator query.
type SessionCounter interface {
	GetOpenSessions(ctx context.Context) (*models.OpenSessionsResponse, error)
}

// TableSource supplies the table identity for logging; the session manager
// implements it.
type TableSource interface {
	TableID() string
}

type Resolver struct {
	counter SessionCounter
	table   TableSource
}

func NewResolver(counter SessionCounter, table TableSource) *Resolver {
	return &Resolver{counter: counter, table: table}
}

// Resolve performs the one-shot split decision. More than one open diner
// session routes to the choice screen; one (or none) goes straight to
// individual payment. A failed query fails open to the choice screen.
func (r *Resolver) Resolve(ctx context.Context, unpaid *models.UnpaidOrdersResponse) Decision {
	resp, err := r.counter.GetOpenSessions(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("Error counting open sessions for table %s: %v", r.table.TableID(), err)
		return Decision{
			Route:        RouteSplitChoice,
			UnpaidOrders: unpaid,
		}
	}

	if resp.OpenSessions > 1 {
		return Decision{
			Route:        RouteSplitChoice,
			OpenSessions: resp.OpenSessions,
			UnpaidOrders: unpaid,
		}
	}

	return Decision{
		Route:        RouteIndividual,
		PaymentType:  models.PaymentTypeIndividual,
		OpenSessions: resp.OpenSessions,
		UnpaidOrders: unpaid,
	}
}
