package services

import (
	"context"
	"sync"
	"time"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/session"
	"github.com/S4ntifdz/new-pwa/utils"
)

// UnpaidOrdersFetcher is the slice of the API client the monitor needs.
type UnpaidOrdersFetcher interface {
	GetClientUnpaidOrders(ctx context.Context) (*models.UnpaidOrdersResponse, error)
}

// UnpaidOrdersMonitor refreshes the diner's unpaid orders on a fixed
// interval while a session is authenticated, so kitchen-side status changes
// reach the screen. A failed poll is dropped and retried on the next tick;
// it never stops the loop and never surfaces to the diner.
type UnpaidOrdersMonitor struct {
	fetcher  UnpaidOrdersFetcher
	Interval time.Duration

	// OnUpdate receives each successful snapshot.
	OnUpdate func(*models.UnpaidOrdersResponse)

	mu       sync.Mutex
	stopChan chan struct{}
}

func NewUnpaidOrdersMonitor(fetcher UnpaidOrdersFetcher, interval time.Duration) *UnpaidOrdersMonitor {
	return &UnpaidOrdersMonitor{
		fetcher:  fetcher,
		Interval: interval,
	}
}

// BindTo ties the monitor's lifetime to the authenticated-session lifetime:
// it starts on the transition into authenticated and stops exactly when the
// session leaves it, so no orphaned poll keeps running against a logged-out
// session.
func (um *UnpaidOrdersMonitor) BindTo(m *session.Manager) {
	m.SetStatusListener(func(s session.Status) {
		if s == session.StatusAuthenticated {
			um.Start()
		} else {
			um.Stop()
		}
	})
	if m.Status() == session.StatusAuthenticated {
		um.Start()
	}
}

func (um *UnpaidOrdersMonitor) Start() {
	um.mu.Lock()
	defer um.mu.Unlock()
	if um.stopChan != nil {
		return
	}
	stop := make(chan struct{})
	um.stopChan = stop

	go func() {
		ticker := time.NewTicker(um.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				um.poll()
			case <-stop:
				return
			}
		}
	}()
}

func (um *UnpaidOrdersMonitor) Stop() {
	um.mu.Lock()
	defer um.mu.Unlock()
	if um.stopChan == nil {
		return
	}
	close(um.stopChan)
	um.stopChan = nil
}

func (um *UnpaidOrdersMonitor) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), um.Interval)
	defer cancel()

	resp, err := um.fetcher.GetClientUnpaidOrders(ctx)
	if err != nil {
		// Stale or failed polls are dropped; the next tick retries.
		utils.ErrorLogger.Printf("Unpaid orders poll failed: %v", err)
		return
	}
	if um.OnUpdate != nil {
		um.OnUpdate(resp)
	}
}
