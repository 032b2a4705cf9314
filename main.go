package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/S4ntifdz/new-pwa/cart"
	"github.com/S4ntifdz/new-pwa/client"
	"github.com/S4ntifdz/new-pwa/config"
	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/services"
	"github.com/S4ntifdz/new-pwa/session"
	"github.com/S4ntifdz/new-pwa/storage"
	"github.com/S4ntifdz/new-pwa/utils"
)

func init() {
	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	// Durable per-device store; fall back to memory so the engine stays
	// usable for this run even when durability is lost.
	var store storage.Store
	gormStore, err := storage.Open(cfg.StoragePath)
	if err != nil {
		utils.ErrorLogger.Printf("Storage unavailable (%v), falling back to in-memory store", err)
		store = storage.NewMemoryStore()
	} else {
		store = gormStore
	}

	api := client.New(cfg.APIBaseURL)
	sessions := session.NewManager(api, store)
	api.SetCredentialSource(sessions)
	// Any 401/403 anywhere means the session is no longer valid.
	api.SetUnauthorizedHook(sessions.EndSession)

	ledger, err := cart.NewLedger(store)
	if err != nil {
		// Corrupt snapshot: drop it and start an empty cart.
		utils.ErrorLogger.Printf("Discarding unreadable cart snapshot: %v", err)
		if err := store.DeleteCart(); err != nil {
			utils.ErrorLogger.Fatalf("Failed to reset cart storage: %v", err)
		}
		ledger, err = cart.NewLedger(store)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to initialize cart: %v", err)
		}
	}

	monitor := services.NewUnpaidOrdersMonitor(api, cfg.PollInterval)
	monitor.OnUpdate = func(resp *models.UnpaidOrdersResponse) {
		utils.InfoLogger.Printf("Unpaid orders: %d, owed %s",
			len(resp.Orders), utils.FormatCurrency(resp.TotalAmountOwed))
	}
	monitor.BindTo(sessions)

	if sessions.Status() != session.StatusAuthenticated {
		authenticate(sessions, cfg)
	} else {
		utils.InfoLogger.Printf("Restored session for table %s as %s",
			sessions.TableID(), sessions.Identifier())
	}

	if venue, err := api.GetVenueConfig(context.Background()); err != nil {
		utils.ErrorLogger.Printf("Venue config unavailable: %v", err)
	} else {
		utils.InfoLogger.Printf("Connected to %s", venue.Name)
	}

	utils.InfoLogger.Printf("Cart restored: %d items, total %s",
		ledger.ItemCount(), utils.FormatCurrency(ledger.Total()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	monitor.Stop()
	utils.InfoLogger.Println("Shutting down")
}

// authenticate runs the identification step from environment input: the
// scanned table token plus the diner-supplied identifier.
func authenticate(sessions *session.Manager, cfg *config.Config) {
	tableToken := os.Getenv("TABLE_TOKEN")
	identifier := os.Getenv("IDENTIFIER")
	if phone := os.Getenv("PHONE_NUMBER"); identifier == "" && phone != "" {
		identifier = session.PhoneIdentifier(cfg.CountryCode, phone)
	}
	if tableToken == "" || identifier == "" {
		utils.ErrorLogger.Fatal("TABLE_TOKEN and IDENTIFIER (or PHONE_NUMBER) are required for a new session")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sessions.BeginValidation(ctx, identifier, tableToken); err != nil {
		if errors.Is(err, utils.ErrMalformedToken) {
			utils.ErrorLogger.Fatalf("Table token unreadable, re-scan the QR code: %v", err)
		}
		// Rejected vs. connection error carry distinct messages.
		utils.ErrorLogger.Fatalf("Identification failed: %v", err)
	}

	utils.InfoLogger.Printf("Identified at table %s", sessions.TableID())
}
