// Package dashboard owns the back-office resource collections and the
// live/demo fallback logic around the upstream API. All collection
// state lives behind one controller; readers get copies.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/noa-park/backoffice/internal/normalize"
	"github.com/noa-park/backoffice/internal/pos"
	"github.com/noa-park/backoffice/internal/repos/sales"
	"github.com/noa-park/backoffice/internal/upstream"
)

// Mode is the connectivity state of the dashboard.
type Mode string

const (
	// ModeLoading means the initial load has not settled yet;
	// mutations behave as in ModeLive.
	ModeLoading Mode = "loading"
	// ModeLive means the upstream API is the source of truth.
	ModeLive Mode = "live"
	// ModeDemo means the mandatory fetches failed and the collections
	// run on local fixture data; mutations fall back to local-only.
	ModeDemo Mode = "demo"
)

var ErrEmptyCart = errors.New("cart is empty")

type Controller struct {
	client    *upstream.Client
	journal   sales.Journal
	taxRateBP int64

	mu           sync.Mutex
	mode         Mode
	categories   []normalize.Category
	games        []normalize.Game
	customers    []normalize.Customer
	devices      []normalize.Device
	orders       []normalize.Order
	giftPackages []GiftPackage
	staff        []StaffUser
	groups       []UserGroup
}

// New builds a controller in ModeLoading. journal may be nil when no
// offline sales persistence is configured; demo-mode checkouts then
// fail instead of being journaled.
func New(client *upstream.Client, journal sales.Journal, taxRateBP int64) *Controller {
	if taxRateBP <= 0 {
		taxRateBP = pos.DefaultTaxRateBP
	}

	return &Controller{
		client:    client,
		journal:   journal,
		taxRateBP: taxRateBP,
		mode:      ModeLoading,
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

// IsDemoMode is the boolean the mutation handlers route on.
func (c *Controller) IsDemoMode() bool {
	return c.Mode() == ModeDemo
}

func (c *Controller) TaxRateBP() int64 { return c.taxRateBP }

// Load runs the initial fetch sequence and settles the mode. The two
// mandatory fetches (categories, games) run concurrently and both must
// succeed for ModeLive; either failing flips the whole dashboard into
// ModeDemo on fixture data. The secondary fetches (devices, customers,
// orders) run sequentially and are each independently caught: a
// failure leaves that collection empty and never affects the mode.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.mode = ModeLoading
	c.mu.Unlock()

	var (
		rawCats  []upstream.RawCategory
		rawGames []upstream.RawGame
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rawCats, err = c.client.Categories().List(gctx)

		return err
	})

	g.Go(func() error {
		var err error
		rawGames, err = c.client.Games().List(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		slog.Warn("mandatory fetch failed, switching to demo mode", "error", err)

		c.mu.Lock()
		c.mode = ModeDemo
		c.categories = demoCategories()
		c.games = demoGames()
		c.customers = nil
		c.devices = nil
		c.orders = nil
		c.mu.Unlock()

		return
	}

	categories := make([]normalize.Category, 0, len(rawCats))
	for _, rc := range rawCats {
		categories = append(categories, normalize.CategoryFromRaw(rc))
	}

	games := make([]normalize.Game, 0, len(rawGames))
	for _, rg := range rawGames {
		games = append(games, normalize.GameFromRaw(rg))
	}

	devices := c.loadDevices(ctx)
	customers := c.loadCustomers(ctx)
	orders, spend := c.loadOrders(ctx)

	normalize.ApplySpend(customers, spend)

	c.mu.Lock()
	c.mode = ModeLive
	c.categories = categories
	c.games = games
	c.devices = devices
	c.customers = customers
	c.orders = orders
	c.mu.Unlock()

	slog.Info("dashboard loaded",
		"categories", len(categories),
		"games", len(games),
		"devices", len(devices),
		"customers", len(customers),
		"orders", len(orders),
	)
}

// Refresh re-runs the full load sequence; it is the only way the mode
// moves between live and demo after the initial load.
func (c *Controller) Refresh(ctx context.Context) {
	c.Load(ctx)
}

func (c *Controller) loadDevices(ctx context.Context) []normalize.Device {
	raw, err := c.client.Devices().List(ctx)
	if err != nil {
		slog.Warn("device list unavailable", "error", err)

		return nil
	}

	out := make([]normalize.Device, 0, len(raw))
	for _, rd := range raw {
		out = append(out, normalize.DeviceFromRaw(rd))
	}

	return out
}

func (c *Controller) loadCustomers(ctx context.Context) []normalize.Customer {
	raw, err := c.client.Users().List(ctx)
	if err != nil {
		slog.Warn("customer list unavailable", "error", err)

		return nil
	}

	out := make([]normalize.Customer, 0, len(raw))
	for _, ru := range raw {
		out = append(out, normalize.CustomerFromRaw(ru))
	}

	return out
}

// loadOrders returns the normalized orders plus the per-customer spend
// aggregation that feeds the customer list.
func (c *Controller) loadOrders(ctx context.Context) ([]normalize.Order, map[string]int64) {
	raw, err := c.client.Orders().List(ctx, "")
	if err != nil {
		slog.Warn("order list unavailable", "error", err)

		return nil, nil
	}

	out := make([]normalize.Order, 0, len(raw))
	for _, ro := range raw {
		out = append(out, normalize.OrderFromRaw(ro))
	}

	return out, normalize.AggregateSpend(raw)
}

// --- Snapshots (read-only copies) ---

func (c *Controller) Categories() []normalize.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]normalize.Category(nil), c.categories...)
}

func (c *Controller) Games() []normalize.Game {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]normalize.Game(nil), c.games...)
}

func (c *Controller) Customers() []normalize.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]normalize.Customer(nil), c.customers...)
}

func (c *Controller) Devices() []normalize.Device {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]normalize.Device(nil), c.devices...)
}

func (c *Controller) Orders() []normalize.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]normalize.Order(nil), c.orders...)
}

// GameByID looks a game up in the current collection.
func (c *Controller) GameByID(id string) (normalize.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}

	return normalize.Game{}, false
}

// --- Mutation protocol ---
//
// Every remote-backed mutation follows the same shape: attempt the
// remote call, then mutate the local collection exactly once: with
// the server-returned record on success, or directly (demo mode only)
// on failure. Outside demo mode a remote failure is returned to the
// caller instead of being swallowed.

func (c *Controller) SaveCategory(ctx context.Context, in normalize.Category, editingID string) (normalize.Category, error) {
	if editingID != "" {
		rec, err := c.client.Categories().Update(ctx, editingID, normalize.CategoryToRaw(in))
		if err != nil {
			if !c.IsDemoMode() {
				return normalize.Category{}, fmt.Errorf("save category: %w", err)
			}

			in.ID = editingID
			c.replaceCategory(in)

			return in, nil
		}

		out := normalize.CategoryFromRaw(rec)
		c.replaceCategory(out)

		return out, nil
	}

	rec, err := c.client.Categories().Create(ctx, normalize.CategoryToRaw(in))
	if err != nil {
		if !c.IsDemoMode() {
			return normalize.Category{}, fmt.Errorf("save category: %w", err)
		}

		in.ID = uuid.NewString()
		c.appendCategory(in)

		return in, nil
	}

	out := normalize.CategoryFromRaw(rec)
	c.appendCategory(out)

	return out, nil
}

func (c *Controller) DeleteCategory(ctx context.Context, id string) error {
	err := c.client.Categories().Delete(ctx, id)
	if err != nil && !c.IsDemoMode() {
		return fmt.Errorf("delete category: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = deleteByID(c.categories, id, func(v normalize.Category) string { return v.ID })

	return nil
}

func (c *Controller) SaveGame(ctx context.Context, in normalize.Game, editingID string) (normalize.Game, error) {
	if editingID != "" {
		rec, err := c.client.Games().Update(ctx, editingID, normalize.GameToRaw(in))
		if err != nil {
			if !c.IsDemoMode() {
				return normalize.Game{}, fmt.Errorf("save game: %w", err)
			}

			in.ID = editingID
			c.replaceGame(in)

			return in, nil
		}

		out := normalize.GameFromRaw(rec)
		c.replaceGame(out)

		return out, nil
	}

	rec, err := c.client.Games().Create(ctx, normalize.GameToRaw(in))
	if err != nil {
		if !c.IsDemoMode() {
			return normalize.Game{}, fmt.Errorf("save game: %w", err)
		}

		in.ID = uuid.NewString()
		c.appendGame(in)

		return in, nil
	}

	out := normalize.GameFromRaw(rec)
	c.appendGame(out)

	return out, nil
}

func (c *Controller) DeleteGame(ctx context.Context, id string) error {
	err := c.client.Games().Delete(ctx, id)
	if err != nil && !c.IsDemoMode() {
		return fmt.Errorf("delete game: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.games = deleteByID(c.games, id, func(v normalize.Game) string { return v.ID })

	return nil
}

func (c *Controller) SaveCustomer(ctx context.Context, in normalize.CustomerInput, editingID string) (normalize.Customer, error) {
	if editingID != "" {
		rec, err := c.client.Users().Update(ctx, editingID, normalize.CustomerUpdatePayload(in))
		if err != nil {
			if !c.IsDemoMode() {
				return normalize.Customer{}, fmt.Errorf("save customer: %w", err)
			}

			local := localCustomer(in, editingID)
			c.replaceCustomer(local)

			return local, nil
		}

		out := normalize.CustomerFromRaw(rec)
		c.replaceCustomer(out)

		return out, nil
	}

	rec, err := c.client.Users().Create(ctx, normalize.CustomerCreatePayload(in, time.Now()))
	if err != nil {
		if !c.IsDemoMode() {
			return normalize.Customer{}, fmt.Errorf("save customer: %w", err)
		}

		local := localCustomer(in, uuid.NewString())
		c.appendCustomer(local)

		return local, nil
	}

	out := normalize.CustomerFromRaw(rec)
	c.appendCustomer(out)

	return out, nil
}

func (c *Controller) DeleteCustomer(ctx context.Context, id string) error {
	err := c.client.Users().Delete(ctx, id)
	if err != nil && !c.IsDemoMode() {
		return fmt.Errorf("delete customer: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.customers = deleteByID(c.customers, id, func(v normalize.Customer) string { return v.ID })

	return nil
}

// SetCustomerPassword is remote-only; there is no local state to fall
// back onto.
func (c *Controller) SetCustomerPassword(ctx context.Context, id, password string) error {
	err := c.client.Users().SetPassword(ctx, id, password)
	if err != nil {
		return fmt.Errorf("set customer password: %w", err)
	}

	return nil
}

func (c *Controller) SaveDevice(ctx context.Context, in normalize.Device, editingID string) (normalize.Device, error) {
	if editingID != "" {
		rec, err := c.client.Devices().Update(ctx, editingID, normalize.DeviceToRaw(in))
		if err != nil {
			if !c.IsDemoMode() {
				return normalize.Device{}, fmt.Errorf("save device: %w", err)
			}

			in.ID = editingID
			c.replaceDevice(in)

			return in, nil
		}

		out := normalize.DeviceFromRaw(rec)
		c.replaceDevice(out)

		return out, nil
	}

	rec, err := c.client.Devices().Create(ctx, normalize.DeviceToRaw(in))
	if err != nil {
		if !c.IsDemoMode() {
			return normalize.Device{}, fmt.Errorf("save device: %w", err)
		}

		in.ID = uuid.NewString()
		c.appendDevice(in)

		return in, nil
	}

	out := normalize.DeviceFromRaw(rec)
	c.appendDevice(out)

	return out, nil
}

func (c *Controller) DeleteDevice(ctx context.Context, id string) error {
	err := c.client.Devices().Delete(ctx, id)
	if err != nil && !c.IsDemoMode() {
		return fmt.Errorf("delete device: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.devices = deleteByID(c.devices, id, func(v normalize.Device) string { return v.ID })

	return nil
}

// --- collection helpers ---

func localCustomer(in normalize.CustomerInput, id string) normalize.Customer {
	return normalize.Customer{ID: id, Name: in.Name, Phone: in.Phone, TotalSpent: "0"}
}

func deleteByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]

	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}

	return out
}

func replaceByID[T any](list []T, rec T, idOf func(T) string) []T {
	for i := range list {
		if idOf(list[i]) == idOf(rec) {
			list[i] = rec

			return list
		}
	}

	return list
}

func (c *Controller) replaceCategory(rec normalize.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = replaceByID(c.categories, rec, func(v normalize.Category) string { return v.ID })
}

func (c *Controller) appendCategory(rec normalize.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.categories = append(c.categories, rec)
}

func (c *Controller) replaceGame(rec normalize.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.games = replaceByID(c.games, rec, func(v normalize.Game) string { return v.ID })
}

func (c *Controller) appendGame(rec normalize.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.games = append(c.games, rec)
}

func (c *Controller) replaceCustomer(rec normalize.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.customers = replaceByID(c.customers, rec, func(v normalize.Customer) string { return v.ID })
}

func (c *Controller) appendCustomer(rec normalize.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.customers = append(c.customers, rec)
}

func (c *Controller) replaceDevice(rec normalize.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.devices = replaceByID(c.devices, rec, func(v normalize.Device) string { return v.ID })
}

func (c *Controller) appendDevice(rec normalize.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.devices = append(c.devices, rec)
}
