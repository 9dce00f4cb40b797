package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noa-park/backoffice/internal/dashboard"
	"github.com/noa-park/backoffice/internal/pos"
)

// cartSession is one open POS cart plus the lock serializing access to
// it. Handlers run on parallel goroutines, so concurrent requests for
// the same cart id must not touch the lines unsynchronized.
type cartSession struct {
	mu   sync.Mutex
	cart *pos.Cart
}

// cartRegistry holds the open POS carts, one per checkout session.
// Carts are in-memory only and vanish on gateway restart.
type cartRegistry struct {
	mu       sync.Mutex
	sessions map[string]*cartSession
}

func newCartRegistry() *cartRegistry {
	return &cartRegistry{sessions: make(map[string]*cartSession)}
}

func (reg *cartRegistry) create() (string, *cartSession) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := uuid.NewString()
	sess := &cartSession{cart: pos.NewCart()}
	reg.sessions[id] = sess

	return id, sess
}

func (reg *cartRegistry) get(id string) (*cartSession, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, ok := reg.sessions[id]

	return sess, ok
}

func (reg *cartRegistry) drop(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.sessions, id)
}

// cartView is the wire shape of a cart: the lines plus freshly computed
// totals, so the client never does money arithmetic.
type cartView struct {
	ID       string         `json:"id"`
	Lines    []cartLineView `json:"lines"`
	Discount discountView   `json:"discount"`
	Totals   pos.Totals     `json:"totals"`
}

type cartLineView struct {
	GameID    string `json:"gameId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

type discountView struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

// cartViewOf snapshots the cart; callers hold the session lock.
func (h *HandlerProvider) cartViewOf(id string, cart *pos.Cart) cartView {
	view := cartView{
		ID:    id,
		Lines: make([]cartLineView, 0, len(cart.Lines)),
		Discount: discountView{
			Kind:  string(cart.Discount.Kind),
			Value: cart.Discount.Value,
		},
		Totals: cart.Totals(h.ctrl.TaxRateBP()),
	}

	for _, l := range cart.Lines {
		view.Lines = append(view.Lines, cartLineView{
			GameID:    l.GameID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	return view
}

// lookupCart resolves {cartId} or writes a 404.
func (h *HandlerProvider) lookupCart(w http.ResponseWriter, r *http.Request) (string, *cartSession, bool) {
	id := chi.URLParam(r, "cartId")

	sess, ok := h.carts.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found")

		return "", nil, false
	}

	return id, sess, true
}

// --- POS handlers ---

// CreateCartHandler handles POST /pos/carts.
func (h *HandlerProvider) CreateCartHandler(w http.ResponseWriter, r *http.Request) {
	id, sess := h.carts.create()

	sess.mu.Lock()
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusCreated, view)
}

// GetCartHandler handles GET /pos/carts/{cartId}.
func (h *HandlerProvider) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// DeleteCartHandler handles DELETE /pos/carts/{cartId}.
func (h *HandlerProvider) DeleteCartHandler(w http.ResponseWriter, r *http.Request) {
	h.carts.drop(chi.URLParam(r, "cartId"))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addItemRequest struct {
	GameID string `json:"gameId"`
}

// AddCartItemHandler handles POST /pos/carts/{cartId}/items. The line
// is built from the dashboard's game collection, never from
// client-supplied prices.
func (h *HandlerProvider) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	game, ok := h.ctrl.GameByID(req.GameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")

		return
	}

	sess.mu.Lock()
	sess.cart.AddItem(game.ID, game.Name, pos.ParsePrice(game.Price))
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

type changeQuantityRequest struct {
	Delta int64 `json:"delta"`
}

// ChangeCartItemHandler handles PATCH /pos/carts/{cartId}/items/{gameId}.
func (h *HandlerProvider) ChangeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	var req changeQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess.mu.Lock()
	sess.cart.ChangeQuantity(chi.URLParam(r, "gameId"), req.Delta)
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// RemoveCartItemHandler handles DELETE /pos/carts/{cartId}/items/{gameId}.
func (h *HandlerProvider) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.cart.RemoveItem(chi.URLParam(r, "gameId"))
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

type applyDiscountRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// ApplyDiscountHandler handles PUT /pos/carts/{cartId}/discount.
func (h *HandlerProvider) ApplyDiscountHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	var req applyDiscountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kind := pos.DiscountKind(req.Kind)
	if kind != pos.DiscountFixed && kind != pos.DiscountPercentage {
		writeError(w, http.StatusBadRequest, "discount kind must be fixed or percentage")

		return
	}

	sess.mu.Lock()
	sess.cart.ApplyDiscount(kind, req.Value)
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// ClearDiscountHandler handles DELETE /pos/carts/{cartId}/discount.
func (h *HandlerProvider) ClearDiscountHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.cart.ClearDiscount()
	view := h.cartViewOf(id, sess.cart)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

type checkoutRequest struct {
	CustomerID string `json:"customerId"`
}

// CheckoutHandler handles POST /pos/carts/{cartId}/checkout. On success
// the cart session is gone; on failure it stays open for retry. The
// session lock is held across the remote call so a concurrent item add
// cannot race the order payload.
func (h *HandlerProvider) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := h.lookupCart(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess.mu.Lock()
	result, err := h.ctrl.Checkout(r.Context(), sess.cart, req.CustomerID)
	sess.mu.Unlock()

	if err != nil {
		if errors.Is(err, dashboard.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "cart is empty")

			return
		}

		writeError(w, http.StatusBadGateway, err.Error())

		return
	}

	h.carts.drop(id)

	writeJSON(w, http.StatusOK, result)
}
