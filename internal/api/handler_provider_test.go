package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/noa-park/backoffice/internal/auth"
	"github.com/noa-park/backoffice/internal/dashboard"
	"github.com/noa-park/backoffice/internal/upstream"
)

// fakeNoaAPI serves just enough of the upstream surface for the
// handlers under test. Creates can be failed to exercise the error
// mapping.
type fakeNoaAPI struct {
	mu          sync.Mutex
	failCreates bool
}

func (f *fakeNoaAPI) setFailCreates(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failCreates = v
}

func (f *fakeNoaAPI) createsFail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.failCreates
}

func (f *fakeNoaAPI) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if f.createsFail() {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}

			var in upstream.RawCategory
			_ = json.NewDecoder(r.Body).Decode(&in)
			in.ID = "srv-cat-1"
			writeJSON(w, in)

			return
		}

		writeJSON(w, []upstream.RawCategory{{ID: "c1", Name: "Thrill Rides"}})
	})

	mux.HandleFunc("/admin/games", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []upstream.RawGame{
			{ID: "g1", Name: "Mega Coaster", Price: "45,000", Category: "Thrill Rides", Status: "active"},
			{ID: "g2", Name: "Bumper Cars", Price: float64(75000), Category: "Thrill Rides", Status: "active"},
		})
	})

	mux.HandleFunc("/admin/devices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []upstream.RawDevice{})
	})

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []upstream.RawUser{})
	})

	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, upstream.RawOrder{ID: "srv-o1", UserID: "u1", TotalPaidAmount: float64(163350)})

			return
		}

		writeJSON(w, []upstream.RawOrder{})
	})

	return mux
}

func newTestRouterWithFake(t *testing.T) (http.Handler, *fakeNoaAPI) {
	t.Helper()

	f := &fakeNoaAPI{}

	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	ctrl := dashboard.New(upstream.New(srv.URL, nil), nil, 0)
	ctrl.Load(testContext(t))

	if ctrl.Mode() != dashboard.ModeLive {
		t.Fatalf("setup: want live, got %s", ctrl.Mode())
	}

	return NewRouter(NewHandler(ctrl, auth.NewMemoryTokenStore())), f
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	h, _ := newTestRouterWithFake(t)

	return h
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}

	return out
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/login", map[string]string{
		"phone":    "09123456789",
		"password": "1234",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	resp := decode[map[string]any](t, rec)
	if tok, _ := resp["token"].(string); tok == "" {
		t.Fatalf("login must issue a token: %v", resp)
	}

	rec = doJSON(t, h, http.MethodPost, "/login", map[string]string{
		"phone":    "09123456789",
		"password": "0000",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad credentials: %d", rec.Code)
	}
}

func TestDashboardHandler(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: %d", rec.Code)
	}

	resp := decode[struct {
		Mode       string         `json:"mode"`
		IsDemoMode bool           `json:"isDemoMode"`
		Counts     map[string]int `json:"counts"`
	}](t, rec)

	if resp.Mode != "live" || resp.IsDemoMode {
		t.Fatalf("mode: %+v", resp)
	}

	if resp.Counts["games"] != 2 || resp.Counts["categories"] != 1 {
		t.Fatalf("counts: %+v", resp.Counts)
	}
}

func TestSaveCategoryHandler(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/categories", map[string]string{"name": "Water Rides"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	created := decode[map[string]any](t, rec)
	if created["id"] != "srv-cat-1" {
		t.Fatalf("create must return the server record: %v", created)
	}
}

func TestSaveCategoryHandler_UpstreamFailure(t *testing.T) {
	t.Parallel()

	h, f := newTestRouterWithFake(t)
	f.setFailCreates(true)

	rec := doJSON(t, h, http.MethodPost, "/categories", map[string]string{"name": "Water Rides"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("live-mode remote failure must map to 502, got %d %s", rec.Code, rec.Body.String())
	}

	// The failed create must not leak into the local collection.
	rec = doJSON(t, h, http.MethodGet, "/categories", nil)
	if got := decode[[]map[string]any](t, rec); len(got) != 1 {
		t.Fatalf("categories after failed create: %+v", got)
	}
}

func TestCartFlow(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/pos/carts", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cart: %d %s", rec.Code, rec.Body.String())
	}

	cart := decode[cartView](t, rec)
	if cart.ID == "" || len(cart.Lines) != 0 {
		t.Fatalf("fresh cart: %+v", cart)
	}

	base := "/pos/carts/" + cart.ID

	// Two coasters and one bumper car.
	doJSON(t, h, http.MethodPost, base+"/items", map[string]string{"gameId": "g1"})
	doJSON(t, h, http.MethodPost, base+"/items", map[string]string{"gameId": "g1"})

	rec = doJSON(t, h, http.MethodPost, base+"/items", map[string]string{"gameId": "g2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}

	cart = decode[cartView](t, rec)
	if cart.Totals.Subtotal != 165000 || cart.Totals.ItemCount != 3 {
		t.Fatalf("totals after adds: %+v", cart.Totals)
	}

	rec = doJSON(t, h, http.MethodPut, base+"/discount", map[string]string{"kind": "percentage", "value": "10"})
	cart = decode[cartView](t, rec)

	if cart.Totals.DiscountAmount != 16500 || cart.Totals.Total != 163350 {
		t.Fatalf("totals after discount: %+v", cart.Totals)
	}

	rec = doJSON(t, h, http.MethodPost, base+"/checkout", map[string]string{"customerId": "u1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body.String())
	}

	result := decode[dashboard.CheckoutResult](t, rec)
	if result.OrderID != "srv-o1" || result.Journaled {
		t.Fatalf("checkout result: %+v", result)
	}

	// The cart session is gone after a successful checkout.
	rec = doJSON(t, h, http.MethodGet, base, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cart after checkout: %d", rec.Code)
	}
}

func TestCartHandlers_ConcurrentSameCart(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/pos/carts", nil)
	cart := decode[cartView](t, rec)

	base := "/pos/carts/" + cart.ID

	const (
		workers = 4
		adds    = 8
	)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < adds; i++ {
				game := "g1"
				if i%2 == 0 {
					game = "g2"
				}

				doJSON(t, h, http.MethodPost, base+"/items", map[string]string{"gameId": game})
				doJSON(t, h, http.MethodGet, base, nil)
			}
		}()
	}

	wg.Wait()

	rec = doJSON(t, h, http.MethodGet, base, nil)
	got := decode[cartView](t, rec)

	if got.Totals.ItemCount != workers*adds {
		t.Fatalf("item count: want %d, got %d", workers*adds, got.Totals.ItemCount)
	}
}

func TestCartHandler_Errors(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/pos/carts/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown cart: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/pos/carts", nil)
	cart := decode[cartView](t, rec)

	base := "/pos/carts/" + cart.ID

	rec = doJSON(t, h, http.MethodPost, base+"/items", map[string]string{"gameId": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, base+"/checkout", map[string]string{"customerId": "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty cart checkout: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPut, base+"/discount", map[string]string{"kind": "bogus", "value": "10"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad discount kind: %d", rec.Code)
	}
}

func TestLocalCollectionLifecycle(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	type tc struct {
		name string
		path string
		body map[string]any
	}

	tests := []tc{
		{name: "staff", path: "/staff", body: map[string]any{"name": "Gate Operator", "phone": "09120000009", "role": "operator"}},
		{name: "groups", path: "/groups", body: map[string]any{"name": "Cashiers", "permissions": []string{"pos"}}},
		{name: "gift_packages", path: "/gift-packages", body: map[string]any{"fromAmount": "100000", "toAmount": "200000", "giftType": "fixed", "giftValue": "5000", "isActive": true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, h, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
			}

			created := decode[map[string]any](t, rec)

			id, _ := created["id"].(string)
			if id == "" {
				t.Fatalf("create must synthesize an id: %v", created)
			}

			rec = doJSON(t, h, http.MethodGet, tt.path, nil)
			if got := decode[[]map[string]any](t, rec); len(got) != 1 {
				t.Fatalf("list after create: %+v", got)
			}

			rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("%s/%s", tt.path, id), nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
			}

			rec = doJSON(t, h, http.MethodGet, tt.path, nil)
			if got := decode[[]map[string]any](t, rec); len(got) != 0 {
				t.Fatalf("list after delete: %+v", got)
			}
		})
	}
}

func TestSetCustomerPasswordHandler_TooShort(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPatch, "/customers/u1/set-password", map[string]string{"password": "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: %d %s", rec.Code, rec.Body.String())
	}
}
