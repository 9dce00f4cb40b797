package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noa-park/backoffice/internal/auth"
	"github.com/noa-park/backoffice/internal/dashboard"
	"github.com/noa-park/backoffice/internal/normalize"
)

// HandlerProvider wraps the dashboard controller and exposes HTTP
// handlers.
type HandlerProvider struct {
	ctrl   *dashboard.Controller
	tokens auth.TokenStore
	carts  *cartRegistry
}

// NewHandler returns a new handler provider.
func NewHandler(ctrl *dashboard.Controller, tokens auth.TokenStore) *HandlerProvider {
	return &HandlerProvider{
		ctrl:   ctrl,
		tokens: tokens,
		carts:  newCartRegistry(),
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads a JSON body with a size cap and strict fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")

			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")

		return false
	}

	return true
}

// writeMutationError maps a controller mutation failure: outside demo
// mode the remote error surfaces as a bad gateway so the operator sees
// that the edit did not apply.
func writeMutationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadGateway, err.Error())
}

// --- Auth ---

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginHandler handles POST /login.
func (h *HandlerProvider) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := auth.Login(req.Phone, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")

		return
	}

	token := uuid.NewString()

	err = h.tokens.Save(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not persist session")

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"session": session,
	})
}

// LogoutHandler handles POST /logout.
func (h *HandlerProvider) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	err := h.tokens.Clear(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not clear session")

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Dashboard ---

// DashboardHandler handles GET /dashboard: the mode badge plus
// collection counts for the overview cards.
func (h *HandlerProvider) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	mode := h.ctrl.Mode()

	writeJSON(w, http.StatusOK, map[string]any{
		"mode":       mode,
		"isDemoMode": mode == dashboard.ModeDemo,
		"counts": map[string]int{
			"categories":   len(h.ctrl.Categories()),
			"games":        len(h.ctrl.Games()),
			"customers":    len(h.ctrl.Customers()),
			"devices":      len(h.ctrl.Devices()),
			"orders":       len(h.ctrl.Orders()),
			"giftPackages": len(h.ctrl.GiftPackages()),
			"staff":        len(h.ctrl.Staff()),
			"groups":       len(h.ctrl.Groups()),
		},
	})
}

// RefreshHandler handles POST /dashboard/refresh.
func (h *HandlerProvider) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Refresh(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"mode": h.ctrl.Mode()})
}

// ReconcileHandler handles POST /dashboard/reconcile.
func (h *HandlerProvider) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	done, err := h.ctrl.Reconcile(r.Context())
	if err != nil {
		if errors.Is(err, dashboard.ErrNoJournal) {
			writeError(w, http.StatusConflict, "offline sales journal not configured")

			return
		}

		writeJSON(w, http.StatusBadGateway, map[string]any{
			"reconciled": done,
			"error":      err.Error(),
		})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reconciled": done})
}

// --- Categories ---

func (h *HandlerProvider) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Categories())
}

// SaveCategoryHandler handles both POST /categories and
// PATCH /categories/{id}; an empty id means create.
func (h *HandlerProvider) SaveCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var in normalize.Category
	if !decodeBody(w, r, &in) {
		return
	}

	rec, err := h.ctrl.SaveCategory(r.Context(), in, chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *HandlerProvider) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Games ---

func (h *HandlerProvider) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Games())
}

func (h *HandlerProvider) SaveGameHandler(w http.ResponseWriter, r *http.Request) {
	var in normalize.Game
	if !decodeBody(w, r, &in) {
		return
	}

	rec, err := h.ctrl.SaveGame(r.Context(), in, chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *HandlerProvider) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Customers ---

func (h *HandlerProvider) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Customers())
}

func (h *HandlerProvider) SaveCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var in normalize.CustomerInput
	if !decodeBody(w, r, &in) {
		return
	}

	rec, err := h.ctrl.SaveCustomer(r.Context(), in, chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

func (h *HandlerProvider) SetCustomerPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")

		return
	}

	err := h.ctrl.SetCustomerPassword(r.Context(), chi.URLParam(r, "id"), req.Password)
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HandlerProvider) DeleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Devices ---

func (h *HandlerProvider) ListDevicesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Devices())
}

func (h *HandlerProvider) SaveDeviceHandler(w http.ResponseWriter, r *http.Request) {
	var in normalize.Device
	if !decodeBody(w, r, &in) {
		return
	}

	rec, err := h.ctrl.SaveDevice(r.Context(), in, chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *HandlerProvider) DeleteDeviceHandler(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteDevice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Orders ---

func (h *HandlerProvider) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Orders())
}

// --- Local-only collections ---

func (h *HandlerProvider) ListGiftPackagesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.GiftPackages())
}

func (h *HandlerProvider) SaveGiftPackageHandler(w http.ResponseWriter, r *http.Request) {
	var in dashboard.GiftPackage
	if !decodeBody(w, r, &in) {
		return
	}

	writeJSON(w, http.StatusOK, h.ctrl.SaveGiftPackage(in, chi.URLParam(r, "id")))
}

func (h *HandlerProvider) DeleteGiftPackageHandler(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteGiftPackage(chi.URLParam(r, "id"))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HandlerProvider) ListStaffHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Staff())
}

func (h *HandlerProvider) SaveStaffHandler(w http.ResponseWriter, r *http.Request) {
	var in dashboard.StaffUser
	if !decodeBody(w, r, &in) {
		return
	}

	writeJSON(w, http.StatusOK, h.ctrl.SaveStaffUser(in, chi.URLParam(r, "id")))
}

func (h *HandlerProvider) DeleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteStaffUser(chi.URLParam(r, "id"))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HandlerProvider) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Groups())
}

func (h *HandlerProvider) SaveGroupHandler(w http.ResponseWriter, r *http.Request) {
	var in dashboard.UserGroup
	if !decodeBody(w, r, &in) {
		return
	}

	writeJSON(w, http.StatusOK, h.ctrl.SaveGroup(in, chi.URLParam(r, "id")))
}

func (h *HandlerProvider) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteGroup(chi.URLParam(r, "id"))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
