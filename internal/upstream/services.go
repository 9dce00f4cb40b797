package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// Per-resource wrappers over the shared client. Paths follow the
// current admin API: /admin/... variants and PATCH for updates; the
// earlier PUT-based /categories-era customer endpoints are superseded.

type Categories struct{ c *Client }

func (c *Client) Categories() *Categories { return &Categories{c: c} }

func (s *Categories) List(ctx context.Context) ([]RawCategory, error) {
	var out []RawCategory

	err := s.c.do(ctx, "GET", "/categories", nil, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return out, nil
}

func (s *Categories) Get(ctx context.Context, id string) (RawCategory, error) {
	var out RawCategory

	err := s.c.do(ctx, "GET", "/categories/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return RawCategory{}, fmt.Errorf("get category: %w", err)
	}

	return out, nil
}

func (s *Categories) Create(ctx context.Context, in RawCategory) (RawCategory, error) {
	var out RawCategory

	err := s.c.do(ctx, "POST", "/categories", nil, in, &out)
	if err != nil {
		return RawCategory{}, fmt.Errorf("create category: %w", err)
	}

	return out, nil
}

func (s *Categories) Update(ctx context.Context, id string, in RawCategory) (RawCategory, error) {
	var out RawCategory

	err := s.c.do(ctx, "PATCH", "/categories/"+url.PathEscape(id), nil, in, &out)
	if err != nil {
		return RawCategory{}, fmt.Errorf("update category: %w", err)
	}

	return out, nil
}

func (s *Categories) Delete(ctx context.Context, id string) error {
	err := s.c.do(ctx, "DELETE", "/categories/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	return nil
}

type Games struct{ c *Client }

func (c *Client) Games() *Games { return &Games{c: c} }

func (s *Games) List(ctx context.Context) ([]RawGame, error) {
	var out []RawGame

	err := s.c.do(ctx, "GET", "/admin/games", nil, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return out, nil
}

func (s *Games) Get(ctx context.Context, id string) (RawGame, error) {
	var out RawGame

	err := s.c.do(ctx, "GET", "/admin/games/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return RawGame{}, fmt.Errorf("get game: %w", err)
	}

	return out, nil
}

func (s *Games) Create(ctx context.Context, in RawGame) (RawGame, error) {
	var out RawGame

	err := s.c.do(ctx, "POST", "/admin/games", nil, in, &out)
	if err != nil {
		return RawGame{}, fmt.Errorf("create game: %w", err)
	}

	return out, nil
}

func (s *Games) Update(ctx context.Context, id string, in RawGame) (RawGame, error) {
	var out RawGame

	err := s.c.do(ctx, "PATCH", "/admin/games/"+url.PathEscape(id), nil, in, &out)
	if err != nil {
		return RawGame{}, fmt.Errorf("update game: %w", err)
	}

	return out, nil
}

func (s *Games) Delete(ctx context.Context, id string) error {
	err := s.c.do(ctx, "DELETE", "/admin/games/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	return nil
}

type Users struct{ c *Client }

func (c *Client) Users() *Users { return &Users{c: c} }

func (s *Users) List(ctx context.Context) ([]RawUser, error) {
	var out []RawUser

	err := s.c.do(ctx, "GET", "/users", nil, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return out, nil
}

func (s *Users) Get(ctx context.Context, id string) (RawUser, error) {
	var out RawUser

	err := s.c.do(ctx, "GET", "/users/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return RawUser{}, fmt.Errorf("get user: %w", err)
	}

	return out, nil
}

func (s *Users) Create(ctx context.Context, in UserPayload) (RawUser, error) {
	var out RawUser

	err := s.c.do(ctx, "POST", "/users", nil, in, &out)
	if err != nil {
		return RawUser{}, fmt.Errorf("create user: %w", err)
	}

	return out, nil
}

func (s *Users) Update(ctx context.Context, id string, in UserPayload) (RawUser, error) {
	var out RawUser

	err := s.c.do(ctx, "PATCH", "/users/"+url.PathEscape(id), nil, in, &out)
	if err != nil {
		return RawUser{}, fmt.Errorf("update user: %w", err)
	}

	return out, nil
}

func (s *Users) Delete(ctx context.Context, id string) error {
	err := s.c.do(ctx, "DELETE", "/users/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (s *Users) SetPassword(ctx context.Context, id, password string) error {
	body := map[string]string{"password": password}

	err := s.c.do(ctx, "PATCH", "/users/"+url.PathEscape(id)+"/set-password", nil, body, nil)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	return nil
}

type Devices struct{ c *Client }

func (c *Client) Devices() *Devices { return &Devices{c: c} }

func (s *Devices) List(ctx context.Context) ([]RawDevice, error) {
	var out []RawDevice

	err := s.c.do(ctx, "GET", "/admin/devices", nil, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	return out, nil
}

func (s *Devices) Get(ctx context.Context, id string) (RawDevice, error) {
	var out RawDevice

	err := s.c.do(ctx, "GET", "/admin/devices/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return RawDevice{}, fmt.Errorf("get device: %w", err)
	}

	return out, nil
}

func (s *Devices) Create(ctx context.Context, in RawDevice) (RawDevice, error) {
	var out RawDevice

	err := s.c.do(ctx, "POST", "/admin/devices", nil, in, &out)
	if err != nil {
		return RawDevice{}, fmt.Errorf("create device: %w", err)
	}

	return out, nil
}

func (s *Devices) Update(ctx context.Context, id string, in RawDevice) (RawDevice, error) {
	var out RawDevice

	err := s.c.do(ctx, "PATCH", "/admin/devices/"+url.PathEscape(id), nil, in, &out)
	if err != nil {
		return RawDevice{}, fmt.Errorf("update device: %w", err)
	}

	return out, nil
}

func (s *Devices) Delete(ctx context.Context, id string) error {
	err := s.c.do(ctx, "DELETE", "/admin/devices/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}

	return nil
}

type Orders struct{ c *Client }

func (c *Client) Orders() *Orders { return &Orders{c: c} }

// List fetches orders, optionally filtered to one customer.
func (s *Orders) List(ctx context.Context, userID string) ([]RawOrder, error) {
	var query url.Values

	if userID != "" {
		query = url.Values{"userId": {userID}}
	}

	var out []RawOrder

	err := s.c.do(ctx, "GET", "/orders", query, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return out, nil
}

func (s *Orders) Get(ctx context.Context, id string) (RawOrder, error) {
	var out RawOrder

	err := s.c.do(ctx, "GET", "/orders/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		return RawOrder{}, fmt.Errorf("get order: %w", err)
	}

	return out, nil
}

func (s *Orders) Create(ctx context.Context, in OrderPayload) (RawOrder, error) {
	var out RawOrder

	err := s.c.do(ctx, "POST", "/orders", nil, in, &out)
	if err != nil {
		return RawOrder{}, fmt.Errorf("create order: %w", err)
	}

	return out, nil
}

func (s *Orders) Delete(ctx context.Context, id string) error {
	err := s.c.do(ctx, "DELETE", "/orders/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	return nil
}
