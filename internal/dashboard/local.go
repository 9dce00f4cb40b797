package dashboard

import "github.com/google/uuid"

// Gift packages, staff users and user groups have no upstream
// endpoints yet; their collections are local-only and mutate with
// synthesized ids.

type GiftType string

const (
	GiftFixed      GiftType = "fixed"
	GiftPercentage GiftType = "percentage"
)

type GiftPackage struct {
	ID         string   `json:"id"`
	FromAmount string   `json:"fromAmount"`
	ToAmount   string   `json:"toAmount"`
	GiftType   GiftType `json:"giftType"`
	GiftValue  string   `json:"giftValue"`
	IsActive   bool     `json:"isActive"`
}

type StaffUser struct {
	ID          string   `json:"id"`
	Phone       string   `json:"phone"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	GroupID     string   `json:"groupId,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	IsActive    bool     `json:"isActive"`
}

type UserGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (c *Controller) GiftPackages() []GiftPackage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]GiftPackage(nil), c.giftPackages...)
}

func (c *Controller) Staff() []StaffUser {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]StaffUser(nil), c.staff...)
}

func (c *Controller) Groups() []UserGroup {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]UserGroup(nil), c.groups...)
}

func (c *Controller) SaveGiftPackage(in GiftPackage, editingID string) GiftPackage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if editingID != "" {
		in.ID = editingID
		c.giftPackages = replaceByID(c.giftPackages, in, func(v GiftPackage) string { return v.ID })

		return in
	}

	in.ID = uuid.NewString()
	c.giftPackages = append(c.giftPackages, in)

	return in
}

func (c *Controller) DeleteGiftPackage(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.giftPackages = deleteByID(c.giftPackages, id, func(v GiftPackage) string { return v.ID })
}

func (c *Controller) SaveStaffUser(in StaffUser, editingID string) StaffUser {
	c.mu.Lock()
	defer c.mu.Unlock()

	if editingID != "" {
		in.ID = editingID
		c.staff = replaceByID(c.staff, in, func(v StaffUser) string { return v.ID })

		return in
	}

	in.ID = uuid.NewString()
	c.staff = append(c.staff, in)

	return in
}

func (c *Controller) DeleteStaffUser(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.staff = deleteByID(c.staff, id, func(v StaffUser) string { return v.ID })
}

func (c *Controller) SaveGroup(in UserGroup, editingID string) UserGroup {
	c.mu.Lock()
	defer c.mu.Unlock()

	if editingID != "" {
		in.ID = editingID
		c.groups = replaceByID(c.groups, in, func(v UserGroup) string { return v.ID })

		return in
	}

	in.ID = uuid.NewString()
	c.groups = append(c.groups, in)

	return in
}

func (c *Controller) DeleteGroup(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups = deleteByID(c.groups, id, func(v UserGroup) string { return v.ID })
}
