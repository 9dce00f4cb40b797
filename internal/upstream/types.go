package upstream

// Wire types for the Noa API. Upstream payloads are loosely typed:
// ids arrive as strings or numbers depending on the resource, and
// numeric fields may be absent. Fields that vary are declared `any`
// and coerced once at the normalization boundary.

type RawCategory struct {
	ID         any    `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	GamesCount any    `json:"gamesCount,omitempty"`
}

type RawGame struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Time        string `json:"time,omitempty"`
	Status      string `json:"status,omitempty"`
	Price       any    `json:"price,omitempty"`
	Image       string `json:"image,omitempty"`
}

type RawDevice struct {
	ID            any    `json:"id"`
	Name          string `json:"name,omitempty"`
	Type          string `json:"type,omitempty"`
	Status        string `json:"status,omitempty"`
	AllowGift     bool   `json:"allowGift,omitempty"`
	Time          any    `json:"time,omitempty"`
	EndTimeAlarm  any    `json:"endTimeAlarm,omitempty"`
	StopNextCards any    `json:"stopNextCards,omitempty"`
}

type RawProfile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}

type RawUser struct {
	ID       any         `json:"id"`
	Username string      `json:"username,omitempty"`
	Profile  *RawProfile `json:"profile,omitempty"`
}

type RawOrder struct {
	ID              any `json:"id"`
	UserID          any `json:"userId"`
	TotalPaidAmount any `json:"totalPaidAmount,omitempty"`
}

// UserPayload is the write shape for POST/PATCH /users. Password is
// omitted entirely on updates unless a new one is being set.
type UserPayload struct {
	Username string         `json:"username"`
	Email    string         `json:"email,omitempty"`
	Password string         `json:"password,omitempty"`
	Profile  ProfilePayload `json:"profile"`
}

type ProfilePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile,omitempty"`
}

// OrderPayload is the write shape for POST /orders, produced from a
// completed POS checkout.
type OrderPayload struct {
	UserID          string          `json:"userId,omitempty"`
	Items           []OrderItem     `json:"items"`
	Discount        DiscountPayload `json:"discount"`
	TotalPaidAmount int64           `json:"totalPaidAmount"`
	TaxAmount       int64           `json:"taxAmount"`
}

type OrderItem struct {
	GameID    string `json:"gameId"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type DiscountPayload struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}
