package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noa-park/backoffice/internal/upstream"
)

// placeholderName is shown when a user record carries neither a
// profile name nor a username.
const placeholderName = "Customer"

// defaultPassword substitutes for a caller-supplied password shorter
// than the upstream minimum on create. The upstream API rejects short
// passwords; the admin form does not, so the gateway keeps the
// original substitution behavior rather than failing the save.
const defaultPassword = "NoaPark#2024"

// minPasswordLen is the upstream minimum; anything shorter is never
// sent on update.
const minPasswordLen = 8

// placeholderEmailDomain hosts synthesized addresses for customers
// created without one.
const placeholderEmailDomain = "noa.local"

// Customer is the view model for the customer management screens.
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	TotalSpent string `json:"totalSpent"`
}

// CustomerFromRaw flattens the upstream user record. The display name
// is the trimmed join of profile first/last name, falling back to the
// username and finally a fixed placeholder; the phone falls back to
// the username (upstream usernames are phone numbers).
func CustomerFromRaw(raw upstream.RawUser) Customer {
	var first, last, mobile string

	if raw.Profile != nil {
		first = raw.Profile.FirstName
		last = raw.Profile.LastName
		mobile = raw.Profile.Mobile
	}

	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		name = raw.Username
	}

	if name == "" {
		name = placeholderName
	}

	phone := mobile
	if phone == "" {
		phone = raw.Username
	}

	return Customer{
		ID:         coerceString(raw.ID),
		Name:       name,
		Phone:      phone,
		TotalSpent: "0",
	}
}

// CustomerInput is what the admin form submits for a create or update.
type CustomerInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// splitName turns a display name back into first/last tokens: first
// whitespace-separated token is the first name, the remainder the
// last name, "-" standing in for anything empty.
func splitName(name string) (string, string) {
	fields := strings.Fields(name)

	switch len(fields) {
	case 0:
		return "-", "-"
	case 1:
		return fields[0], "-"
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// CustomerCreatePayload builds the POST /users body. A password is
// always included: the caller's when it meets the minimum length, the
// fixed default otherwise. A missing email is synthesized from now.
func CustomerCreatePayload(in CustomerInput, now time.Time) upstream.UserPayload {
	first, last := splitName(in.Name)

	email := in.Email
	if email == "" {
		email = fmt.Sprintf("user-%d@%s", now.Unix(), placeholderEmailDomain)
	}

	password := in.Password
	if len(password) < minPasswordLen {
		password = defaultPassword
	}

	return upstream.UserPayload{
		Username: in.Phone,
		Email:    email,
		Password: password,
		Profile: upstream.ProfilePayload{
			FirstName: first,
			LastName:  last,
			Mobile:    in.Phone,
		},
	}
}

// CustomerUpdatePayload builds the PATCH /users/{id} body. The
// password is included only when a new one of sufficient length was
// supplied; otherwise the update never touches it.
func CustomerUpdatePayload(in CustomerInput) upstream.UserPayload {
	first, last := splitName(in.Name)

	p := upstream.UserPayload{
		Username: in.Phone,
		Email:    in.Email,
		Profile: upstream.ProfilePayload{
			FirstName: first,
			LastName:  last,
			Mobile:    in.Phone,
		},
	}

	if len(in.Password) >= minPasswordLen {
		p.Password = in.Password
	}

	return p
}

// AggregateSpend sums totalPaidAmount per customer id across orders.
// Ids are keyed as strings; non-numeric amounts count as zero.
func AggregateSpend(orders []upstream.RawOrder) map[string]int64 {
	spend := make(map[string]int64, len(orders))

	for _, o := range orders {
		id := coerceString(o.UserID)
		if id == "" {
			continue
		}

		spend[id] += coerceAmount(o.TotalPaidAmount)
	}

	return spend
}

// ApplySpend merges an aggregated spend map into the customer list,
// matching on string ids. Customers without orders keep "0".
func ApplySpend(customers []Customer, spend map[string]int64) {
	for i := range customers {
		if total, ok := spend[customers[i].ID]; ok {
			customers[i].TotalSpent = strconv.FormatInt(total, 10)
		}
	}
}
