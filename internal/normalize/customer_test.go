package normalize

import (
	"testing"
	"time"

	"github.com/noa-park/backoffice/internal/upstream"
)

func TestCustomerFromRaw(t *testing.T) {
	t.Parallel()

	type tc struct {
		name string
		raw  upstream.RawUser
		want Customer
	}

	tests := []tc{
		{
			name: "profile_name",
			raw: upstream.RawUser{
				ID:       float64(3),
				Username: "09120000001",
				Profile:  &upstream.RawProfile{FirstName: "Sara", LastName: "Ahmadi", Mobile: "09120000002"},
			},
			want: Customer{ID: "3", Name: "Sara Ahmadi", Phone: "09120000002", TotalSpent: "0"},
		},
		{
			name: "first_name_only_is_trimmed",
			raw: upstream.RawUser{
				ID:       "u1",
				Username: "09120000001",
				Profile:  &upstream.RawProfile{FirstName: "Sara"},
			},
			want: Customer{ID: "u1", Name: "Sara", Phone: "09120000001", TotalSpent: "0"},
		},
		{
			name: "falls_back_to_username",
			raw:  upstream.RawUser{ID: "u2", Username: "09120000009"},
			want: Customer{ID: "u2", Name: "09120000009", Phone: "09120000009", TotalSpent: "0"},
		},
		{
			name: "falls_back_to_placeholder",
			raw:  upstream.RawUser{ID: "u3"},
			want: Customer{ID: "u3", Name: "Customer", TotalSpent: "0"},
		},
		{
			name: "nil_profile_never_errors",
			raw:  upstream.RawUser{},
			want: Customer{Name: "Customer", TotalSpent: "0"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CustomerFromRaw(tt.raw)
			if got != tt.want {
				t.Fatalf("customer:\nwant %+v\ngot  %+v", tt.want, got)
			}
		})
	}
}

func TestCustomerCreatePayload(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)

	type tc struct {
		name         string
		in           CustomerInput
		wantFirst    string
		wantLast     string
		wantEmail    string
		wantPassword string
	}

	tests := []tc{
		{
			name:         "full_input",
			in:           CustomerInput{Name: "Sara Bani Ahmadi", Phone: "09120000001", Email: "s@x.ir", Password: "longenough"},
			wantFirst:    "Sara",
			wantLast:     "Bani Ahmadi",
			wantEmail:    "s@x.ir",
			wantPassword: "longenough",
		},
		{
			name:         "single_name_synthesized_email",
			in:           CustomerInput{Name: "Sara", Phone: "09120000001", Password: "longenough"},
			wantFirst:    "Sara",
			wantLast:     "-",
			wantEmail:    "user-1700000000@noa.local",
			wantPassword: "longenough",
		},
		{
			name:         "short_password_replaced_by_default",
			in:           CustomerInput{Name: "Sara", Phone: "09120000001", Password: "short"},
			wantFirst:    "Sara",
			wantLast:     "-",
			wantEmail:    "user-1700000000@noa.local",
			wantPassword: defaultPassword,
		},
		{
			name:         "empty_name",
			in:           CustomerInput{Phone: "09120000001"},
			wantFirst:    "-",
			wantLast:     "-",
			wantEmail:    "user-1700000000@noa.local",
			wantPassword: defaultPassword,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CustomerCreatePayload(tt.in, now)

			if got.Profile.FirstName != tt.wantFirst || got.Profile.LastName != tt.wantLast {
				t.Fatalf("profile: got %+v", got.Profile)
			}

			if got.Email != tt.wantEmail {
				t.Fatalf("email: want %q, got %q", tt.wantEmail, got.Email)
			}

			if got.Password != tt.wantPassword {
				t.Fatalf("password: want %q, got %q", tt.wantPassword, got.Password)
			}

			if got.Username != tt.in.Phone || got.Profile.Mobile != tt.in.Phone {
				t.Fatalf("phone mapping: got %+v", got)
			}
		})
	}
}

func TestCustomerUpdatePayload_PasswordRules(t *testing.T) {
	t.Parallel()

	// Long enough: sent as-is.
	got := CustomerUpdatePayload(CustomerInput{Name: "Sara", Phone: "091", Password: "longenough"})
	if got.Password != "longenough" {
		t.Fatalf("long password: got %q", got.Password)
	}

	// Short: the update never touches the password.
	got = CustomerUpdatePayload(CustomerInput{Name: "Sara", Phone: "091", Password: "short"})
	if got.Password != "" {
		t.Fatalf("short password must be omitted on update, got %q", got.Password)
	}

	// Absent: same.
	got = CustomerUpdatePayload(CustomerInput{Name: "Sara", Phone: "091"})
	if got.Password != "" {
		t.Fatalf("absent password must be omitted on update, got %q", got.Password)
	}
}

func TestAggregateSpend(t *testing.T) {
	t.Parallel()

	orders := []upstream.RawOrder{
		{ID: "o1", UserID: "u1", TotalPaidAmount: float64(100)},
		{ID: "o2", UserID: "u1", TotalPaidAmount: float64(50)},
		{ID: "o3", UserID: "u2", TotalPaidAmount: float64(30)},
		{ID: "o4", UserID: "u3", TotalPaidAmount: "not-a-number"},
		{ID: "o5", UserID: nil, TotalPaidAmount: float64(999)},
	}

	spend := AggregateSpend(orders)

	if spend["u1"] != 150 || spend["u2"] != 30 || spend["u3"] != 0 {
		t.Fatalf("spend: got %v", spend)
	}

	if _, ok := spend[""]; ok {
		t.Fatal("orders without a userId must be skipped")
	}

	customers := []Customer{
		{ID: "u1", Name: "A", TotalSpent: "0"},
		{ID: "u9", Name: "B", TotalSpent: "0"},
	}

	ApplySpend(customers, spend)

	if customers[0].TotalSpent != "150" {
		t.Fatalf("u1 totalSpent: want 150, got %q", customers[0].TotalSpent)
	}

	if customers[1].TotalSpent != "0" {
		t.Fatalf("u9 totalSpent: want 0, got %q", customers[1].TotalSpent)
	}
}

func TestAggregateSpend_NumericIDsKeyedAsStrings(t *testing.T) {
	t.Parallel()

	orders := []upstream.RawOrder{
		{ID: "o1", UserID: float64(12), TotalPaidAmount: float64(40)},
		{ID: "o2", UserID: "12", TotalPaidAmount: float64(60)},
	}

	spend := AggregateSpend(orders)

	if spend["12"] != 100 {
		t.Fatalf("mixed-type ids must accumulate under one key, got %v", spend)
	}
}
