package customer

import "time"

// Customer represents a registered bank customer.
type Customer struct {
	ID          string
	NationalID  string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Nationality string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
