package domain

type Person struct {
	ID            string `json:"id" yaml:"id"`
	FirstName     string `json:"first_name" yaml:"first_name"`
	LastName      string `json:"last_name" yaml:"last_name"`
	Email         string `json:"email,omitempty" yaml:"email"`
	Phone         string `json:"phone,omitempty" yaml:"phone"`
	LoyaltyPoints int    `json:"loyalty_points" yaml:"loyalty_points"`
}

// Guest carries the details used to find-or-create a Person during booking.
type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}
