package models

// Customer is a sale/transfer counterpart (dealer or walk-in retail).
type Customer struct {
	ID    string       `json:"id" validate:"required"`
	Name  string       `json:"name" validate:"required"`
	Phone string       `json:"phone,omitempty"`
	Type  CustomerType `json:"type" validate:"required,oneof=DEALER RETAIL"`
}

// CustomerUpdate carries partial fields for UpdateCustomer.
type CustomerUpdate struct {
	Name  *string       `json:"name"`
	Phone *string       `json:"phone"`
	Type  *CustomerType `json:"type"`
}
