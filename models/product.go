package models

// Product is a sellable RO purifier model. The caller supplies the id; ids
// must be unique across the catalog.
type Product struct {
	ID    string `json:"id" validate:"required"`
	Model string `json:"model" validate:"required"`
	Brand string `json:"brand"`
	Specs string `json:"specs"`
}

// ProductUpdate carries partial fields for UpdateProduct. Nil leaves the
// field unchanged.
type ProductUpdate struct {
	Model *string `json:"model"`
	Brand *string `json:"brand"`
	Specs *string `json:"specs"`
}
