package handler

// ratingRequest is the body of both submit and update: a single 1..5
// integer. The range is enforced here, at the boundary; the ledger trusts
// validated input.
type ratingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// searchStoresQuery carries the optional filter/sort parameters of the
// personalized store listing.
type searchStoresQuery struct {
	Name      string `query:"name"`
	Address   string `query:"address"`
	SortBy    string `query:"sortBy"    validate:"omitempty,oneof=name address rating"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
}
