package handler

// listStoresQuery carries optional filters for the admin store listing.
type listStoresQuery struct {
	Name      string `query:"name"`
	Email     string `query:"email"`
	Address   string `query:"address"`
	SortBy    string `query:"sortBy"    validate:"omitempty,oneof=name email address createdAt"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
}

// listUsersQuery carries optional filters for the admin user listing.
type listUsersQuery struct {
	Name      string `query:"name"`
	Email     string `query:"email"`
	Address   string `query:"address"`
	Role      string `query:"role"      validate:"omitempty,oneof=admin normalUser storeOwner"`
	SortBy    string `query:"sortBy"    validate:"omitempty,oneof=name email address role createdAt"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
}

// createStoreRequest is the admin store-creation body. Bounds follow the
// platform's store rules: long descriptive names, bounded addresses.
type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,min=20,max=60"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID string `json:"ownerId" validate:"required"`
}

// createUserRequest is the admin user-creation body. Unlike public
// registration the role is chosen explicitly.
type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"  validate:"required,max=400"`
	Role     string `json:"role"     validate:"required,oneof=admin normalUser storeOwner"`
}
