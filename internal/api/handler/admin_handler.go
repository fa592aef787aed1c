package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/metrics"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// AdminHandler handles the admin surface: stats, listings, user details,
// and store/user creation.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/dashboard/stats.
//
// @Summary      Platform totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  errorResponse
// @Router       /admin/dashboard/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListStores handles GET /admin/stores.
//
// @Summary      List stores with full aggregates
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name       query     string  false  "Filter by name (substring)"
// @Param        email      query     string  false  "Filter by email (substring)"
// @Param        address    query     string  false  "Filter by address (substring)"
// @Param        sortBy     query     string  false  "name, email, address or createdAt"
// @Param        sortOrder  query     string  false  "ASC or DESC"
// @Success      200        {array}   ports.StoreSummary
// @Failure      403        {object}  errorResponse
// @Router       /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	var q listStoresQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stores, err := h.admin.ListStores(c.Request().Context(), ports.ListStoresFilter{
		Name:      q.Name,
		Email:     q.Email,
		Address:   q.Address,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}
	if stores == nil {
		stores = []ports.StoreSummary{}
	}
	return c.JSON(http.StatusOK, stores)
}

// ListUsers handles GET /admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name       query     string  false  "Filter by name (substring)"
// @Param        email      query     string  false  "Filter by email (substring)"
// @Param        address    query     string  false  "Filter by address (substring)"
// @Param        role       query     string  false  "Filter by role"
// @Param        sortBy     query     string  false  "name, email, address, role or createdAt"
// @Param        sortOrder  query     string  false  "ASC or DESC"
// @Success      200        {array}   domain.User
// @Failure      403        {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	users, err := h.admin.ListUsers(c.Request().Context(), ports.ListUsersFilter{
		Name:      q.Name,
		Email:     q.Email,
		Address:   q.Address,
		Role:      domain.Role(q.Role),
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// UserDetails handles GET /admin/users/:id.
//
// @Summary      User details, with owned stores for store owners
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  ports.UserDetails
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) UserDetails(c echo.Context) error {
	details, err := h.admin.UserDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// CreateStore handles POST /admin/stores.
//
// @Summary      Create a store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.admin.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	metrics.StoresCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, store)
}

// CreateUser handles POST /admin/users.
//
// @Summary      Create a user with an explicit role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, user)
}
