package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/metrics"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// UserHandler handles the normal-user surface: the personalized store
// listing and rating submission/update.
type UserHandler struct {
	stores  ports.StoreService
	ratings ports.RatingService
}

func NewUserHandler(stores ports.StoreService, ratings ports.RatingService) *UserHandler {
	return &UserHandler{stores: stores, ratings: ratings}
}

// ListStores handles GET /user/stores.
//
// @Summary      List stores with the viewer's own rating
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        name       query     string  false  "Filter by name (substring)"
// @Param        address    query     string  false  "Filter by address (substring)"
// @Param        sortBy     query     string  false  "name, address or rating"
// @Param        sortOrder  query     string  false  "ASC or DESC"
// @Success      200        {array}   domain.StoreListing
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /user/stores [get]
func (h *UserHandler) ListStores(c echo.Context) error {
	viewerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var q searchStoresQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listings, err := h.stores.ListForViewer(c.Request().Context(), viewerID, ports.ListingFilter{
		Name:      q.Name,
		Address:   q.Address,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}
	if listings == nil {
		listings = []domain.StoreListing{}
	}
	return c.JSON(http.StatusOK, listings)
}

// SubmitRating handles POST /user/stores/:storeId/rating.
//
// @Summary      Submit a rating for a store
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string         true  "Store id"
// @Param        body     body      ratingRequest  true  "Rating value (1-5)"
// @Success      201      {object}  domain.Rating
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /user/stores/{storeId}/rating [post]
func (h *UserHandler) SubmitRating(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratings.Submit(c.Request().Context(), userID, c.Param("storeId"), req.Rating)
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(rating.Rating)).Inc()
	return c.JSON(http.StatusCreated, rating)
}

// UpdateRating handles PATCH /user/stores/:storeId/rating.
//
// @Summary      Update an existing rating for a store
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string         true  "Store id"
// @Param        body     body      ratingRequest  true  "New rating value (1-5)"
// @Success      200      {object}  domain.Rating
// @Failure      404      {object}  errorResponse
// @Router       /user/stores/{storeId}/rating [patch]
func (h *UserHandler) UpdateRating(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratings.Update(c.Request().Context(), userID, c.Param("storeId"), req.Rating)
	if err != nil {
		return err
	}

	metrics.RatingsUpdatedTotal.WithLabelValues(strconv.Itoa(rating.Rating)).Inc()
	return c.JSON(http.StatusOK, rating)
}
