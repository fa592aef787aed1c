package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// StoreOwnerHandler handles the store-owner surface: the aggregate
// dashboard and the ratings-received view.
type StoreOwnerHandler struct {
	stores ports.StoreService
}

func NewStoreOwnerHandler(stores ports.StoreService) *StoreOwnerHandler {
	return &StoreOwnerHandler{stores: stores}
}

// Dashboard handles GET /store-owner/dashboard.
//
// @Summary      Store owner dashboard
// @Tags         store-owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardResult
// @Failure      404  {object}  errorResponse
// @Router       /store-owner/dashboard [get]
func (h *StoreOwnerHandler) Dashboard(c echo.Context) error {
	ownerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	dashboard, err := h.stores.Dashboard(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Ratings handles GET /store-owner/ratings.
//
// @Summary      Ratings received by the owner's store
// @Tags         store-owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.StoreRating
// @Failure      404  {object}  errorResponse
// @Router       /store-owner/ratings [get]
func (h *StoreOwnerHandler) Ratings(c echo.Context) error {
	ownerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.stores.RatingsReceived(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	if ratings == nil {
		ratings = []domain.StoreRating{}
	}
	return c.JSON(http.StatusOK, ratings)
}
