package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/api/metrics"
	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

type HomeHandler struct {
	homeService ports.HomeService
}

func NewHomeHandler(homeService ports.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// ListHomes returns listings matching the query filters.
//
// @Summary      List homes
// @Tags         homes
// @Produce      json
// @Param        city           query  string  false  "Filter by city"
// @Param        property_type  query  string  false  "RESIDENTIAL | CONDO"
// @Param        min_price      query  number  false  "Minimum price"
// @Param        max_price      query  number  false  "Maximum price"
// @Success      200  {array}   homeResponse
// @Router       /homes [get]
func (h *HomeHandler) ListHomes(c echo.Context) error {
	filter := ports.HomeFilter{
		City:         c.QueryParam("city"),
		PropertyType: domain.PropertyType(c.QueryParam("property_type")),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = f
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = f
		}
	}

	homes, err := h.homeService.ListHomes(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]homeResponse, 0, len(homes))
	for i := range homes {
		resp = append(resp, toHomeResponse(&homes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHome returns a single listing by id.
//
// @Summary      Get a home
// @Tags         homes
// @Produce      json
// @Param        id   path      string  true  "Home ID"
// @Success      200  {object}  homeResponse
// @Failure      404  {object}  errorResponse
// @Router       /homes/{id} [get]
func (h *HomeHandler) GetHome(c echo.Context) error {
	home, err := h.homeService.GetHome(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// CreateHome creates a listing owned by the authenticated realtor.
//
// @Summary      Create a home
// @Tags         homes
// @Accept       json
// @Produce      json
// @Param        body  body      createHomeRequest  true  "Listing details"
// @Success      201   {object}  homeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Security     BearerAuth
// @Router       /homes [post]
func (h *HomeHandler) CreateHome(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	home, err := h.homeService.CreateHome(c.Request().Context(), ports.CreateHomeInput{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		LandSizeSqm:  req.LandSizeSqm,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		PropertyType: domain.PropertyType(req.PropertyType),
		ImageURLs:    req.ImageURLs,
		RealtorID:    actor.ID,
	})
	if err != nil {
		return err
	}

	metrics.HomesCreatedTotal.WithLabelValues(string(home.PropertyType)).Inc()
	return c.JSON(http.StatusCreated, toHomeResponse(home))
}

// UpdateHome applies a partial update to a listing. Realtors may only update
// their own listings; admins may update any.
//
// @Summary      Update a home
// @Tags         homes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Home ID"
// @Param        body  body      updateHomeRequest  true  "Fields to update"
// @Success      200   {object}  homeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     BearerAuth
// @Router       /homes/{id} [put]
func (h *HomeHandler) UpdateHome(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateHomeInput{
		Address:     req.Address,
		City:        req.City,
		Price:       req.Price,
		LandSizeSqm: req.LandSizeSqm,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		input.PropertyType = &pt
	}

	home, err := h.homeService.UpdateHome(c.Request().Context(), c.Param("id"), input, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// DeleteHome removes a listing under the same ownership rules as UpdateHome.
//
// @Summary      Delete a home
// @Tags         homes
// @Param        id  path  string  true  "Home ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /homes/{id} [delete]
func (h *HomeHandler) DeleteHome(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.homeService.DeleteHome(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
