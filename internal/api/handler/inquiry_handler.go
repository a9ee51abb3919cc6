package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casalista/marketplace-api/internal/core/ports"
)

type InquiryHandler struct {
	inquiryService ports.InquiryService
}

func NewInquiryHandler(inquiryService ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiry records a buyer message on a listing and queues a realtor
// notification.
//
// @Summary      Send an inquiry about a home
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Home ID"
// @Param        body  body      createInquiryRequest  true  "Message"
// @Success      201   {object}  inquiryResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     BearerAuth
// @Router       /homes/{id}/inquiries [post]
func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	buyer, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inquiry, err := h.inquiryService.CreateInquiry(c.Request().Context(), c.Param("id"), buyer, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toInquiryResponse(inquiry))
}

// ListInquiries returns the messages on a listing. Restricted to the owning
// realtor and admins.
//
// @Summary      List inquiries for a home
// @Tags         inquiries
// @Produce      json
// @Param        id   path      string  true  "Home ID"
// @Success      200  {array}   inquiryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /homes/{id}/inquiries [get]
func (h *InquiryHandler) ListInquiries(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	inquiries, err := h.inquiryService.ListInquiries(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	resp := make([]inquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		resp = append(resp, toInquiryResponse(&inquiries[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
