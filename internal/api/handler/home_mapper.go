package handler

import (
	"github.com/casalista/marketplace-api/internal/core/domain"
)

// Transport-layer mapping helpers. Response types are intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

func toHomeResponse(h *domain.Home) homeResponse {
	urls := make([]string, 0, len(h.Images))
	for _, img := range h.Images {
		urls = append(urls, img.URL)
	}
	return homeResponse{
		ID:           h.ID,
		Address:      h.Address,
		City:         h.City,
		Price:        h.Price,
		LandSizeSqm:  h.LandSizeSqm,
		Bedrooms:     h.Bedrooms,
		Bathrooms:    h.Bathrooms,
		PropertyType: string(h.PropertyType),
		ImageURLs:    urls,
		RealtorID:    h.RealtorID,
		CreatedAt:    h.CreatedAt,
	}
}

func toInquiryResponse(i *domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:        i.ID,
		HomeID:    i.HomeID,
		BuyerID:   i.BuyerID,
		Message:   i.Message,
		Notified:  i.Notified,
		CreatedAt: i.CreatedAt,
	}
}
