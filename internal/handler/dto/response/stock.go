package response

import (
	"pinmarket/internal/usecase"

	"github.com/google/uuid"
)

type StockResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int64     `json:"available"`
	Cached    bool      `json:"cached"`
}

func FromStockInfo(info *usecase.StockInfo) *StockResponse {
	return &StockResponse{
		ProductID: info.ProductID,
		Available: info.Available,
		Cached:    info.Cached,
	}
}

type RestockResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Added     int       `json:"added"`
}
