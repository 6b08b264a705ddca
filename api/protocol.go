package api

import "github.com/justnitesh531/orderflow/domain"

const addItemMaxSize = 16 * 1024 // 16 KiB

// Idempotency-Key request header on POST /api/draft/items.
const idempotencyKeyHeader = "Idempotency-Key"

// POST /api/draft/items request body
type addItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	AddedBy  string `json:"addedBy"`
}

// POST /api/draft/items response body
type addItemResponse struct {
	Item      *domain.Item `json:"item,omitempty"`
	Duplicate bool         `json:"duplicate,omitempty"`
}

// GET /api/draft response body
type draftResponse struct {
	Status domain.Status          `json:"status"`
	Items  []domain.Item          `json:"items"`
	Groups []domain.CategoryGroup `json:"groups"`
}

// DELETE /api/draft/items/... response body
type removeItemResponse struct {
	Removed domain.Item `json:"removed"`
}
