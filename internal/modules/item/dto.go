package item

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Available   *bool  `json:"available" binding:"required"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
