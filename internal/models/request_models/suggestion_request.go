package request_models

type SuggestionRequest struct {
	PartialQuery string   `json:"partial_query" binding:"required"`
	Limit        *int     `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
	Temperature  *float64 `json:"temperature,omitempty" binding:"omitempty,min=1,max=100"`
}
