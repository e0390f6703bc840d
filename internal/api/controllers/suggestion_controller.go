package controllers

import (
	"github.com/gin-gonic/gin"

	"foodybuddy/internal/models/request_models"
	"foodybuddy/internal/services"
	"foodybuddy/pkg/utils"
)

type SuggestionController struct {
	suggestionService services.SuggestionServiceInterface
}

func NewSuggestionController(suggestionService services.SuggestionServiceInterface) *SuggestionController {
	return &SuggestionController{
		suggestionService: suggestionService,
	}
}

// Suggest godoc
// @Summary Food suggestions
// @Description Expand the query into dishes, search the knowledge base and rank the hits for the user
// @Tags Suggestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SuggestionRequest true "Query, limit (1-100) and weather temperature (1-100)"
// @Success 200 {object} utils.APIResponse{data=response_models.SuggestionsResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /suggestions [post]
func (s *SuggestionController) Suggest(c *gin.Context) {
	var req request_models.SuggestionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := s.suggestionService.Suggest(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}
