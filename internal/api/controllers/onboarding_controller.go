package controllers

import (
	"github.com/gin-gonic/gin"

	"foodybuddy/internal/models/request_models"
	"foodybuddy/internal/services"
	"foodybuddy/pkg/utils"
)

type OnboardingController struct {
	onboardingService services.OnboardingServiceInterface
}

func NewOnboardingController(onboardingService services.OnboardingServiceInterface) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
	}
}

// GetQuestions godoc
// @Summary List onboarding questions
// @Tags Onboarding
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.OnboardingQuestionsResponse}
// @Router /onboarding/questions [get]
func (o *OnboardingController) GetQuestions(c *gin.Context) {
	utils.RespondSuccess(c, o.onboardingService.GetQuestions(), "")
}

// SubmitAnswers godoc
// @Summary Submit onboarding answers
// @Description Validation failures are returned with success=false and HTTP 200
// @Tags Onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.OnboardingAnswersRequest true "Answers"
// @Success 200 {object} utils.APIResponse{data=response_models.OnboardingAnswersResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /onboarding/answers [post]
func (o *OnboardingController) SubmitAnswers(c *gin.Context) {
	var req request_models.OnboardingAnswersRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := o.onboardingService.SubmitAnswers(c.Request.Context(), c.GetString("user_id"), req.ToAnswers())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, resp.Message)
}

// GetStatus godoc
// @Summary Onboarding completion status
// @Tags Onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.OnboardingStatusResponse}
// @Router /onboarding/status [get]
func (o *OnboardingController) GetStatus(c *gin.Context) {
	status, err := o.onboardingService.GetStatus(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, status.Message)
}

// GetPreferences godoc
// @Summary Stored onboarding answers
// @Tags Onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.UserPreferencesResponse}
// @Router /onboarding/preferences [get]
func (o *OnboardingController) GetPreferences(c *gin.Context) {
	prefs, err := o.onboardingService.GetPreferences(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefs, "")
}
