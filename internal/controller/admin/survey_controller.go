package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/internal/controller"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/middleware"
	"github.com/lshigami/Quorum/internal/service"
)

// SurveyController serves the owner side of surveys. Every route sits behind
// middleware.RequireAuth.
type SurveyController struct {
	surveyService service.SurveyService
}

func NewSurveyController(surveyService service.SurveyService) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

func ownerID(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.OwnerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return id, ok
}

// ListSurveys godoc
// @Summary (Owner) List my surveys
// @Tags Owner - Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SurveySummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	surveys, err := c.surveyService.ListSurveys(ctx.Request.Context(), owner)
	if err != nil {
		controller.RespondError(ctx, "ListSurveys", err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary (Owner) Get one of my surveys
// @Description Returns the survey with its questions, choices and rating aggregates.
// @Tags Owner - Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyResponse
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	survey, err := c.surveyService.GetSurvey(ctx.Request.Context(), owner, id)
	if err != nil {
		controller.RespondError(ctx, "GetSurvey", err)
		return
	}
	ctx.JSON(http.StatusOK, survey)
}

// CreateSurvey godoc
// @Summary (Owner) Create a survey
// @Description Creates an inactive draft with a fresh access code and the given question tree.
// @Tags Owner - Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey body dto.SurveyCreateRequest true "Survey with optional questions"
// @Success 201 {object} dto.SurveyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid survey payload"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req dto.SurveyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "CreateSurvey", err)
		return
	}
	survey, err := c.surveyService.CreateSurvey(ctx.Request.Context(), owner, req)
	if err != nil {
		controller.RespondError(ctx, "CreateSurvey", err)
		return
	}
	ctx.JSON(http.StatusCreated, survey)
}

// UpdateSurvey godoc
// @Summary (Owner) Update a survey
// @Description Partial update of scalar fields. A "questions" array replaces the whole question tree and discards its votes.
// @Tags Owner - Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param survey body dto.SurveyUpdateRequest true "Fields to change"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid survey payload"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{id} [patch]
func (c *SurveyController) UpdateSurvey(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SurveyUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "UpdateSurvey", err)
		return
	}
	survey, err := c.surveyService.UpdateSurvey(ctx.Request.Context(), owner, id, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateSurvey", err)
		return
	}
	ctx.JSON(http.StatusOK, survey)
}

// ReplaceQuestions godoc
// @Summary (Owner) Replace the question tree
// @Description Deletes every question, choice and rating of the survey and creates the given tree with fresh ids.
// @Tags Owner - Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param questions body []dto.QuestionInput true "New question tree"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid question tree"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{id}/questions [put]
func (c *SurveyController) ReplaceQuestions(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var tree []dto.QuestionInput
	if err := ctx.ShouldBindJSON(&tree); err != nil {
		controller.BindError(ctx, "ReplaceQuestions", err)
		return
	}
	survey, err := c.surveyService.ReplaceQuestions(ctx.Request.Context(), owner, id, tree)
	if err != nil {
		controller.RespondError(ctx, "ReplaceQuestions", err)
		return
	}
	ctx.JSON(http.StatusOK, survey)
}

// DeleteSurvey godoc
// @Summary (Owner) Delete a survey
// @Description Only inactive surveys can be deleted. Questions, choices and ratings go with it.
// @Tags Owner - Surveys
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.surveyService.DeleteSurvey(ctx.Request.Context(), owner, id); err != nil {
		controller.RespondError(ctx, "DeleteSurvey", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetResults godoc
// @Summary (Owner) Survey results
// @Description Per-question vote counts and rating distribution.
// @Tags Owner - Surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.SurveyResultsDTO
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{id}/results [get]
func (c *SurveyController) GetResults(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	results, err := c.surveyService.GetResults(ctx.Request.Context(), owner, id)
	if err != nil {
		controller.RespondError(ctx, "GetResults", err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// RegisterRoutes mounts the owner survey routes behind requireAuth.
func (c *SurveyController) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	surveys := api.Group("/surveys", requireAuth)
	surveys.GET("", c.ListSurveys)
	surveys.POST("", c.CreateSurvey)
	surveys.GET("/:id", c.GetSurvey)
	surveys.PATCH("/:id", c.UpdateSurvey)
	surveys.DELETE("/:id", c.DeleteSurvey)
	surveys.PUT("/:id/questions", c.ReplaceQuestions)
	surveys.GET("/:id/results", c.GetResults)
}
