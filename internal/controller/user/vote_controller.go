package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/internal/controller"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/service"
)

// VoteController serves the anonymous voter endpoints.
type VoteController struct {
	surveyService service.SurveyService
	voteService   service.VoteSubmissionService
	ratingService service.RatingService
}

func NewVoteController(
	surveyService service.SurveyService,
	voteService service.VoteSubmissionService,
	ratingService service.RatingService,
) *VoteController {
	return &VoteController{surveyService: surveyService, voteService: voteService, ratingService: ratingService}
}

// VoteAccess godoc
// @Summary Fetch a survey by access code
// @Description Public read of an active survey with its questions and choices.
// @Tags Voting
// @Produce json
// @Param code query string true "Survey access code"
// @Success 200 {object} dto.SurveyResponse
// @Failure 400 {object} dto.ErrorResponse "Missing code"
// @Failure 404 {object} dto.ErrorResponse "No active survey with this code"
// @Router /surveys/vote_access [get]
func (c *VoteController) VoteAccess(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Query parameter 'code' is required"})
		return
	}
	survey, err := c.surveyService.GetByAccessCode(ctx.Request.Context(), code)
	if err != nil {
		controller.RespondError(ctx, "VoteAccess", err)
		return
	}
	ctx.JSON(http.StatusOK, survey)
}

// SubmitVotes godoc
// @Summary Submit one vote per question
// @Description The batch must answer every question of the active survey exactly once. Entries missing question_id or choice_id are ignored. Nothing is counted unless the whole batch is valid.
// @Tags Voting
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param votes body dto.SubmitVotesRequest true "Answers and reCAPTCHA token"
// @Success 200 {object} dto.SubmitVotesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid batch or failed anti-abuse check"
// @Failure 404 {object} dto.ErrorResponse "Survey not found or inactive"
// @Router /surveys/{id}/submit_votes [post]
func (c *VoteController) SubmitVotes(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	// A bad body is judged by the service after the survey and gate checks.
	var req dto.SubmitVotesRequest
	bindErr := ctx.ShouldBindJSON(&req)
	resp, err := c.voteService.SubmitVotes(ctx.Request.Context(), id, service.VoteBatch{
		Answers:        dto.DecodeVoteAnswers(req.Answers),
		RecaptchaToken: req.RecaptchaToken,
		ClientIP:       ctx.ClientIP(),
		Malformed:      bindErr,
	})
	if err != nil {
		controller.RespondError(ctx, "SubmitVotes", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// VoteForChoice godoc
// @Summary Add a single vote to a choice
// @Description Legacy endpoint without survey checks.
// @Tags Voting
// @Produce json
// @Param id path int true "Choice ID"
// @Success 200 {object} dto.ChoiceVoteResponse
// @Failure 404 {object} dto.ErrorResponse "Choice not found"
// @Router /choices/{id}/vote [post]
func (c *VoteController) VoteForChoice(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.voteService.VoteForChoice(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, "VoteForChoice", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Rate godoc
// @Summary Rate questions of a survey
// @Description Up to five 1-5 star ratings. The batch is applied atomically.
// @Tags Voting
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param ratings body dto.RateRequest true "Ratings"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ratings"
// @Failure 404 {object} dto.ErrorResponse "Survey or question not found"
// @Router /surveys/{id}/rate [post]
func (c *VoteController) Rate(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "Rate", err)
		return
	}
	resp, err := c.ratingService.Rate(ctx.Request.Context(), id, req.Answers, ctx.ClientIP())
	if err != nil {
		controller.RespondError(ctx, "Rate", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *VoteController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/surveys/vote_access", c.VoteAccess)
	api.POST("/surveys/:id/submit_votes", c.SubmitVotes)
	api.POST("/surveys/:id/rate", c.Rate)
	api.POST("/choices/:id/vote", c.VoteForChoice)
}
