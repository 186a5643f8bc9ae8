package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/internal/controller"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/lshigami/Quorum/internal/service"
)

// QuestionController edits single questions and choices of a draft survey.
type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Owner) Add a question to a draft survey
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateRequest true "Question with optional choices"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid question"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req dto.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "CreateQuestion", err)
		return
	}
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), owner, req)
	if err != nil {
		controller.RespondError(ctx, "CreateQuestion", err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Owner) Change a question's text
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateRequest true "New text"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /questions/{id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "UpdateQuestion", err)
		return
	}
	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), owner, id, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateQuestion", err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Owner) Delete a question and its choices
// @Tags Owner - Questions
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), owner, id); err != nil {
		controller.RespondError(ctx, "DeleteQuestion", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateChoice godoc
// @Summary (Owner) Add a choice to a question
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param choice body dto.ChoiceCreateRequest true "Choice"
// @Success 201 {object} dto.ChoiceResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /choices [post]
func (c *QuestionController) CreateChoice(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	var req dto.ChoiceCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "CreateChoice", err)
		return
	}
	choice, err := c.questionService.CreateChoice(ctx.Request.Context(), owner, req)
	if err != nil {
		controller.RespondError(ctx, "CreateChoice", err)
		return
	}
	ctx.JSON(http.StatusCreated, choice)
}

// UpdateChoice godoc
// @Summary (Owner) Change a choice's text
// @Tags Owner - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Choice ID"
// @Param choice body dto.ChoiceUpdateRequest true "New text"
// @Success 200 {object} dto.ChoiceResponse
// @Failure 404 {object} dto.ErrorResponse "Choice not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /choices/{id} [patch]
func (c *QuestionController) UpdateChoice(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChoiceUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "UpdateChoice", err)
		return
	}
	choice, err := c.questionService.UpdateChoice(ctx.Request.Context(), owner, id, req)
	if err != nil {
		controller.RespondError(ctx, "UpdateChoice", err)
		return
	}
	ctx.JSON(http.StatusOK, choice)
}

// DeleteChoice godoc
// @Summary (Owner) Delete a choice
// @Tags Owner - Questions
// @Security BearerAuth
// @Param id path int true "Choice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Choice not found"
// @Failure 409 {object} dto.ErrorResponse "Survey is active"
// @Router /choices/{id} [delete]
func (c *QuestionController) DeleteChoice(ctx *gin.Context) {
	owner, ok := ownerID(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteChoice(ctx.Request.Context(), owner, id); err != nil {
		controller.RespondError(ctx, "DeleteChoice", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *QuestionController) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	questions := api.Group("/questions", requireAuth)
	questions.POST("", c.CreateQuestion)
	questions.PATCH("/:id", c.UpdateQuestion)
	questions.DELETE("/:id", c.DeleteQuestion)

	choices := api.Group("/choices", requireAuth)
	choices.POST("", c.CreateChoice)
	choices.PATCH("/:id", c.UpdateChoice)
	choices.DELETE("/:id", c.DeleteChoice)
}
