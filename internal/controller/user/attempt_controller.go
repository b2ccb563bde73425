package user

import (
	"net/http"

	"github.com/ardalabs/olympiad-engine/internal/controller"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/middleware"
	"github.com/ardalabs/olympiad-engine/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(as service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: as}
}

// Start godoc
// @Summary Start an attempt
// @Description Creates a fresh attempt, or returns a conflict if one was already submitted and no retries remain. Stale in-progress attempts past the deadline are replaced.
// @Tags Attempts
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Olympiad not running"
// @Failure 403 {object} dto.ErrorResponse "Not registered"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Security BearerAuth
// @Router /olympiads/{olympiad_id}/attempts/start [post]
func (c *AttemptController) Start(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	userID := middleware.UserID(ctx)
	resp, err := c.attemptService.Start(userID, olympiadID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("userID", userID).Uint("olympiadID", olympiadID).Msg("Attempt started")
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAnswer godoc
// @Summary Submit one answer
// @Description Stores or overwrites the answer for a question of the caller's in-progress attempt.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Param answer body dto.SubmitAnswerRequest true "Question ID and answer value"
// @Success 200 {object} dto.AttemptDTO
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Security BearerAuth
// @Router /olympiads/{olympiad_id}/attempts/answer [post]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	attempt, err := c.attemptService.SubmitAnswer(middleware.UserID(ctx), olympiadID, req.QuestionID, req.Value)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// Finish godoc
// @Summary Finish an attempt
// @Description Scores the attempt and transitions it to COMPLETED, or DISQUALIFIED when the reported tab switches exceed the limit. Finishing an already-finished attempt returns the stored result.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Param finish body dto.FinishAttemptRequest true "Reported tab switch count"
// @Success 200 {object} dto.AttemptDTO
// @Failure 403 {object} dto.ErrorResponse "Not registered"
// @Security BearerAuth
// @Router /olympiads/{olympiad_id}/attempts/finish [post]
func (c *AttemptController) Finish(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	var req dto.FinishAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	attempt, err := c.attemptService.Finish(middleware.UserID(ctx), olympiadID, req.TabSwitches)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}
