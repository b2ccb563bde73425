package admin

import (
	"net/http"

	"github.com/ardalabs/olympiad-engine/internal/controller"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminOlympiadController struct {
	olympiadService service.OlympiadService
	rewardService   service.RewardService
}

func NewAdminOlympiadController(os service.OlympiadService, rs service.RewardService) *AdminOlympiadController {
	return &AdminOlympiadController{olympiadService: os, rewardService: rs}
}

// Create godoc
// @Summary (Admin) Create an olympiad
// @Description Creates an olympiad in DRAFT with its questions and prize tiers. A unique slug is derived from the title.
// @Tags Admin - Olympiads
// @Accept json
// @Produce json
// @Param olympiad body dto.CreateOlympiadRequest true "Olympiad definition"
// @Success 201 {object} model.Olympiad
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /admin/olympiads [post]
func (c *AdminOlympiadController) Create(ctx *gin.Context) {
	var req dto.CreateOlympiadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	olympiad, err := c.olympiadService.Create(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, olympiad)
}

// Publish godoc
// @Summary (Admin) Publish olympiad results
// @Description Pins the olympiad to PUBLISHED and opens the leaderboard. Triggers reward distribution when auto-reward is enabled.
// @Tags Admin - Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {object} model.Olympiad
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/olympiads/{olympiad_id}/publish [post]
func (c *AdminOlympiadController) Publish(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	olympiad, err := c.olympiadService.Publish(olympiadID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("olympiadID", olympiadID).Msg("Olympiad published")
	ctx.JSON(http.StatusOK, olympiad)
}

// ReplaceQuestions godoc
// @Summary (Admin) Replace the question set
// @Description Swaps all questions of an olympiad. Rejected once the olympiad has left DRAFT and has registrations.
// @Tags Admin - Olympiads
// @Accept json
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Param questions body dto.ReplaceQuestionsRequest true "Full question set"
// @Success 204 "Questions replaced"
// @Failure 409 {object} dto.ErrorResponse "Questions are immutable"
// @Security BearerAuth
// @Router /admin/olympiads/{olympiad_id}/questions [put]
func (c *AdminOlympiadController) ReplaceQuestions(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	var req dto.ReplaceQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.olympiadService.ReplaceQuestions(olympiadID, req); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DistributeRewards godoc
// @Summary (Admin) Distribute rewards
// @Description Runs reward distribution for a published olympiad. Idempotent: a completed run returns a conflict, a failed run can be retried without double-granting.
// @Tags Admin - Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} dto.ErrorResponse "Already distributed or distribution in progress"
// @Security BearerAuth
// @Router /admin/olympiads/{olympiad_id}/distribute [post]
func (c *AdminOlympiadController) DistributeRewards(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	if err := c.rewardService.Distribute(olympiadID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("olympiadID", olympiadID).Msg("Reward distribution completed")
	ctx.JSON(http.StatusOK, gin.H{"status": "COMPLETED"})
}
