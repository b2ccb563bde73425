package user

import (
	"net/http"

	"github.com/ardalabs/olympiad-engine/internal/controller"
	"github.com/ardalabs/olympiad-engine/internal/middleware"
	"github.com/ardalabs/olympiad-engine/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type OlympiadController struct {
	olympiadService     service.OlympiadService
	registrationService service.RegistrationService
	leaderboardService  service.LeaderboardService
}

func NewOlympiadController(
	os service.OlympiadService,
	rs service.RegistrationService,
	ls service.LeaderboardService,
) *OlympiadController {
	return &OlympiadController{
		olympiadService:     os,
		registrationService: rs,
		leaderboardService:  ls,
	}
}

// List godoc
// @Summary List olympiads
// @Description Returns all olympiads with their schedule-derived status and participant counts.
// @Tags Olympiads
// @Produce json
// @Success 200 {array} dto.OlympiadSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /olympiads [get]
func (c *OlympiadController) List(ctx *gin.Context) {
	summaries, err := c.olympiadService.List()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// Details godoc
// @Summary Get olympiad details
// @Description Full olympiad view including questions (without answers) and prize tiers.
// @Tags Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {object} dto.OlympiadDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /olympiads/{olympiad_id} [get]
func (c *OlympiadController) Details(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	detail, err := c.olympiadService.Details(olympiadID, middleware.UserID(ctx))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// Register godoc
// @Summary Register for an olympiad
// @Description Registers the authenticated user. Paid olympiads require a completed payment first.
// @Tags Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 201 {object} model.Registration
// @Failure 402 {object} dto.ErrorResponse "Payment required"
// @Failure 409 {object} dto.ErrorResponse "Already registered or olympiad full"
// @Security BearerAuth
// @Router /olympiads/{olympiad_id}/register [post]
func (c *OlympiadController) Register(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	userID := middleware.UserID(ctx)
	registration, err := c.registrationService.Register(userID, olympiadID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("userID", userID).Uint("olympiadID", olympiadID).Msg("User registered for olympiad")
	ctx.JSON(http.StatusCreated, registration)
}

// Leaderboard godoc
// @Summary Get the olympiad leaderboard
// @Description Final ranking ordered by score, then completion time. Hidden until results open; staff see it immediately.
// @Tags Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {object} dto.LeaderboardDTO
// @Failure 403 {object} dto.ErrorResponse "Results not published yet"
// @Router /olympiads/{olympiad_id}/leaderboard [get]
func (c *OlympiadController) Leaderboard(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	board, err := c.leaderboardService.Leaderboard(olympiadID, middleware.IsStaff(ctx))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, board)
}

// MyResult godoc
// @Summary Get the caller's own result
// @Description Returns the user's attempt outcome and rank once results open, WAITING_RESULTS before.
// @Tags Olympiads
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {object} dto.MyResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /olympiads/{olympiad_id}/my-result [get]
func (c *OlympiadController) MyResult(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	result, err := c.leaderboardService.MyResult(middleware.UserID(ctx), olympiadID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
