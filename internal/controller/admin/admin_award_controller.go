package admin

import (
	"net/http"

	"github.com/ardalabs/olympiad-engine/internal/controller"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminAwardController struct {
	awardService service.AwardService
}

func NewAdminAwardController(as service.AwardService) *AdminAwardController {
	return &AdminAwardController{awardService: as}
}

// ListByOlympiad godoc
// @Summary (Admin) List physical awards of an olympiad
// @Description Shows each physical award with its delivery pipeline status.
// @Tags Admin - Awards
// @Produce json
// @Param olympiad_id path int true "Olympiad ID"
// @Success 200 {array} dto.AwardDTO
// @Security BearerAuth
// @Router /admin/olympiads/{olympiad_id}/awards [get]
func (c *AdminAwardController) ListByOlympiad(ctx *gin.Context) {
	olympiadID, ok := controller.PathID(ctx, "olympiad_id")
	if !ok {
		return
	}
	awards, err := c.awardService.ListByOlympiad(olympiadID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, awards)
}

// UpdateStatus godoc
// @Summary (Admin) Advance an award's delivery status
// @Description Marks an award with a recorded address as SHIPPED.
// @Tags Admin - Awards
// @Accept json
// @Produce json
// @Param award_id path int true "Award ID"
// @Param status body dto.UpdateAwardStatusRequest true "Target status"
// @Success 200 {object} dto.AwardDTO
// @Failure 409 {object} dto.ErrorResponse "Award has no recorded address yet"
// @Security BearerAuth
// @Router /admin/awards/{award_id}/status [put]
func (c *AdminAwardController) UpdateStatus(ctx *gin.Context) {
	awardID, ok := controller.PathID(ctx, "award_id")
	if !ok {
		return
	}
	var req dto.UpdateAwardStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	award, err := c.awardService.MarkShipped(awardID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, award)
}
