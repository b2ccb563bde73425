package user

import (
	"net/http"

	"github.com/ardalabs/olympiad-engine/internal/controller"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/ardalabs/olympiad-engine/internal/service"
	"github.com/gin-gonic/gin"
)

type AwardController struct {
	awardService service.AwardService
}

func NewAwardController(as service.AwardService) *AwardController {
	return &AwardController{awardService: as}
}

// RecordAddress godoc
// @Summary Record a delivery address for a physical award
// @Description Called by the address-capture channel once a contacted winner shares shipping details.
// @Tags Awards
// @Accept json
// @Produce json
// @Param award_id path int true "Award ID"
// @Param address body dto.DeliveryAddressRequest true "Delivery address"
// @Success 200 {object} dto.AwardDTO
// @Failure 409 {object} dto.ErrorResponse "Award is not awaiting an address"
// @Security BearerAuth
// @Router /awards/{award_id}/address [post]
func (c *AwardController) RecordAddress(ctx *gin.Context) {
	awardID, ok := controller.PathID(ctx, "award_id")
	if !ok {
		return
	}
	var req dto.DeliveryAddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	award, err := c.awardService.RecordDeliveryAddress(awardID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, award)
}
