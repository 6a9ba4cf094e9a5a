package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audiens/internal/core/apperror"
	"audiens/internal/core/id"
	"audiens/internal/domain/filter"
	"audiens/internal/domain/targetgroup"
	"audiens/internal/infrastructure/http/v1/dto"
)

// TargetGroupHandler serves the target group contract routes.
type TargetGroupHandler struct {
	*BaseHandler
	service *targetgroup.Service
}

// NewTargetGroupHandler creates a target group handler.
func NewTargetGroupHandler(base *BaseHandler, service *targetgroup.Service) *TargetGroupHandler {
	return &TargetGroupHandler{BaseHandler: base, service: service}
}

// Create handles POST /TargetGroup/CreateTargetGroup.
// The contract response is {isSuccess, id} or {isSuccess: false,
// errorMessage}: business failures are 200 responses whose errorMessage the
// client shows verbatim, so only transport and internal faults produce a
// non-2xx status.
func (h *TargetGroupHandler) Create(c *gin.Context) {
	var payload filter.WirePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, dto.CreateTargetGroupResponse{
			IsSuccess:    false,
			ErrorMessage: "invalid request body",
		})
		return
	}

	tg, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.HTTPStatus < http.StatusInternalServerError {
			c.JSON(http.StatusOK, dto.CreateTargetGroupResponse{
				IsSuccess:    false,
				ErrorMessage: appErr.Message,
			})
			return
		}
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateTargetGroupResponse{
		IsSuccess: true,
		ID:        tg.ID.String(),
	})
}

// List handles GET /TargetGroup/GetTargetGroups.
func (h *TargetGroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.TargetGroupSummary, 0, len(groups))
	for _, tg := range groups {
		out = append(out, dto.FromTargetGroup(tg))
	}
	h.OK(c, out)
}

// Get handles GET /TargetGroup/GetTargetGroupById/:id.
func (h *TargetGroupHandler) Get(c *gin.Context) {
	groupID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid target group id"))
		return
	}

	tg, err := h.service.Get(c.Request.Context(), groupID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromTargetGroupFull(*tg))
}

// Delete handles DELETE /TargetGroup/DeleteTargetGroup/:id.
func (h *TargetGroupHandler) Delete(c *gin.Context) {
	groupID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid target group id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Members handles GET /TargetGroup/GetTargetGroupMembers/:id: evaluates a
// stored group against the employee population.
func (h *TargetGroupHandler) Members(c *gin.Context) {
	groupID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid target group id"))
		return
	}

	preview, err := h.service.Members(c.Request.Context(), groupID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, preview)
}

// Preview handles POST /TargetGroup/PreviewTargetGroup: evaluates the
// submitted payload against the employee population without persisting.
func (h *TargetGroupHandler) Preview(c *gin.Context) {
	var payload filter.WirePayload
	if !h.BindJSON(c, &payload) {
		return
	}

	preview, err := h.service.PreviewMembers(c.Request.Context(), payload)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, preview)
}
