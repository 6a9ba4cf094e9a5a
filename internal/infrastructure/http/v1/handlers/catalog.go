package handlers

import (
	"github.com/gin-gonic/gin"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/filter"
	"audiens/internal/domain/refdata"
	"audiens/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves the attribute catalog and reference values to the
// builder UI.
type CatalogHandler struct {
	*BaseHandler
	refs *refdata.Store
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(base *BaseHandler, refs *refdata.Store) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, refs: refs}
}

// Attributes handles GET /api/v1/catalog/attributes.
func (h *CatalogHandler) Attributes(c *gin.Context) {
	out := make([]dto.AttributeResponse, 0, len(filter.Catalog))
	for _, attr := range filter.Catalog {
		ops := filter.LegalOperators(attr)
		codes := make([]string, 0, len(ops))
		for _, op := range ops {
			codes = append(codes, string(op))
		}
		out = append(out, dto.AttributeResponse{
			ID:        attr.ID,
			Kind:      string(attr.Kind),
			Operators: codes,
			HasValues: h.refs.HasValues(attr.ID),
		})
	}
	h.OK(c, out)
}

// Values handles GET /api/v1/catalog/attributes/:id/values. An attribute
// whose list failed to load returns an empty list, never an error.
func (h *CatalogHandler) Values(c *gin.Context) {
	attrID := c.Param("id")
	if _, ok := filter.AttributeByID(attrID); !ok {
		h.Error(c, apperror.NewNotFound("attribute", attrID))
		return
	}

	values := h.refs.Values(attrID)
	out := make([]dto.ReferenceValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, dto.ReferenceValueResponse{ID: v.ID, Name: v.Name})
	}
	h.OK(c, out)
}
