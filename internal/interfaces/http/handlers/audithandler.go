package handlers

import (
	"github.com/gin-gonic/gin"

	"numbers/internal/application/audit/usecases"
	"numbers/internal/shared/constants"
	"numbers/internal/shared/logger"
	"numbers/internal/shared/utils"
)

type AuditHandler struct {
	listAuditsUC *usecases.ListAssignmentAuditsUseCase
	logger       logger.Interface
}

func NewAuditHandler(listAuditsUC *usecases.ListAssignmentAuditsUseCase) *AuditHandler {
	return &AuditHandler{
		listAuditsUC: listAuditsUC,
		logger:       logger.NewLogger(),
	}
}

func (h *AuditHandler) ListAssignmentAudits(c *gin.Context) {
	// Admin tokens may search across vendors; everyone else is pinned
	// to their own vendor.
	vendorID := c.Query("vendor_id")
	ok := true
	if !c.GetBool(constants.ContextKeyAdmin) || vendorID != "" {
		if vendorID, ok = resolveVendorScope(c, vendorID); !ok {
			return
		}
	}

	query := usecases.ListAssignmentAuditsQuery{
		AssignmentID: c.Query("assignment_id"),
		NumberID:     c.Query("number_id"),
		VendorID:     vendorID,
		AccountID:    c.Query("account_id"),
		PageSize:     intQuery(c, "page_size"),
		Token:        c.Query("token"),
	}

	if query.CreatedBefore, ok = timeQuery(c, "created_before"); !ok {
		return
	}
	if query.CreatedAfter, ok = timeQuery(c, "created_after"); !ok {
		return
	}
	if query.DeletedBefore, ok = timeQuery(c, "deleted_before"); !ok {
		return
	}
	if query.DeletedAfter, ok = timeQuery(c, "deleted_after"); !ok {
		return
	}

	result, err := h.listAuditsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
