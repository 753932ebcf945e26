package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"numbers/internal/application/number/usecases"
	"numbers/internal/shared/constants"
	"numbers/internal/shared/logger"
	"numbers/internal/shared/patch"
	"numbers/internal/shared/utils"
)

type NumberHandler struct {
	registerUC     *usecases.RegisterNumberUseCase
	getUC          *usecases.GetNumberUseCase
	listUC         *usecases.ListNumbersUseCase
	updateUC       *usecases.UpdateNumberUseCase
	deleteUC       *usecases.DeleteNumberUseCase
	assignUC       *usecases.AssignNumberUseCase
	reassignUC     *usecases.ReassignNumberUseCase
	disassociateUC *usecases.DisassociateNumberUseCase
	getAssignUC    *usecases.GetAssignmentUseCase
	updateAssignUC *usecases.UpdateAssignmentUseCase
	listAssignUC   *usecases.ListNumberAssignmentsUseCase
	logger         logger.Interface
}

func NewNumberHandler(
	registerUC *usecases.RegisterNumberUseCase,
	getUC *usecases.GetNumberUseCase,
	listUC *usecases.ListNumbersUseCase,
	updateUC *usecases.UpdateNumberUseCase,
	deleteUC *usecases.DeleteNumberUseCase,
	assignUC *usecases.AssignNumberUseCase,
	reassignUC *usecases.ReassignNumberUseCase,
	disassociateUC *usecases.DisassociateNumberUseCase,
	getAssignUC *usecases.GetAssignmentUseCase,
	updateAssignUC *usecases.UpdateAssignmentUseCase,
	listAssignUC *usecases.ListNumberAssignmentsUseCase,
) *NumberHandler {
	return &NumberHandler{
		registerUC:     registerUC,
		getUC:          getUC,
		listUC:         listUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		assignUC:       assignUC,
		reassignUC:     reassignUC,
		disassociateUC: disassociateUC,
		getAssignUC:    getAssignUC,
		updateAssignUC: updateAssignUC,
		listAssignUC:   listAssignUC,
		logger:         logger.NewLogger(),
	}
}

type RegisterNumberRequest struct {
	PhoneNumber       string   `json:"phone_number" binding:"required"`
	ProviderID        string   `json:"provider_id" binding:"required"`
	Country           string   `json:"country" binding:"required"`
	Type              string   `json:"type" binding:"required"`
	Classification    string   `json:"classification" binding:"required"`
	Capabilities      []string `json:"capabilities" binding:"required,min=1"`
	DedicatedReceiver bool     `json:"dedicated_receiver"`
}

type UpdateNumberRequest struct {
	ProviderID        patch.Field[string]    `json:"provider_id"`
	Classification    patch.Field[string]    `json:"classification"`
	Capabilities      patch.Field[[]string]  `json:"capabilities"`
	DedicatedReceiver patch.Field[bool]      `json:"dedicated_receiver"`
	AvailableAfter    patch.Field[time.Time] `json:"available_after"`
	Status            patch.Field[string]    `json:"status"`
}

type AssignNumberRequest struct {
	VendorID    string            `json:"vendor_id"`
	AccountID   string            `json:"account_id" binding:"required"`
	CallbackURL *string           `json:"callback_url" validate:"omitempty,url"`
	Metadata    map[string]string `json:"metadata"`
	Label       *string           `json:"label" validate:"omitempty,max=255"`
}

type UpdateAssignmentRequest struct {
	CallbackURL patch.Field[string]            `json:"callback_url"`
	Metadata    patch.Field[map[string]string] `json:"metadata"`
	Label       patch.Field[string]            `json:"label"`
}

func (h *NumberHandler) RegisterNumber(c *gin.Context) {
	var req RegisterNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register number", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterNumberCommand{
		PhoneNumber:       req.PhoneNumber,
		ProviderID:        req.ProviderID,
		Country:           req.Country,
		Type:              req.Type,
		Classification:    req.Classification,
		Capabilities:      req.Capabilities,
		DedicatedReceiver: req.DedicatedReceiver,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *NumberHandler) GetNumber(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetNumberQuery{
		NumberID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) ListNumbers(c *gin.Context) {
	query := usecases.ListNumbersQuery{
		Country:        c.Query("country"),
		Classification: c.Query("classification"),
		Capability:     c.Query("capability"),
		Matching:       c.Query("matching"),
		PageSize:       intQuery(c, "page_size"),
		Token:          c.Query("token"),
	}

	if raw := c.Query("assigned"); raw != "" {
		assigned, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "assigned must be a boolean")
			return
		}
		query.Assigned = &assigned
	}

	availableBy, ok := timeQuery(c, "available_by")
	if !ok {
		return
	}
	query.AvailableBy = availableBy

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) UpdateNumber(c *gin.Context) {
	var req UpdateNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update number", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateNumberCommand{
		NumberID:          c.Param("id"),
		ProviderID:        req.ProviderID,
		Classification:    req.Classification,
		Capabilities:      req.Capabilities,
		DedicatedReceiver: req.DedicatedReceiver,
		AvailableAfter:    req.AvailableAfter,
		Status:            req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) DeleteNumber(c *gin.Context) {
	err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteNumberCommand{
		NumberID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *NumberHandler) AssignNumber(c *gin.Context) {
	var req AssignNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for assign number", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	vendorID, ok := resolveVendorScope(c, req.VendorID)
	if !ok {
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), usecases.AssignNumberCommand{
		NumberID:    c.Param("id"),
		VendorID:    vendorID,
		AccountID:   req.AccountID,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
		Label:       req.Label,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *NumberHandler) ReassignNumber(c *gin.Context) {
	var req AssignNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reassign number", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	vendorID, ok := resolveVendorScope(c, req.VendorID)
	if !ok {
		return
	}

	result, err := h.reassignUC.Execute(c.Request.Context(), usecases.ReassignNumberCommand{
		NumberID:    c.Param("id"),
		VendorID:    vendorID,
		AccountID:   req.AccountID,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
		Label:       req.Label,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) DisassociateNumber(c *gin.Context) {
	result, err := h.disassociateUC.Execute(c.Request.Context(), usecases.DisassociateNumberCommand{
		NumberID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) GetAssignment(c *gin.Context) {
	result, err := h.getAssignUC.Execute(c.Request.Context(), usecases.GetAssignmentQuery{
		NumberID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) UpdateAssignment(c *gin.Context) {
	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update assignment", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	result, err := h.updateAssignUC.Execute(c.Request.Context(), usecases.UpdateAssignmentCommand{
		NumberID:    c.Param("id"),
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
		Label:       req.Label,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NumberHandler) ListNumberAssignments(c *gin.Context) {
	vendorID, ok := resolveVendorScope(c, c.Query("vendor_id"))
	if !ok {
		return
	}

	accountID := c.Query("account_id")
	if accountID == "" {
		accountID = c.GetString(constants.ContextKeyAccountID)
	}

	result, err := h.listAssignUC.Execute(c.Request.Context(), usecases.ListNumberAssignmentsQuery{
		VendorID:  vendorID,
		AccountID: accountID,
		PageSize:  intQuery(c, "page_size"),
		Token:     c.Query("token"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
