package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/usecase/installment"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/dto"
)

// InstallmentController handles installment purchase endpoints.
type InstallmentController struct {
	listUseCase   *installment.ListInstallmentGroupsUseCase
	statsUseCase  *installment.GetInstallmentStatsUseCase
	createUseCase *installment.CreateInstallmentPurchaseUseCase
	payUseCase    *installment.PayInstallmentUseCase
	deleteUseCase *installment.DeleteInstallmentPurchaseUseCase
}

// NewInstallmentController creates a new installment controller instance.
func NewInstallmentController(
	listUseCase *installment.ListInstallmentGroupsUseCase,
	statsUseCase *installment.GetInstallmentStatsUseCase,
	createUseCase *installment.CreateInstallmentPurchaseUseCase,
	payUseCase *installment.PayInstallmentUseCase,
	deleteUseCase *installment.DeleteInstallmentPurchaseUseCase,
) *InstallmentController {
	return &InstallmentController{
		listUseCase:   listUseCase,
		statsUseCase:  statsUseCase,
		createUseCase: createUseCase,
		payUseCase:    payUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /installments requests.
func (c *InstallmentController) List(ctx *gin.Context) {
	filter, ok := parseInstallmentFilter(ctx)
	if !ok {
		return
	}

	input := installment.ListInstallmentGroupsInput{FilterInput: filter}
	input.Page, input.Limit = parsePagination(ctx)

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentGroupListResponse(output))
}

// Stats handles GET /installments/stats requests.
func (c *InstallmentController) Stats(ctx *gin.Context) {
	filter, ok := parseInstallmentFilter(ctx)
	if !ok {
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), installment.GetInstallmentStatsInput{FilterInput: filter})
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentStatsResponse(output.Stats))
}

// Create handles POST /installments requests.
func (c *InstallmentController) Create(ctx *gin.Context) {
	var req dto.CreateInstallmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingInstallmentFields),
		})
		return
	}

	firstDueDate, err := time.Parse(dto.DateLayout, req.FirstDueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidInstallmentDate),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), installment.CreateInstallmentPurchaseInput{
		Description:      req.Description,
		TotalAmount:      decimal.NewFromFloat(req.TotalAmount),
		InstallmentCount: req.InstallmentCount,
		PaidInstallments: req.PaidInstallments,
		Type:             entity.TransactionType(req.Type),
		CategoryID:       req.CategoryID,
		PaymentMethodID:  req.PaymentMethodID,
		FirstDueDate:     firstDueDate,
		Notes:            req.Notes,
	})
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInstallmentGroupResponse(output.Group))
}

// Pay handles POST /installments/:id/pay requests.
func (c *InstallmentController) Pay(ctx *gin.Context) {
	installmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// The body is optional
	var req dto.PayInstallmentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
				Code:  string(domainerror.ErrCodeInvalidPaidInstallments),
			})
			return
		}
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), installment.PayInstallmentInput{
		InstallmentID:    installmentID,
		PaidInstallments: req.PaidInstallments,
	})
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentProgressResponse(output.Progress))
}

// Delete handles DELETE /installments/:id requests.
func (c *InstallmentController) Delete(ctx *gin.Context) {
	installmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), installment.DeleteInstallmentPurchaseInput{
		InstallmentID: installmentID,
	})
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteInstallmentResponse{DeletedTransactions: output.DeletedTransactions})
}

// parseInstallmentFilter reads startDate, endDate, type, paymentMethodId and categoryId.
func parseInstallmentFilter(ctx *gin.Context) (installment.FilterInput, bool) {
	var filter installment.FilterInput
	var ok bool

	if filter.StartDate, ok = parseDateQuery(ctx, "startDate"); !ok {
		return filter, false
	}
	if filter.EndDate, ok = parseDateQuery(ctx, "endDate"); !ok {
		return filter, false
	}
	if filter.PaymentMethodID, ok = parseInt64Query(ctx, "paymentMethodId"); !ok {
		return filter, false
	}
	if filter.CategoryID, ok = parseInt64Query(ctx, "categoryId"); !ok {
		return filter, false
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		if !txnType.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "type must be 'expense' or 'income'",
				Code:    string(domainerror.ErrCodeInvalidQuery),
				Details: "type",
			})
			return filter, false
		}
		filter.Type = &txnType
	}

	return filter, true
}

// handleInstallmentError handles installment errors and returns appropriate HTTP responses.
func (c *InstallmentController) handleInstallmentError(ctx *gin.Context, err error) {
	var insErr *domainerror.InstallmentError
	if errors.As(err, &insErr) {
		ctx.JSON(c.getStatusCodeForInstallmentError(insErr.Code), dto.ErrorResponse{
			Error: insErr.Message,
			Code:  string(insErr.Code),
		})
		return
	}

	respondInternalError(ctx, "An internal error occurred", "installment request failed", err)
}

// getStatusCodeForInstallmentError maps installment error codes to HTTP status codes.
func (c *InstallmentController) getStatusCodeForInstallmentError(code domainerror.InstallmentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInstallmentNotFound,
		domainerror.ErrCodeInstallmentCategory,
		domainerror.ErrCodeInstallmentPaymentMethod:
		return http.StatusNotFound
	case domainerror.ErrCodeInstallmentCompleted:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidInstallmentCount,
		domainerror.ErrCodeInvalidInstallmentAmount,
		domainerror.ErrCodeInvalidPaidInstallments,
		domainerror.ErrCodeInvalidInstallmentDate,
		domainerror.ErrCodeInstallmentDescription,
		domainerror.ErrCodeMissingInstallmentFields,
		domainerror.ErrCodeInvalidInstallmentType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
