package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet-api/internal/application/usecase/paymentmethod"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/dto"
)

// PaymentMethodController handles payment method endpoints.
type PaymentMethodController struct {
	listUseCase   *paymentmethod.ListPaymentMethodsUseCase
	createUseCase *paymentmethod.CreatePaymentMethodUseCase
}

// NewPaymentMethodController creates a new payment method controller instance.
func NewPaymentMethodController(
	listUseCase *paymentmethod.ListPaymentMethodsUseCase,
	createUseCase *paymentmethod.CreatePaymentMethodUseCase,
) *PaymentMethodController {
	return &PaymentMethodController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /payment-methods requests.
func (c *PaymentMethodController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondInternalError(ctx, "Failed to retrieve payment methods", "failed to list payment methods", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentMethodListResponse(output))
}

// Create handles POST /payment-methods requests.
func (c *PaymentMethodController) Create(ctx *gin.Context) {
	var req dto.CreatePaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), paymentmethod.CreatePaymentMethodInput{
		Name:  req.Name,
		Type:  entity.PaymentMethodType(req.Type),
		Color: req.Color,
	})
	if err != nil {
		var pmErr *domainerror.PaymentMethodError
		if errors.As(err, &pmErr) {
			statusCode := http.StatusBadRequest
			if pmErr.Code == domainerror.ErrCodePaymentMethodNameExists {
				statusCode = http.StatusConflict
			}
			ctx.JSON(statusCode, dto.ErrorResponse{
				Error: pmErr.Message,
				Code:  string(pmErr.Code),
			})
			return
		}

		respondInternalError(ctx, "An internal error occurred", "payment method request failed", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(output.PaymentMethod))
}
