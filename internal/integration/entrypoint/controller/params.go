package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/wallet-api/internal/integration/entrypoint/middleware"
)

// parseIDParam reads a positive integer path parameter, answering 400 otherwise.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid ID format",
			Code:  string(domainerror.ErrCodeInvalidID),
		})
		return 0, false
	}
	return id, true
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(ctx *gin.Context, name string) (*time.Time, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	date, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid date format. Use YYYY-MM-DD",
			Code:    string(domainerror.ErrCodeInvalidQuery),
			Details: name,
		})
		return nil, false
	}
	return &date, true
}

// parseInt64Query reads an optional positive integer query parameter.
func parseInt64Query(ctx *gin.Context, name string) (*int64, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid ID format",
			Code:    string(domainerror.ErrCodeInvalidQuery),
			Details: name,
		})
		return nil, false
	}
	return &id, true
}

// parsePagination reads page and limit; malformed values are ignored.
func parsePagination(ctx *gin.Context) (page, limit int) {
	if p, err := strconv.Atoi(ctx.Query("page")); err == nil {
		page = p
	}
	if l, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		limit = l
	}
	return page, limit
}

// respondInternalError logs err with the request logger and answers 500.
// Details carries the request ID so a failure report can be matched to the logs.
func respondInternalError(ctx *gin.Context, message, logMessage string, err error) {
	middleware.LoggerFromContext(ctx).ErrorContext(ctx.Request.Context(), logMessage, "error", err)

	requestID, _ := middleware.GetRequestIDFromContext(ctx)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   message,
		Details: requestID,
	})
}
