package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gudangkita/serial-validation/server/domain/entities"
	"github.com/gudangkita/serial-validation/server/internal/auth"
	"github.com/gudangkita/serial-validation/server/usecase"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, tokens *auth.Service, validation *usecase.ValidationService, logger *zap.Logger) {
	// Liveness check
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Serial Validation API is live!")
	})

	e.POST("/generateToken", func(c echo.Context) error {
		return generateToken(c, tokens, logger)
	})

	e.POST("/ValidateSrNo", func(c echo.Context) error {
		return validateSerial(c, tokens, validation, logger)
	})
}

// generateToken issues a bearer token for the configured credential
// pair. Missing credentials are a 400, a wrong pair is a 401.
func generateToken(c echo.Context, tokens *auth.Service, logger *zap.Logger) error {
	var req GenerateTokenRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind token request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	token, err := tokens.IssueToken(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn("Token issuance rejected",
				zap.String("username", req.Username))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		}
		logger.Error("Failed to sign token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, GenerateTokenResponse{
		Token:            token,
		ExpiresInSeconds: tokens.TTLSeconds(),
	})
}

// validateSerial gate-checks the bearer token then delegates to the
// validation service. Every outcome, token failures included, returns
// HTTP 200 with the status encoded in the body.
func validateSerial(c echo.Context, tokens *auth.Service, validation *usecase.ValidationService, logger *zap.Logger) error {
	requestID := uuid.New().String()

	token := bearerToken(c)
	if token == "" {
		logger.Warn("Validation rejected: missing token",
			zap.String("request_id", requestID))
		return c.JSON(http.StatusOK, ValidateResponse{
			ResponseStatus:  string(entities.StatusInvalidToken),
			ResponseMessage: entities.MessageInvalidToken,
		})
	}
	if _, err := tokens.VerifyToken(token); err != nil {
		logger.Warn("Validation rejected: invalid token",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusOK, ValidateResponse{
			ResponseStatus:  string(entities.StatusInvalidToken),
			ResponseMessage: entities.MessageInvalidToken,
		})
	}

	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind validation request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusOK, ValidateResponse{
			ResponseStatus:  string(entities.StatusMissingFields),
			ResponseMessage: entities.MessageMissingFields,
		})
	}

	result := validation.ValidateSerial(c.Request().Context(), usecase.ValidateRequest{
		SerialNumber: req.SerialNumber,
		MaterialCode: req.MaterialCode,
		DealerCode:   req.DealerCode,
		AccessKey:    req.AccessKey,
	})

	logger.Info("Validation request handled",
		zap.String("request_id", requestID),
		zap.String("serial_number", req.SerialNumber),
		zap.String("status", string(result.Status)))

	return c.JSON(http.StatusOK, ValidateResponse{
		ResponseStatus:  string(result.Status),
		ResponseMessage: result.Message,
	})
}

// bearerToken extracts the token from the Authorization header only.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
