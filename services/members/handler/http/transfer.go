package http

import (
	"fmt"
	nethttp "net/http"

	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
	"github.com/labstack/echo/v4"
)

// RequestTransferOTP handles POST /api/mobile/fund-transfer/request-otp/
func (h *MemberHandler) RequestTransferOTP(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	var req models.FundTransferRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid JSON format")
	}

	issued, err := h.memberUC.RequestTransferOTP(c.Request().Context(), id, &req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{
		"message":    fmt.Sprintf("OTP has been sent to your email (%s). Please check your inbox.", issued.Email),
		"expires_in": issued.ExpiresIn,
	})
}

// VerifyTransferOTP handles POST /api/mobile/fund-transfer/verify-otp/
func (h *MemberHandler) VerifyTransferOTP(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid JSON format")
	}

	result, err := h.memberUC.VerifyTransferOTP(c.Request().Context(), id, req.OTPCode)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{
		"message":  fmt.Sprintf("Successfully transferred %s to %s", result.Amount.StringFixed(2), result.Recipient.FullName),
		"transfer": result,
	})
}
