package http

import (
	nethttp "net/http"
	"strconv"

	"github.com/jmlagera/coop-kiosk/internal/utils"
	"github.com/labstack/echo/v4"
)

// GetAccount handles GET /api/mobile/account/
func (h *MemberHandler) GetAccount(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	member, err := h.memberUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{"member": member})
}

// GetAccountSummary handles GET /api/mobile/account/summary/
// Query params: year, month (both optional, default to the current month)
func (h *MemberHandler) GetAccountSummary(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	year := intQueryParam(c, "year", 0)
	month := intQueryParam(c, "month", 0)

	summary, err := h.memberUC.GetAccountSummary(c.Request().Context(), id, year, month)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{"summary": summary})
}

// ListTransactions handles GET /api/mobile/transactions/
// Query params: page (default 1), limit (default 20)
func (h *MemberHandler) ListTransactions(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	page := intQueryParam(c, "page", 1)
	limit := intQueryParam(c, "limit", 20)

	transactions, pagination, err := h.memberUC.ListTransactions(c.Request().Context(), id, page, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{
		"transactions": transactions,
		"pagination":   pagination,
	})
}

// ListBalanceTransactions handles GET /api/mobile/balance-transactions/
// Query params: page (default 1), limit (default 20)
func (h *MemberHandler) ListBalanceTransactions(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	page := intQueryParam(c, "page", 1)
	limit := intQueryParam(c, "limit", 20)

	entries, pagination, err := h.memberUC.ListBalanceTransactions(c.Request().Context(), id, page, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{
		"balance_transactions": entries,
		"pagination":           pagination,
	})
}

// SearchMember handles GET /api/mobile/search-member/
// Query params: rfid (required)
func (h *MemberHandler) SearchMember(c echo.Context) error {
	id, err := memberID(c)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	profile, err := h.memberUC.SearchMemberByRFID(c.Request().Context(), id, c.QueryParam("rfid"))
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{"member": profile})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
