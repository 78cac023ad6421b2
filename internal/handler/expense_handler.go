package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"spendtrack/internal/errors"
	"spendtrack/internal/middleware"
	"spendtrack/internal/model"
	"spendtrack/internal/service"
)

// ExpenseHandler handles the expense CRUD and query endpoints. Every route is
// behind the authentication gate, so a principal is always present.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents an expense create/update payload.
type ExpenseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Category    string  `json:"category"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description"`
}

func (r *ExpenseRequest) toModel() (*model.Expense, error) {
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &model.Expense{
		Title:       r.Title,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        date,
		Description: r.Description,
	}, nil
}

func (h *ExpenseHandler) bindExpense(c echo.Context) (*model.Expense, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	expense, err := req.toModel()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	return expense, nil
}

func expenseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid expense id")
	}
	return uint(id), nil
}

func expenseError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	expense, err := h.bindExpense(c)
	if err != nil {
		return err
	}

	created, err := h.expenseService.Create(c.Request().Context(), middleware.Principal(c), expense)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List the caller's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Expense
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.expenseService.ListByOwner(c.Request().Context(), middleware.Principal(c).ID)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// Get godoc
// @Summary Get one expense by id
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} model.Expense
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.GetByID(c.Request().Context(), middleware.Principal(c).ID, id)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Update godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}
	updates, err := h.bindExpense(c)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.Update(c.Request().Context(), middleware.Principal(c).ID, id, updates)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := expenseID(c)
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), middleware.Principal(c).ID, id); err != nil {
		return expenseError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Filter godoc
// @Summary Filter the caller's expenses
// @Description Filters by optional inclusive date range and exact category.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param dateFrom query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param dateTo query string false "End date (YYYY-MM-DD, inclusive)"
// @Param category query string false "Exact category match"
// @Success 200 {array} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses/filter [get]
func (h *ExpenseHandler) Filter(c echo.Context) error {
	dateFrom, err := optionalDate(c.QueryParam("dateFrom"))
	if err != nil {
		return expenseError(err)
	}
	dateTo, err := optionalDate(c.QueryParam("dateTo"))
	if err != nil {
		return expenseError(err)
	}

	expenses, err := h.expenseService.Filter(
		c.Request().Context(),
		middleware.Principal(c).ID,
		dateFrom,
		dateTo,
		c.QueryParam("category"),
	)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// MonthlySummary godoc
// @Summary Month-bucketed totals for the caller
// @Description Maps YYYY-MM keys to summed amounts; empty months are absent.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]float64
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses/monthly-summary [get]
func (h *ExpenseHandler) MonthlySummary(c echo.Context) error {
	summary, err := h.expenseService.MonthlySummary(c.Request().Context(), middleware.Principal(c).ID)
	if err != nil {
		return expenseError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func optionalDate(raw string) (*model.Date, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return nil, errors.ErrInvalidDate
	}
	return &date, nil
}
