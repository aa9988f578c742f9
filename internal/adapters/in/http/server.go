// Package http exposes the admin console operations over HTTP. It
// coordinates between echo handlers and the application use cases.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the admin console HTTP surface.
type Server struct {
	// Command handlers
	assignDriverHandler  commands.AssignDriverCommandHandler
	reviewPayoutHandler  commands.ReviewPayoutCommandHandler
	settlePayoutsHandler commands.SettlePayoutsCommandHandler

	// Query handlers
	listOrdersHandler  queries.ListOrdersQueryHandler
	trackOrderHandler  queries.TrackOrderQueryHandler
	listPayoutsHandler queries.ListPayoutRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	assignDriverHandler commands.AssignDriverCommandHandler,
	reviewPayoutHandler commands.ReviewPayoutCommandHandler,
	settlePayoutsHandler commands.SettlePayoutsCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	listPayoutsHandler queries.ListPayoutRequestsQueryHandler,
) *Server {
	return &Server{
		assignDriverHandler:  assignDriverHandler,
		reviewPayoutHandler:  reviewPayoutHandler,
		settlePayoutsHandler: settlePayoutsHandler,
		listOrdersHandler:    listOrdersHandler,
		trackOrderHandler:    trackOrderHandler,
		listPayoutsHandler:   listPayoutsHandler,
	}
}

// RegisterRoutes attaches the admin console routes to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id/tracking", s.TrackOrder)
	api.POST("/orders/:id/assign-driver", s.AssignDriver)
	api.GET("/payout-requests", s.ListPayoutRequests)
	api.POST("/payout-requests/:id/review", s.ReviewPayout)
	api.POST("/payout-requests/settle", s.SettlePayouts)
}

// errorDTO is the error body of every non-2xx response.
type errorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorDTO{Code: status, Message: err.Error()})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.QueryParam("customerId"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredErrorWithCause("customerId", err))
	}

	status := order.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		if status, err = order.StatusFromString(raw); err != nil {
			return writeError(ctx, err)
		}
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	query, err := queries.NewListOrdersQuery(customerID, status, page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]orderSummaryDTO, 0, len(result.Items))
	for _, summary := range result.Items {
		items = append(items, orderSummaryFromModel(summary))
	}

	return ctx.JSON(http.StatusOK, pageDTO[orderSummaryDTO]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// TrackOrder handles GET /api/v1/orders/:id/tracking.
func (s *Server) TrackOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredErrorWithCause("id", err))
	}

	query, err := queries.NewTrackOrderQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingFromModel(result))
}

// AssignDriver handles POST /api/v1/orders/:id/assign-driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredErrorWithCause("id", err))
	}

	var body struct {
		DriverID string `json:"driverId"`
	}
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorDTO{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredErrorWithCause("driverId", err))
	}

	cmd, err := commands.NewAssignDriverCommand(id, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListPayoutRequests handles GET /api/v1/payout-requests.
func (s *Server) ListPayoutRequests(ctx echo.Context) error {
	var err error

	kind := payout.KindUnknown
	if raw := ctx.QueryParam("kind"); raw != "" {
		if kind, err = payout.KindFromString(raw); err != nil {
			return writeError(ctx, err)
		}
	}

	status := payout.StatusUnknown
	if raw := ctx.QueryParam("status"); raw != "" {
		if status, err = payout.RequestStatusFromString(raw); err != nil {
			return writeError(ctx, err)
		}
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	query, err := queries.NewListPayoutRequestsQuery(kind, status, page, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listPayoutsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]payoutSummaryDTO, 0, len(result.Items))
	for _, summary := range result.Items {
		items = append(items, payoutSummaryFromModel(summary))
	}

	return ctx.JSON(http.StatusOK, pageDTO[payoutSummaryDTO]{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// ReviewPayout handles POST /api/v1/payout-requests/:id/review.
func (s *Server) ReviewPayout(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsRequiredErrorWithCause("id", err))
	}

	var body struct {
		Approve bool `json:"approve"`
	}
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorDTO{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewReviewPayoutCommand(id, body.Approve)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reviewPayoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SettlePayouts handles POST /api/v1/payout-requests/settle.
func (s *Server) SettlePayouts(ctx echo.Context) error {
	settled, err := s.settlePayoutsHandler.Handle(
		ctx.Request().Context(), commands.NewSettlePayoutsCommand())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{"settled": settled})
}
