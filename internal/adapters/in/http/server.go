// Package http exposes the dispatch use cases over a JSON API. Handlers stay
// thin: parse and validate input, build a command or query, invoke its
// handler, and map domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/capacity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON payload returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for registering a new order.
type CreateOrderRequest struct {
	DestinationCity string `json:"destination_city"`
	Street          string `json:"street"`
	RequiredSpace   int    `json:"required_space"`
}

// CreateRailTripRequest is the payload for scheduling a rail trip.
type CreateRailTripRequest struct {
	TrainID       string    `json:"train_id"`
	RouteID       string    `json:"route_id"`
	Departure     time.Time `json:"departure"`
	Arrival       time.Time `json:"arrival"`
	TotalCapacity int       `json:"total_capacity"`
}

// CreateRoadRunRequest is the payload for scheduling a road run. Creating a
// run is the three-way reservation: truck, driver, and assistant are booked
// for the window together or not at all.
type CreateRoadRunRequest struct {
	RouteID       string    `json:"route_id"`
	TruckID       string    `json:"truck_id"`
	DriverID      string    `json:"driver_id"`
	AssistantID   string    `json:"assistant_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalCapacity int       `json:"total_capacity"`
}

// AllocateRailRequest selects the trip for an order's rail leg.
type AllocateRailRequest struct {
	TripID string `json:"trip_id"`
}

// AllocateRoadRequest selects the run for an order's road leg.
type AllocateRoadRequest struct {
	RunID string `json:"run_id"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// LegResponse describes a committed shipment leg.
type LegResponse struct {
	LegID      string `json:"leg_id"`
	OrderID    string `json:"order_id"`
	Stage      string `json:"stage"`
	ResourceID string `json:"resource_id"`
	Space      int    `json:"space"`
}

// CandidateTripResponse is one feasible rail trip for an order.
type CandidateTripResponse struct {
	TripID    string    `json:"trip_id"`
	RouteName string    `json:"route_name"`
	Stops     []string  `json:"stops"`
	Departure time.Time `json:"departure"`
	Remaining int       `json:"remaining"`
}

// CandidateRunResponse is one feasible road run for an order.
type CandidateRunResponse struct {
	RunID     string    `json:"run_id"`
	RouteName string    `json:"route_name"`
	Cities    []string  `json:"cities"`
	Start     time.Time `json:"start"`
	Remaining int       `json:"remaining"`
}

// UnallocatedOrderResponse is one order awaiting allocation work.
type UnallocatedOrderResponse struct {
	ID              string `json:"id"`
	DestinationCity string `json:"destination_city"`
	Street          string `json:"street"`
	RequiredSpace   int    `json:"required_space"`
	Status          string `json:"status"`
}

// Server wires the HTTP routes to the application's command and query
// handlers.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	createRailTripHandler   commands.CreateRailTripCommandHandler
	createRoadRunHandler    commands.CreateRoadRunCommandHandler
	cancelRoadRunHandler    commands.CancelRoadRunCommandHandler
	allocateRailHandler     commands.AllocateRailCommandHandler
	allocateRoadHandler     commands.AllocateRoadCommandHandler
	cancelAllocationHandler commands.CancelAllocationCommandHandler

	// Query handlers
	candidateRailTripsHandler queries.CandidateRailTripsQueryHandler
	candidateRoadRunsHandler  queries.CandidateRoadRunsQueryHandler
	unallocatedOrdersHandler  queries.GetUnallocatedOrdersQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createRailTripHandler commands.CreateRailTripCommandHandler,
	createRoadRunHandler commands.CreateRoadRunCommandHandler,
	cancelRoadRunHandler commands.CancelRoadRunCommandHandler,
	allocateRailHandler commands.AllocateRailCommandHandler,
	allocateRoadHandler commands.AllocateRoadCommandHandler,
	cancelAllocationHandler commands.CancelAllocationCommandHandler,
	candidateRailTripsHandler queries.CandidateRailTripsQueryHandler,
	candidateRoadRunsHandler queries.CandidateRoadRunsQueryHandler,
	unallocatedOrdersHandler queries.GetUnallocatedOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		confirmOrderHandler:       confirmOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		createRailTripHandler:     createRailTripHandler,
		createRoadRunHandler:      createRoadRunHandler,
		cancelRoadRunHandler:      cancelRoadRunHandler,
		allocateRailHandler:       allocateRailHandler,
		allocateRoadHandler:       allocateRoadHandler,
		cancelAllocationHandler:   cancelAllocationHandler,
		candidateRailTripsHandler: candidateRailTripsHandler,
		candidateRoadRunsHandler:  candidateRoadRunsHandler,
		unallocatedOrdersHandler:  unallocatedOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/allocations/rail", s.AllocateRail)
	api.POST("/orders/:id/allocations/road", s.AllocateRoad)
	api.GET("/orders/unallocated", s.GetUnallocatedOrders)

	api.POST("/rail-trips", s.CreateRailTrip)
	api.GET("/rail-trips/candidates", s.GetCandidateRailTrips)

	api.POST("/road-runs", s.CreateRoadRun)
	api.DELETE("/road-runs/:id", s.CancelRoadRun)
	api.GET("/road-runs/candidates", s.GetCandidateRoadRuns)

	api.DELETE("/allocations/:legId", s.CancelAllocation)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order in Pending.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.DestinationCity, req.Street, req.RequiredSpace)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the order and
// compensates any committed legs.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateRailTrip handles POST /api/v1/rail-trips.
func (s *Server) CreateRailTrip(ctx echo.Context) error {
	var req CreateRailTripRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	trainID, err := parseUUID(req.TrainID)
	if err != nil {
		return badRequest(ctx, "Invalid train id")
	}
	routeID, err := parseUUID(req.RouteID)
	if err != nil {
		return badRequest(ctx, "Invalid route id")
	}

	tripID := kernel.NewUUID()
	cmd, err := commands.NewCreateRailTripCommand(
		tripID, trainID, routeID, req.Departure, req.Arrival, req.TotalCapacity,
	)
	if err != nil {
		return badRequest(ctx, "Invalid trip data: "+err.Error())
	}

	if err := s.createRailTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: tripID.String()})
}

// CreateRoadRun handles POST /api/v1/road-runs.
func (s *Server) CreateRoadRun(ctx echo.Context) error {
	var req CreateRoadRunRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	routeID, err := parseUUID(req.RouteID)
	if err != nil {
		return badRequest(ctx, "Invalid route id")
	}
	truckID, err := parseUUID(req.TruckID)
	if err != nil {
		return badRequest(ctx, "Invalid truck id")
	}
	driverID, err := parseUUID(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}
	assistantID, err := parseUUID(req.AssistantID)
	if err != nil {
		return badRequest(ctx, "Invalid assistant id")
	}

	window, err := kernel.NewTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return badRequest(ctx, "Invalid run window: "+err.Error())
	}

	runID := kernel.NewUUID()
	cmd, err := commands.NewCreateRoadRunCommand(
		runID, routeID, truckID, driverID, assistantID, window, req.TotalCapacity,
	)
	if err != nil {
		return badRequest(ctx, "Invalid run data: "+err.Error())
	}

	if err := s.createRoadRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: runID.String()})
}

// CancelRoadRun handles DELETE /api/v1/road-runs/:id - removes an empty run
// and releases its crew reservations.
func (s *Server) CancelRoadRun(ctx echo.Context) error {
	runID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid run id")
	}

	cmd, err := commands.NewCancelRoadRunCommand(runID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelRoadRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateRail handles POST /api/v1/orders/:id/allocations/rail.
func (s *Server) AllocateRail(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AllocateRailRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	tripID, err := parseUUID(req.TripID)
	if err != nil {
		return badRequest(ctx, "Invalid trip id")
	}

	cmd, err := commands.NewAllocateRailCommand(orderID, tripID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	leg, err := s.allocateRailHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, legResponse(leg))
}

// AllocateRoad handles POST /api/v1/orders/:id/allocations/road.
func (s *Server) AllocateRoad(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AllocateRoadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	runID, err := parseUUID(req.RunID)
	if err != nil {
		return badRequest(ctx, "Invalid run id")
	}

	cmd, err := commands.NewAllocateRoadCommand(orderID, runID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	leg, err := s.allocateRoadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, legResponse(leg))
}

// CancelAllocation handles DELETE /api/v1/allocations/:legId - releases the
// leg's capacity and reverts the order one lifecycle step.
func (s *Server) CancelAllocation(ctx echo.Context) error {
	legID, err := parseUUID(ctx.Param("legId"))
	if err != nil {
		return badRequest(ctx, "Invalid leg id")
	}

	cmd, err := commands.NewCancelAllocationCommand(legID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelAllocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCandidateRailTrips handles GET /api/v1/rail-trips/candidates.
func (s *Server) GetCandidateRailTrips(ctx echo.Context) error {
	city := ctx.QueryParam("city")
	notBefore, err := parseNotBefore(ctx.QueryParam("not_before"))
	if err != nil {
		return badRequest(ctx, "Invalid not_before: expected RFC 3339 timestamp")
	}

	query, err := queries.NewCandidateRailTripsQuery(city, notBefore)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	trips, err := s.candidateRailTripsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]CandidateTripResponse, len(trips))
	for i, t := range trips {
		response[i] = CandidateTripResponse{
			TripID:    t.TripID.String(),
			RouteName: t.RouteName,
			Stops:     t.Stops,
			Departure: t.Departure,
			Remaining: t.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCandidateRoadRuns handles GET /api/v1/road-runs/candidates.
func (s *Server) GetCandidateRoadRuns(ctx echo.Context) error {
	city := ctx.QueryParam("city")
	notBefore, err := parseNotBefore(ctx.QueryParam("not_before"))
	if err != nil {
		return badRequest(ctx, "Invalid not_before: expected RFC 3339 timestamp")
	}

	query, err := queries.NewCandidateRoadRunsQuery(city, notBefore)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	runs, err := s.candidateRoadRunsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]CandidateRunResponse, len(runs))
	for i, r := range runs {
		response[i] = CandidateRunResponse{
			RunID:     r.RunID.String(),
			RouteName: r.RouteName,
			Cities:    r.Cities,
			Start:     r.Start,
			Remaining: r.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUnallocatedOrders handles GET /api/v1/orders/unallocated.
func (s *Server) GetUnallocatedOrders(ctx echo.Context) error {
	query := queries.NewGetUnallocatedOrdersQuery()

	orders, err := s.unallocatedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]UnallocatedOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = UnallocatedOrderResponse{
			ID:              o.ID.String(),
			DestinationCity: o.DestinationCity,
			Street:          o.Street,
			RequiredSpace:   o.RequiredSpace,
			Status:          o.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// errorResponse maps domain errors onto HTTP status codes: conflicts over
// scarce capacity and crew time are 409, lifecycle and input preconditions
// are 400, unknown identifiers are 404, everything else is 500.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, capacity.ErrCapacityExceeded),
		errors.Is(err, services.ErrAvailabilityConflict),
		errors.Is(err, commands.ErrAlreadyAllocated),
		errors.Is(err, commands.ErrRoadRunNotEmpty):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrOrderNotConfirmed),
		errors.Is(err, order.ErrOrderNotRailScheduled),
		errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, capacity.ErrInvariantViolation):
		// A ledger releasing more than it committed is a correctness bug,
		// not a client error. It must reach the logs, not just a bare 500.
		ctx.Logger().Errorf("capacity invariant violated: %v", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func legResponse(leg *shipment.Leg) LegResponse {
	return LegResponse{
		LegID:      leg.ID().String(),
		OrderID:    leg.OrderID().String(),
		Stage:      leg.Stage().String(),
		ResourceID: leg.ResourceID().String(),
		Space:      leg.Space(),
	}
}

func parseUUID(raw string) (kernel.UUID, error) {
	return kernel.UUIDFromString(raw)
}

// parseNotBefore parses the optional not_before query parameter. An empty
// value means no departure-time floor.
func parseNotBefore(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
