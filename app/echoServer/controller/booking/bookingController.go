package booking

import (
	"log/slog"
	"net/http"
	"time"

	"agrimarket/app/echoServer/controller"
	"agrimarket/app/echoServer/jwtx"
	"agrimarket/model"
	bookingsvc "agrimarket/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func pathID(c echo.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// POST /v1/labor/:id/bookings
// @Summary      Book labor
// @Description  Prices the range at the listing's daily rate and stores a pending booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        payload  body  CreateLaborBookingReq  true  "Dates as YYYY-MM-DD, both inclusive"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any "caller is not a farmer"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "listing unavailable or already booked"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/labor/{id}/bookings [post]
func (h *Controller) CreateLabor(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	listingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateLaborBookingReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}
	start, err1 := parseDate(req.StartDate)
	end, err2 := parseDate(req.EndDate)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start_date and end_date must be dates (YYYY-MM-DD)"})
	}

	b, err := h.Svc.CreateLaborBooking(c.Request().Context(), actor, listingID, start, end, req.Notes)
	if err != nil {
		return controller.Fail(c, h.Log, "labor booking create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": b})
}

// POST /v1/tractors/:id/bookings
// @Summary      Book tractor
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        payload  body  CreateTractorBookingReq  true  "RFC3339 or YYYY-MM-DDTHH:MM timestamps"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/tractors/{id}/bookings [post]
func (h *Controller) CreateTractor(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	listingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateTractorBookingReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}
	start, end, ok := timestamps(req.StartDate, req.EndDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start_date and end_date must be timestamps"})
	}

	b, err := h.Svc.CreateTractorBooking(c.Request().Context(), actor, listingID, start, end, req.Notes)
	if err != nil {
		return controller.Fail(c, h.Log, "tractor booking create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": b})
}

// POST /v1/bookings/:kind/:id/status
// @Summary      Change booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind     path  string     true  "labor | tractor"
// @Param        id       path  string     true  "Booking ID (uuid)"
// @Param        payload  body  StatusReq  true  "Target status"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any "not a party, or wrong party for this step"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "transition not allowed from current status"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/bookings/{kind}/{id}/status [post]
func (h *Controller) Transition(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	kind := model.ListingKind(c.Param("kind"))
	if !kind.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking type"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req StatusReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	out, err := h.Svc.Transition(c.Request().Context(), kind, id, actor, model.BookingStatus(req.Status))
	if err != nil {
		return controller.Fail(c, h.Log, "booking transition", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/bookings/my
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | confirmed | completed | cancelled | all"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/bookings/my [get]
func (h *Controller) Mine(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	status := model.BookingStatus(c.QueryParam("status"))
	if status == "all" {
		status = ""
	}
	rows, err := h.Svc.MyBookings(c.Request().Context(), actor, status)
	if err != nil {
		return controller.Fail(c, h.Log, "my bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/quote/labor/:id
// @Summary      Price preview for labor
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        start  query  string  true  "YYYY-MM-DD"
// @Param        end    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  bookingsvc.Quote
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/quote/labor/{id} [get]
func (h *Controller) QuoteLabor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	start, err1 := parseDate(c.QueryParam("start"))
	end, err2 := parseDate(c.QueryParam("end"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start and end must be dates (YYYY-MM-DD)"})
	}
	q, err := h.Svc.QuoteLabor(c.Request().Context(), id, start, end)
	if err != nil {
		return controller.Fail(c, h.Log, "labor quote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": q})
}

// GET /v1/quote/tractors/:id
// @Summary      Price preview for tractor
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        start  query  string  true  "Timestamp"
// @Param        end    query  string  true  "Timestamp"
// @Success      200  {object}  bookingsvc.Quote
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/quote/tractors/{id} [get]
func (h *Controller) QuoteTractor(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	start, end, ok := timestamps(c.QueryParam("start"), c.QueryParam("end"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start and end must be timestamps"})
	}
	q, err := h.Svc.QuoteTractor(c.Request().Context(), id, start, end)
	if err != nil {
		return controller.Fail(c, h.Log, "tractor quote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": q})
}

func timestamps(a, b string) (time.Time, time.Time, bool) {
	start, err := parseTimestamp(a)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := parseTimestamp(b)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
