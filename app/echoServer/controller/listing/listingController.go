package listing

import (
	"log/slog"
	"net/http"

	"agrimarket/app/echoServer/controller"
	"agrimarket/app/echoServer/jwtx"
	"agrimarket/model"
	listingsvc "agrimarket/service/listing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc listingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func listingID(c echo.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// GET /v1/labor
// @Summary      Search labor listings
// @Description  Available listings only, newest first, case-insensitive substring match
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Text in title, description or skills"
// @Param        location  query  string  false  "Location substring"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/labor [get]
func (h *Controller) ListLabor(c echo.Context) error {
	rows, err := h.Svc.ListLabor(c.Request().Context(), c.QueryParam("q"), c.QueryParam("location"))
	if err != nil {
		return controller.Fail(c, h.Log, "labor list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/tractors
// @Summary      Search tractor listings
// @Tags         listings
// @Produce      json
// @Param        q         query  string  false  "Text in title, description or model"
// @Param        location  query  string  false  "Location substring"
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/tractors [get]
func (h *Controller) ListTractors(c echo.Context) error {
	rows, err := h.Svc.ListTractors(c.Request().Context(), c.QueryParam("q"), c.QueryParam("location"))
	if err != nil {
		return controller.Fail(c, h.Log, "tractor list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/labor/:id
// @Summary      Get labor listing
// @Tags         listings
// @Produce      json
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/labor/{id} [get]
func (h *Controller) LaborDetail(c echo.Context) error {
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Svc.GetLabor(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "labor detail", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": l})
}

// GET /v1/tractors/:id
// @Summary      Get tractor listing
// @Tags         listings
// @Produce      json
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/tractors/{id} [get]
func (h *Controller) TractorDetail(c echo.Context) error {
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	t, err := h.Svc.GetTractor(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "tractor detail", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": t})
}

// POST /v1/labor
// @Summary      Create labor listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  CreateLaborReq  true  "Labor listing"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any "caller is not a laborer"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/labor [post]
func (h *Controller) CreateLabor(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	var req CreateLaborReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	l, err := h.Svc.CreateLabor(c.Request().Context(), actor, listingsvc.LaborInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		DailyRate:       req.DailyRate,
		ExperienceYears: req.ExperienceYears,
		Location:        req.Location,
	})
	if err != nil {
		return controller.Fail(c, h.Log, "labor create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": l})
}

// POST /v1/tractors
// @Summary      Create tractor listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  CreateTractorReq  true  "Tractor listing"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "validation error or missing rc_number"
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/tractors [post]
func (h *Controller) CreateTractor(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	var req CreateTractorReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	t, err := h.Svc.CreateTractor(c.Request().Context(), actor, listingsvc.TractorInput{
		Title:        req.Title,
		Description:  req.Description,
		TractorModel: req.TractorModel,
		Horsepower:   req.Horsepower,
		Year:         req.Year,
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return controller.Fail(c, h.Log, "tractor create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": t})
}

// PATCH /v1/labor/:id/availability
// @Summary      Set labor availability
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        payload  body  AvailabilityReq  true  "available | busy | unavailable"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/labor/{id}/availability [patch]
func (h *Controller) SetLaborAvailability(c echo.Context) error {
	return h.setAvailability(c, model.KindLabor)
}

// PATCH /v1/tractors/:id/availability
// @Summary      Set tractor availability
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Param        payload  body  AvailabilityReq  true  "available | rented | maintenance"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/tractors/{id}/availability [patch]
func (h *Controller) SetTractorAvailability(c echo.Context) error {
	return h.setAvailability(c, model.KindTractor)
}

func (h *Controller) setAvailability(c echo.Context, kind model.ListingKind) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AvailabilityReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	ctx := c.Request().Context()
	if kind == model.KindLabor {
		err = h.Svc.SetLaborAvailability(ctx, id, actor, model.LaborAvailability(req.Status))
	} else {
		err = h.Svc.SetTractorAvailability(ctx, id, actor, model.TractorAvailability(req.Status))
	}
	if err != nil {
		return controller.Fail(c, h.Log, "set availability", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "availability_status": req.Status})
}

// DELETE /v1/labor/:id
// @Summary      Delete labor listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/labor/{id} [delete]
func (h *Controller) DeleteLabor(c echo.Context) error {
	return h.delete(c, model.KindLabor)
}

// DELETE /v1/tractors/:id
// @Summary      Delete tractor listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing ID (uuid)"
// @Success      204
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/tractors/{id} [delete]
func (h *Controller) DeleteTractor(c echo.Context) error {
	return h.delete(c, model.KindTractor)
}

func (h *Controller) delete(c echo.Context, kind model.ListingKind) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if kind == model.KindLabor {
		err = h.Svc.DeleteLabor(c.Request().Context(), id, actor)
	} else {
		err = h.Svc.DeleteTractor(c.Request().Context(), id, actor)
	}
	if err != nil {
		return controller.Fail(c, h.Log, "delete listing", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/listings/my
// @Summary      List own listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/listings/my [get]
func (h *Controller) Mine(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	out, err := h.Svc.MyListings(c.Request().Context(), actor)
	if err != nil {
		return controller.Fail(c, h.Log, "my listings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
