package profile

import (
	"log/slog"
	"net/http"

	"agrimarket/app/echoServer/controller"
	"agrimarket/app/echoServer/jwtx"
	"agrimarket/model"
	profilesvc "agrimarket/service/profile"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc profilesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/profiles
// @Summary      Register profile
// @Description  Create the caller's profile; the id is the token subject and user_type is fixed from here on
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.RegisterReq  true  "Profile payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      409  {object}  map[string]any "profile or email already exists"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/profiles [post]
func (h *Controller) Register(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	p, err := h.Svc.Register(c.Request().Context(), uid, req)
	if err != nil {
		return controller.Fail(c, h.Log, "profile register", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": p})
}

// GET /v1/profiles/me
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/profiles/me [get]
func (h *Controller) Me(c echo.Context) error {
	p, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// PATCH /v1/profiles/me
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.UpdateProfileReq  true  "Editable fields"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/profiles/me [patch]
func (h *Controller) Update(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	var req model.UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return controller.BadJSON(c, h.Log, err)
	}
	if err := h.V.Struct(req); err != nil {
		return controller.Invalid(c, h.Log, err)
	}

	p, err := h.Svc.Update(c.Request().Context(), actor, req)
	if err != nil {
		return controller.Fail(c, h.Log, "profile update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// GET /v1/profiles/me/capabilities
// @Summary      Role-derived action flags
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/profiles/me/capabilities [get]
func (h *Controller) Capabilities(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return controller.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": profilesvc.CapabilitiesOf(actor)})
}
