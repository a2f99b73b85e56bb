// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"agrimarket/model"

	"github.com/labstack/echo/v4"
)

const (
	UserIDKey = "user_id"
	ActorKey  = "actor"
)

func UserIDFromContext(c echo.Context) (string, error) {
	id, ok := c.Get(UserIDKey).(string)
	if !ok || id == "" {
		return "", errors.New("no subject in context")
	}
	return id, nil
}

func ActorFromContext(c echo.Context) (*model.Profile, error) {
	p, ok := c.Get(ActorKey).(*model.Profile)
	if !ok || p == nil {
		return nil, errors.New("no profile in context")
	}
	return p, nil
}
