package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tbraun92/bandroom/internal/repository"
)

type userRequest struct {
	UUID        *string `json:"uuid" validate:"omitempty,uuid4"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=256"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Description *string `json:"description"`
}

func (r userRequest) attrs() repository.UserAttrs {
	return repository.UserAttrs{
		UUID:        r.UUID,
		Name:        r.Name,
		Email:       r.Email,
		Description: r.Description,
	}
}

func (a *API) ListUsers(c echo.Context) error {
	rows, total, err := a.Repos.Users.List(c.Request().Context(), listOptions(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Rows: rows, Count: total})
}

func (a *API) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	user, err := a.Repos.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, user)
}

func (a *API) GetUserByUUID(c echo.Context) error {
	user, err := a.Repos.Users.GetByUUID(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, user)
}

func (a *API) CreateUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := a.Repos.Users.Create(c.Request().Context(), req.attrs())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (a *API) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	affected, err := a.Repos.Users.Update(c.Request().Context(), id, req.attrs())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}

func (a *API) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	affected, err := a.Repos.Users.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"affected": affected})
}
