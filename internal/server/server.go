package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/jask/foodboard/internal/database/repository"
	"github.com/jask/foodboard/internal/food"
)

// Store is the persistence the HTTP API needs.
type Store interface {
	List(ctx context.Context) ([]food.Food, error)
	Create(ctx context.Context, d food.Draft) (food.Food, error)
	Update(ctx context.Context, id int64, d food.Draft) (food.Food, error)
	Delete(ctx context.Context, id int64) error
}

// Response is the body of every error reply.
type Response struct {
	Message string `json:"message"`
}

type handler struct {
	store Store
}

// New builds the echo instance serving the foods collection.
func New(store Store, logLevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	e.Logger.SetLevel(ParseLevel(logLevel))

	h := &handler{store: store}

	// Routes
	e.GET("/foods", h.listFoods)
	e.POST("/foods", h.createFood)
	e.PUT("/foods/:id", h.updateFood)
	e.DELETE("/foods/:id", h.deleteFood)

	return e
}

// ParseLevel maps a config string to a gommon level, defaulting to INFO.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func (h *handler) listFoods(c echo.Context) error {
	foods, err := h.store.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list foods: %s", err)
		return c.JSON(http.StatusInternalServerError, Response{Message: "failed to list foods"})
	}
	return c.JSON(http.StatusOK, foods)
}

func (h *handler) createFood(c echo.Context) error {
	var d food.Draft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid body"})
	}
	if msg := validate(d); msg != "" {
		return c.JSON(http.StatusBadRequest, Response{Message: msg})
	}

	created, err := h.store.Create(c.Request().Context(), d)
	if err != nil {
		c.Logger().Errorf("Failed to create food: %s", err)
		return c.JSON(http.StatusInternalServerError, Response{Message: "failed to create food"})
	}
	c.Logger().Infof("Created food %d: %s", created.ID, created.Name)
	return c.JSON(http.StatusCreated, created)
}

func (h *handler) updateFood(c echo.Context) error {
	id, ok := foodID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid food id"})
	}
	var f food.Food
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid body"})
	}
	d := f.Draft()
	if msg := validate(d); msg != "" {
		return c.JSON(http.StatusBadRequest, Response{Message: msg})
	}

	updated, err := h.store.Update(c.Request().Context(), id, d)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, Response{Message: "food not found"})
	}
	if err != nil {
		c.Logger().Errorf("Failed to update food %d: %s", id, err)
		return c.JSON(http.StatusInternalServerError, Response{Message: "failed to update food"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *handler) deleteFood(c echo.Context) error {
	id, ok := foodID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Message: "invalid food id"})
	}
	err := h.store.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, Response{Message: "food not found"})
	}
	if err != nil {
		c.Logger().Errorf("Failed to delete food %d: %s", id, err)
		return c.JSON(http.StatusInternalServerError, Response{Message: "failed to delete food"})
	}
	return c.NoContent(http.StatusNoContent)
}

func foodID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func validate(d food.Draft) string {
	if strings.TrimSpace(d.Name) == "" {
		return "name is required"
	}
	if d.Price < 0 {
		return "price must not be negative"
	}
	return ""
}
