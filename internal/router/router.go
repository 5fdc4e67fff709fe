package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/internal/auth"
	"taskhub/internal/handler"
	"taskhub/internal/service"
)

// Route is one routing table entry. Private is static metadata set at
// registration time; the auth gate is attached only to private routes, so
// public routes pass through untouched.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Private bool
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userService service.UserService,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	gate := auth.Gate(userService)

	routes := []Route{
		{Method: http.MethodPost, Path: "/users/register", Handler: userHandler.Register},
		{Method: http.MethodPost, Path: "/users/login", Handler: userHandler.Login},
		{Method: http.MethodGet, Path: "/users/profile", Handler: userHandler.Profile, Private: true},

		{Method: http.MethodPost, Path: "/tasks", Handler: taskHandler.Create, Private: true},
		{Method: http.MethodGet, Path: "/tasks", Handler: taskHandler.List, Private: true},
		{Method: http.MethodGet, Path: "/tasks/custom/categories", Handler: taskHandler.Categories, Private: true},
		{Method: http.MethodGet, Path: "/tasks/custom/categories/:category", Handler: taskHandler.TasksByCategory, Private: true},
		{Method: http.MethodPut, Path: "/tasks/custom/:id/complete", Handler: taskHandler.Complete, Private: true},
		{Method: http.MethodGet, Path: "/tasks/:id", Handler: taskHandler.Get, Private: true},
		{Method: http.MethodPut, Path: "/tasks/:id", Handler: taskHandler.Update, Private: true},
		{Method: http.MethodDelete, Path: "/tasks/:id", Handler: taskHandler.Delete, Private: true},
	}

	for _, r := range routes {
		if r.Private {
			e.Add(r.Method, r.Path, r.Handler, gate)
		} else {
			e.Add(r.Method, r.Path, r.Handler)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
