package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health answers /healthz for load balancers and monitoring. It
// deliberately touches neither MySQL nor Redis: the process being able
// to serve is the only thing probed here.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok") // plain text keeps probes trivial to parse
}
