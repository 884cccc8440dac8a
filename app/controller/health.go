package controller

import (
	"net/http"
	"time"

	httpdto "github.com/tourcolombia/booking/app/dto/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe. It answers 200 whenever the process is up.
func Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, httpdto.OK("API is up", httpdto.HealthData{
		Timestamp: time.Now().UTC(),
	}))
}
