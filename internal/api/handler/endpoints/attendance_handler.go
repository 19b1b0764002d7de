package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"studio"
	"studio/internal/api/handler/middleware"
	"studio/internal/api/handler/response"
	"studio/internal/api/policy"
	"studio/internal/api/service"
	"studio/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type attendanceHandler struct {
	attendanceService *service.AttendanceService
	config            studio.AppConfig
	logger            zerolog.Logger
}

func newAttendanceHandler() *attendanceHandler {
	return &attendanceHandler{
		attendanceService: service.NewAttendanceService(),
		config:            studio.GetConfig(),
		logger:            studio.Logger,
	}
}

func AttendanceHandler(router *graceful.Graceful) {
	h := newAttendanceHandler()

	// Check-in/out is always for the session user.
	own := router.Group("/api/v1/attendance")
	own.Use(middleware.AuthMiddleware(h.config))
	{
		own.POST("/check-in", h.checkIn)
		own.POST("/check-out", h.checkOut)
	}

	view := router.Group("/api/v1/attendance")
	view.Use(middleware.AuthMiddleware(h.config))
	view.Use(middleware.RequireCapability(policy.ViewAttendance))
	{
		view.GET("/day", h.byDay)
		view.GET("/user/:id", h.byUser)
	}
}

func (slf *attendanceHandler) checkIn(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	attendance, err := slf.attendanceService.CheckIn(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to check in"})
		return
	}
	c.JSON(http.StatusOK, attendance)
}

func (slf *attendanceHandler) checkOut(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	attendance, err := slf.attendanceService.CheckOut(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, attendance)
}

func (slf *attendanceHandler) byDay(c *gin.Context) {
	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	records, err := slf.attendanceService.FindByDay(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (slf *attendanceHandler) byUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now
	if f := c.Query("from"); f != "" {
		parsed, err := time.Parse("2006-01-02", f)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if t := c.Query("to"); t != "" {
		parsed, err := time.Parse("2006-01-02", t)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	records, err := slf.attendanceService.FindByUser(uint(id), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
