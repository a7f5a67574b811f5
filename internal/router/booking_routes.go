package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerBookingRoutes registers the booking flow routes.
func (rt *Router) registerBookingRoutes(r *gin.Engine) {
	bookingGroup := r.Group("/booking")
	bookingGroup.Use(middleware.JWTAuth())
	{
		bookingGroup.POST("/book", rt.handlers.Booking.BookSession)
		bookingGroup.POST("/request", rt.handlers.Booking.SubmitRequest)
		bookingGroup.POST("/confirm", rt.handlers.Booking.ConfirmRequest)
		bookingGroup.POST("/decline", rt.handlers.Booking.DeclineRequest)
		bookingGroup.GET("/pending", rt.handlers.Booking.PendingRequests)
	}
}
