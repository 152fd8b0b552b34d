// Package router wires handlers to routes and attaches the auth middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/egovmeet/video-verification/internal/handler"
	"github.com/egovmeet/video-verification/internal/middleware"
	"github.com/egovmeet/video-verification/internal/model"
)

// RegisterRoutes mounts the full API surface. Citizen join is the only
// business route without a bearer token: the meeting id plus the OTP is the
// citizen's credential.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, ch *handler.CitizenHandler,
	mh *handler.MeetingHandler, uh *handler.UserHandler, jwtSecret string) {

	e.GET("/healthz", handler.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	// Unauthenticated citizen entry point.
	e.POST("/v1/meetings/:meetingId/join/citizen", mh.JoinCitizen)

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	v1.GET("/users/me", uh.Me)
	v1.GET("/users", uh.List, middleware.RequireRole(model.RoleAdmin))

	op := v1.Group("", middleware.RequireRole(model.RoleOperator))
	op.GET("/citizens/:pinCode", ch.GetCitizen)
	op.POST("/meetings", mh.CreateMeeting)
	op.GET("/meetings", mh.ListMeetings)
	op.POST("/meetings/:meetingId/join/operator", mh.JoinOperator)
	op.POST("/meetings/:meetingId/finish", mh.FinishMeeting)
}
