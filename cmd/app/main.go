package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"eventgate/cmd/fx/account_fx"
	"eventgate/cmd/fx/bus_fx"
	"eventgate/cmd/fx/checkin_fx"
	"eventgate/cmd/fx/controllers_fx"
	"eventgate/cmd/fx/db_fx"
	"eventgate/cmd/fx/enrollment_fx"
	"eventgate/cmd/fx/events_fx"
	"eventgate/internal/api/controllers"
	"eventgate/internal/realtime"
	"eventgate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		dbfx.Module,
		accountfx.Module,
		eventsfx.Module,
		enrollmentfx.Module,
		checkinfx.Module,
		busfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	eventsController *controllers.EventsController,
	groupsController *controllers.GroupsController,
	enrollController *controllers.EnrollController,
	checkinController *controllers.CheckinController,
	dashboardController *controllers.DashboardController,
	hub *realtime.Hub,
	rdb *redis.Client) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController, eventsController, groupsController,
		enrollController, checkinController, dashboardController,
		hub, rdb)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	eventsController *controllers.EventsController,
	groupsController *controllers.GroupsController,
	enrollController *controllers.EnrollController,
	checkinController *controllers.CheckinController,
	dashboardController *controllers.DashboardController,
	hub *realtime.Hub,
	rdb *redis.Client) {

	checkinLimiter := middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig("checkin"), rdb)
	enrollLimiter := middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig("enroll"), rdb)

	auth := r.Group("/auth")
	auth.POST("/register", accountController.SignUp)
	auth.POST("/login", accountController.Login)

	// Kiosk-facing routes carry no session; the event id scopes every lookup.
	events := r.Group("/events")
	events.GET("/:id", eventsController.GetEvent)
	events.GET("/:id/groups", groupsController.ListGroups)
	events.POST("/:id/enroll", enrollLimiter, enrollController.Enroll)
	events.POST("/:id/checkin/qr", checkinLimiter, checkinController.CheckInQR)
	events.POST("/:id/checkin/face", checkinLimiter, checkinController.CheckInFace)
	events.GET("/:id/stats", dashboardController.EventStats)

	r.GET("/ws/events/:id", hub.ServeWS)

	organizer := r.Group("/events")
	organizer.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("organizer"))
	organizer.GET("", eventsController.ListEvents)
	organizer.POST("", eventsController.CreateEvent)
	organizer.PUT("/:id", eventsController.UpdateEvent)
	organizer.DELETE("/:id", eventsController.DeleteEvent)
	organizer.POST("/:id/groups", groupsController.CreateGroup)
	organizer.DELETE("/:id/groups/:groupId", groupsController.DeleteGroup)
	organizer.GET("/:id/attendants", enrollController.ListAttendants)
	organizer.POST("/:id/attendants", enrollController.Enroll)
	organizer.POST("/:id/match", checkinController.Match)
}
