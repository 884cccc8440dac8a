package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tourcolombia/booking/app/controller"
	"github.com/tourcolombia/booking/app/middleware"
	"github.com/tourcolombia/booking/app/repository"
	"github.com/tourcolombia/booking/app/service"
	"github.com/tourcolombia/booking/config"
	"github.com/tourcolombia/booking/db"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server exposing the accounts, password reset, and reservations API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer conn.Close()

	if err := db.MigrateUp(conn); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := repository.NewUserRepository(conn)
	reservationRepo := repository.NewReservationRepository(conn)
	optionRepo := repository.NewOptionRepository(conn)
	tokenRepo := repository.NewPasswordResetTokenRepository(conn)

	var mailer service.Mailer
	if cfg.SMTP.Enabled() {
		mailer = service.NewSMTPMailer(cfg.SMTP)
	}

	accountService := service.NewAccountService(conn, userRepo, reservationRepo, tokenRepo, cfg)
	resetService := service.NewResetService(conn, userRepo, tokenRepo, mailer, cfg)
	reservationService := service.NewReservationService(reservationRepo, optionRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	accountController := controller.NewAccountController(accountService, resetService, cfg)
	reservationController := controller.NewReservationController(reservationService)
	authMiddleware := middleware.NewAuthMiddleware(accountService)

	e.GET("/health", controller.Health)

	accounts := e.Group("/accounts")
	accounts.POST("", accountController.Register)
	accounts.POST("/session", accountController.Login)
	accounts.POST("/reset-request", accountController.RequestReset)
	accounts.POST("/reset-confirm", accountController.ConfirmReset)
	accounts.GET("/me", accountController.Me, authMiddleware.RequireAuth)
	accounts.GET("/:id", accountController.GetProfile)
	accounts.PUT("/:id", accountController.UpdateProfile)
	accounts.DELETE("/:id", accountController.DeleteAccount)

	reservations := e.Group("/reservations")
	reservations.POST("", reservationController.Create)
	reservations.GET("/options", reservationController.ListOptions)
	reservations.GET("/destinations/:id/places", reservationController.ListPlaces)
	reservations.GET("/users/:id", reservationController.ListForUser)
	reservations.DELETE("/:id", reservationController.Cancel)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	go func() {
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Failed to shut down HTTP server cleanly")
	}
}
