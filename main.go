package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"residency-server/config"
	"residency-server/routes"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/recover"
	"github.com/spf13/cobra"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" && os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	rootCmd := &cobra.Command{
		Use:          "residency-server",
		Short:        "Residential property management API",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve() },
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE:  func(cmd *cobra.Command, args []string) error { return migrate() },
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the demo towers, units, users and providers",
			RunE:  func(cmd *cobra.Command, args []string) error { return seed() },
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireSecrets(); err != nil {
		return err
	}

	services.DefaultMonthlyRent = cfg.DefaultMonthlyRent
	utils.InitTokens(cfg)
	storage.InitializeDB(cfg)
	storage.InitializeRedis(cfg.RedisURL)
	storage.InitializePhotos(context.Background(), cfg)

	app := newApp()

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server starting on %s", addr)

	return app.Listen(addr)
}

func migrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	if err := storage.Migrate(db); err != nil {
		return err
	}

	log.Println("Migration complete")
	return nil
}

func seed() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fixtures, err := storage.LoadFixtures()
	if err != nil {
		return err
	}

	db := storage.InitializeDB(cfg)
	if err := services.Seed(db, fixtures); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Println("Seed complete")
	return nil
}

// newApp wires every route. Tokens and storage must already be initialized.
func newApp() *iris.Application {
	app := iris.New()
	app.Validator = utils.NewValidator()

	app.UseRouter(recover.New())

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)
	app.Use(utils.MetricsMiddleware)

	app.Get("/", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "healthy"})
	})
	app.Get("/metrics", utils.MetricsHandler())

	auth := app.Party("/auth")
	{
		auth.Post("/login", routes.Login)
		auth.Post("/register", routes.Register)
		auth.Post("/refresh", routes.Refresh)
	}

	verify := utils.VerifyAccessToken()
	anyone := utils.Require(utils.Authenticated)
	admin := utils.Require(utils.AdminOnly)

	towers := app.Party("/towers", verify, anyone)
	{
		towers.Get("/", routes.GetTowers)
		towers.Post("/", admin, routes.CreateTower)
	}

	units := app.Party("/units", verify, anyone)
	{
		units.Get("/", routes.GetUnits)
		units.Get("/{id}", routes.GetUnit)
		units.Post("/", admin, routes.CreateUnit)
		units.Put("/{id}", admin, routes.UpdateUnit)
		units.Post("/{id}/amenities", admin, routes.AssignAmenity)
		units.Post("/{id}/photos", admin, routes.UploadUnitPhoto)
	}

	amenities := app.Party("/amenities", verify, anyone)
	{
		amenities.Get("/", routes.GetAmenities)
		amenities.Post("/", admin, routes.CreateAmenity)
	}

	bookings := app.Party("/bookings", verify, anyone)
	{
		bookings.Get("/", routes.GetBookings)
		bookings.Post("/", routes.CreateBooking)
		bookings.Put("/{id}/approve", admin, routes.ApproveBooking)
		bookings.Put("/{id}/reject", admin, routes.RejectBooking)
		bookings.Put("/{id}/cancel", routes.CancelBooking)
	}

	leases := app.Party("/leases", verify, anyone)
	{
		leases.Get("/", routes.GetLeases)
		leases.Get("/current", routes.GetCurrentLease)
	}

	payments := app.Party("/payments", verify, anyone)
	{
		payments.Get("/", routes.GetPayments)
		payments.Post("/", routes.MakePayment)
	}

	app.Get("/tenants", verify, admin, routes.GetTenants)
	app.Get("/stats", verify, admin, routes.GetStats)

	providers := app.Party("/service-providers", verify, anyone)
	{
		providers.Get("/", routes.GetServiceProviders)
		providers.Post("/", admin, routes.CreateServiceProvider)
	}

	adminParty := app.Party("/admin", verify, admin)
	{
		adminParty.Post("/users", routes.AdminCreateUser)
		adminParty.Get("/users", routes.AdminListUsers)
		adminParty.Post("/service-providers", routes.CreateServiceProvider)
		adminParty.Get("/audit-logs", routes.AdminAuditLogs)
	}

	return app
}
