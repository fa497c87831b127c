package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	infraai "github.com/ngvyshop/chatorder-api/internal/infrastructure/ai"
	"github.com/ngvyshop/chatorder-api/internal/infrastructure/facebook"
	infrapdf "github.com/ngvyshop/chatorder-api/internal/infrastructure/pdf"
	"github.com/ngvyshop/chatorder-api/internal/infrastructure/postgres"
	"github.com/ngvyshop/chatorder-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/ngvyshop/chatorder-api/internal/interfaces/http"
	"github.com/ngvyshop/chatorder-api/pkg/config"
	"github.com/ngvyshop/chatorder-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	messageRepo := postgres.NewMessageRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	extractor := infraai.NewOpenAIExtractor(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	graphClient := facebook.NewGraphClient(cfg.Meta)
	receiptRenderer := infrapdf.NewMarotoReceiptRenderer()

	// Event publishing is optional; with no broker configured the usecases
	// simply skip it.
	var events ports.OrderEventPublisher
	if cfg.AMQP.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("RabbitMQ connection")
		}
		defer publisher.Close()
		events = publisher
	}

	intakeUC := usecase.NewIntakeUseCase(
		messageRepo, orderRepo, accountRepo, txRunner, extractor, events,
		usecase.IntakeConfig{
			PendingNameMaxAge: time.Duration(cfg.Intake.PendingNameMaxAgeMinutes) * time.Minute,
			ExtractTimeout:    time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
		},
		log.Z(),
	)
	orderUC := usecase.NewOrderUseCase(orderRepo, events, log.Z())
	summaryUC := usecase.NewSummaryUseCase(orderRepo)
	productUC := usecase.NewProductUseCase(productRepo, orderRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, graphClient, usecase.SessionConfig{
		JWTSecret:  cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Z())
	messageUC := usecase.NewMessageUseCase(messageRepo)
	receiptUC := usecase.NewReceiptUseCase(orderRepo, receiptRenderer, cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ChatOrder API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		IntakeUC:    intakeUC,
		OrderUC:     orderUC,
		SummaryUC:   summaryUC,
		ProductUC:   productUC,
		AccountUC:   accountUC,
		MessageUC:   messageUC,
		ReceiptUC:   receiptUC,
		VerifyToken: cfg.Meta.VerifyToken,
		AppSecret:   cfg.Meta.AppSecret,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Z(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
