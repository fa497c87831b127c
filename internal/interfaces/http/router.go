package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	IntakeUC  *usecase.IntakeUseCase
	OrderUC   *usecase.OrderUseCase
	SummaryUC *usecase.SummaryUseCase
	ProductUC *usecase.ProductUseCase
	AccountUC *usecase.AccountUseCase
	MessageUC *usecase.MessageUseCase
	ReceiptUC *usecase.ReceiptUseCase

	VerifyToken string
	AppSecret   string
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)
	app.Get("/privacy", Privacy)

	// Platform webhook (public; authenticated by verify token / signature)
	webhookHandler := NewWebhookHandler(deps.IntakeUC, deps.VerifyToken, deps.AppSecret, deps.Log)
	app.Get("/webhook", webhookHandler.Verify)
	app.Post("/webhook", webhookHandler.Receive)

	api := app.Group("/api")

	// OAuth login flow (public)
	authHandler := NewAuthHandler(deps.AccountUC)
	api.Get("/login", authHandler.Login)
	api.Get("/callback", authHandler.Callback)

	// Dashboard routes (require a resolved account scope)
	scoped := api.Group("/", AccessMiddleware(deps.AccountUC, deps.JWTSecret))
	owner := RequireOwner()

	messageHandler := NewMessageHandler(deps.MessageUC)
	scoped.Get("/messages", messageHandler.List)

	summaryHandler := NewSummaryHandler(deps.SummaryUC, deps.ProductUC)
	scoped.Get("/order-summaries", summaryHandler.List)
	scoped.Put("/order-summaries/:product/price", summaryHandler.UpdatePrice)
	scoped.Put("/order-summaries/:product/image", summaryHandler.UpdateImage)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := scoped.Group("/orders")
	orders.Get("/preparing", orderHandler.Preparing)
	orders.Get("/billing", orderHandler.Billing)
	orders.Get("/history", owner, orderHandler.History)
	orders.Post("/move-to-preparing", owner, orderHandler.MoveToPreparing)
	orders.Post("/:id/move-to-billing", orderHandler.MoveToBilling)
	orders.Post("/mark-all-paid", owner, orderHandler.MarkAllPaid)
	orders.Put("/:id/update-price", owner, orderHandler.UpdatePrice)
	orders.Put("/:id/preparation-notes", orderHandler.PreparationNotes)
	orders.Put("/:id/billing-notes", orderHandler.BillingNotes)

	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	scoped.Get("/customers/:name/receipt", owner, receiptHandler.Receipt)

	userHandler := NewUserHandler(deps.AccountUC)
	users := scoped.Group("/users", owner)
	users.Get("/", userHandler.List)
	users.Get("/facebook-search", userHandler.Search)
	users.Post("/add-staff", userHandler.AddStaff)
	users.Delete("/:id", userHandler.Remove)
}
