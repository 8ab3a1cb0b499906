package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/comercio-core/internal/application/billing"
	"github.com/jhoicas/comercio-core/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.StockLedger
	Processor *inventory.OrderStockProcessor
	Issuer    *billing.InvoiceIssuer
	Sequences *billing.SequenceAllocator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Processor)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)

	orders := protected.Group("/orders")
	orders.Post("/:id/stock/outbound", inventoryHandler.ProcessOrderStock)
	orders.Post("/:id/stock/inbound", inventoryHandler.ProcessReturn)

	invoiceHandler := NewInvoiceHandler(deps.Issuer, deps.Sequences)
	orders.Post("/:id/invoice", invoiceHandler.IssueForOrder)
	protected.Post("/invoices/batch", invoiceHandler.IssueBatch)
	protected.Get("/sequences/:id/preview", invoiceHandler.PreviewSequence)
}
