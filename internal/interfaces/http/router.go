package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/auth"
	"github.com/jpabloc/gestion-comercial/internal/application/credits"
	"github.com/jpabloc/gestion-comercial/internal/application/purchases"
	"github.com/jpabloc/gestion-comercial/internal/application/sales"
	"github.com/jpabloc/gestion-comercial/internal/application/transfers"
	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BranchUC   *usecase.BranchUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	SupplierUC *usecase.SupplierUseCase
	StockUC    *usecase.StockUseCase
	CashUC     *usecase.CashUseCase
	Resolver   *units.Resolver
	SaleUC     *sales.SaleUseCase
	PurchaseUC *purchases.PurchaseUseCase
	CreditUC   *credits.CreditUseCase
	TransferUC *transfers.TransferUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrBodeguero := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOrCajero := RequireRole(entity.RoleAdmin, entity.RoleCajero)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Branches (solo admin muta)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)

	// Products y unidades registradas
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Resolver)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Post("/:id/units", adminOnly, productHandler.RegisterUnit)
	products.Get("/:id/units", productHandler.ListUnits)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", adminOrBodeguero, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Stock (solo lectura; muta por ventas, compras y traslados)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/:productId", stockHandler.Get)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", adminOrCajero, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", adminOnly, saleHandler.Cancel)

	// Purchases
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", adminOrBodeguero, purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Post("/:id/cancel", adminOnly, purchaseHandler.Cancel)

	// Credits (cuentas CXC/CPP y abonos)
	creditsGroup := protected.Group("/credits")
	creditHandler := NewCreditHandler(deps.CreditUC)
	creditsGroup.Get("/counterparty/:counterpartyId", creditHandler.ListByCounterparty)
	creditsGroup.Get("/:id", creditHandler.GetAccount)
	creditsGroup.Get("/:id/payments", creditHandler.ListPayments)
	creditsGroup.Post("/:id/payments", adminOrCajero, creditHandler.ApplyPayment)

	// Transfers (flujo por pasos)
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfersGroup.Post("/", adminOrBodeguero, transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Post("/:id/approve", adminOrBodeguero, transferHandler.Approve)
	transfersGroup.Post("/:id/ship", adminOrBodeguero, transferHandler.Ship)
	transfersGroup.Post("/:id/complete", adminOrBodeguero, transferHandler.Complete)
	transfersGroup.Post("/:id/cancel", adminOrBodeguero, transferHandler.Cancel)

	// Cash (libro de caja, solo lectura)
	cashGroup := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Get("/movements", cashHandler.List)
	cashGroup.Get("/balance", cashHandler.Balance)
}
