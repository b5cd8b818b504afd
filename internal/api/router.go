package api

import (
	v1 "github.com/financeflow/financeflow/internal/api/v1"
	"github.com/financeflow/financeflow/internal/auth"
	"github.com/financeflow/financeflow/internal/config"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/rest/middleware"
	"github.com/financeflow/financeflow/internal/service"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Auth      *v1.AuthHandler
	User      *v1.UserHandler
	Dashboard *v1.DashboardHandler
	Expense   *v1.ExpenseHandler
	Client    *v1.ClientHandler
	Invoice   *v1.InvoiceHandler
	Checkout  *v1.CheckoutHandler
	Webhook   *v1.WebhookHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, authProvider auth.Provider) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.SentryMiddleware(cfg),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.ErrorHandler(cfg, logger),
	)

	router.NoRoute(func(c *gin.Context) {
		c.Error(ierr.NewErrorf("no route for %s %s", c.Request.Method, c.Request.URL.Path).
			WithHint("Not found").
			Mark(ierr.ErrNotFound))
	})

	public := router.Group("/api")
	{
		public.GET("/health", handlers.Health.Health)
		// the provider authenticates with the payload signature, not a bearer token
		public.POST("/webhook", handlers.Webhook.HandleStripeWebhook)

		credentials := public.Group("", middleware.RateLimitMiddleware(cfg))
		credentials.POST("/register", handlers.Auth.Register)
		credentials.POST("/login", handlers.Auth.Login)
	}

	private := router.Group("/api",
		middleware.AuthenticateMiddleware(authProvider, logger),
		middleware.SentryUserMiddleware,
	)
	{
		private.GET("/me", handlers.User.GetUserInfo)
		private.GET("/dashboard", handlers.Dashboard.GetDashboard)

		expenses := private.Group("/expenses")
		{
			expenses.GET("", handlers.Expense.ListExpenses)
			expenses.POST("", handlers.Expense.CreateExpense)
			expenses.DELETE("/:id", handlers.Expense.DeleteExpense)
		}

		clients := private.Group("/clients")
		{
			clients.GET("", handlers.Client.ListClients)
			clients.POST("", handlers.Client.CreateClient)
			clients.DELETE("/:id", handlers.Client.DeleteClient)
		}

		invoices := private.Group("/invoices")
		{
			invoices.GET("", handlers.Invoice.ListInvoices)
			invoices.POST("", handlers.Invoice.CreateInvoice)
			invoices.GET("/:id", handlers.Invoice.GetInvoice)
			invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
			invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		}

		private.POST("/create-checkout-session", handlers.Checkout.CreateCheckoutSession)
	}

	return router
}

// NewHandlers builds the v1 handlers from the services
func NewHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	userService service.UserService,
	dashboardService service.DashboardService,
	expenseService service.ExpenseService,
	clientService service.ClientService,
	invoiceService service.InvoiceService,
	checkoutService service.CheckoutService,
	reconcilerService service.ReconcilerService,
) Handlers {
	return Handlers{
		Health:    v1.NewHealthHandler(),
		Auth:      v1.NewAuthHandler(authService, logger),
		User:      v1.NewUserHandler(userService),
		Dashboard: v1.NewDashboardHandler(dashboardService),
		Expense:   v1.NewExpenseHandler(expenseService, logger),
		Client:    v1.NewClientHandler(clientService),
		Invoice:   v1.NewInvoiceHandler(invoiceService, logger),
		Checkout:  v1.NewCheckoutHandler(checkoutService),
		Webhook:   v1.NewWebhookHandler(reconcilerService, logger),
	}
}
