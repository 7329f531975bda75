package router

import (
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/config"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/handler"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/middleware"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB, svc *service.Ledger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	// login (open; reports auth-disabled when no operator is configured)
	authHandler := handler.NewAuthHandler(cfg.Auth)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.Auth),
		middleware.AuditMiddleware(db),
	)

	debtHandler := handler.NewDebtHandler(svc)
	protected.POST("/debts", debtHandler.RegisterDebt)
	protected.GET("/debts", debtHandler.ListDebts)
	protected.PUT("/debts/:sequence", debtHandler.UpdateDebtField)
	protected.PUT("/debts", debtHandler.BulkEdit)
	protected.GET("/totals", debtHandler.GetTotals)
	protected.POST("/persist", debtHandler.Persist)

	exportHandler := handler.NewExportHandler(svc)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)
	protected.GET("/export/csv", exportHandler.ExportCSV)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
