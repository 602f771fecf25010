package routes

import (
	"github.com/labstack/echo/v4"

	"os-manager/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController) {
	secureGroup.GET("/reports", reportCtrl.GetReport)
	secureGroup.GET("/reports/export", reportCtrl.ExportReport)
}

func runDashboardRouter(secureGroup *echo.Group, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboard)
}
