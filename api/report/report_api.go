package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"procurement.GO/api"
	"procurement.GO/core/auth"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

// RegisterReportRoutes mounts the purchase order reports under /api/reports.
func RegisterReportRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/reports/purchase-orders")

	// GET /api/reports/purchase-orders/summary?organizationId=
	g.GET("/summary", func(c echo.Context) error {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			return api.Unauthorized(c)
		}
		orgID, err := api.ParseOptionalUint(c, "organizationId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		sum, err := deps.Reports.Summary(c.Request().Context(), p, orgID, time.Now())
		if err != nil {
			return api.Error(c, deps.Log, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Purchase order summary retrieved successfully",
			"summary": sum,
		})
	})

	// GET /api/reports/purchase-orders/overdue?organizationId=
	g.GET("/overdue", func(c echo.Context) error {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			return api.Unauthorized(c)
		}
		orgID, err := api.ParseOptionalUint(c, "organizationId")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		orders, err := deps.Reports.Overdue(c.Request().Context(), p, orgID, time.Now())
		if err != nil {
			return api.Error(c, deps.Log, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":        "Overdue purchase orders retrieved successfully",
			"purchaseOrders": orders,
		})
	})
}
