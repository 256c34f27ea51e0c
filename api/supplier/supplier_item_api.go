package supplier

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"procurement.GO/api"
	"procurement.GO/core/auth"
	"procurement.GO/service/pricing"
)

func init() {
	api.RegisterModule(RegisterSupplierItemRoutes)
}

func RegisterSupplierItemRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/supplier-items")

	// POST /api/supplier-items/import – bulk supplier price upsert
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		p, ok := auth.PrincipalFrom(c)
		if !ok {
			return api.Unauthorized(c)
		}
		if !p.CanWrite() {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "insufficient permissions"})
		}

		var body struct {
			Items     []pricing.SupplierItemInput `json:"items"`
			BatchSize int                         `json:"batchSize"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "items array is required and must not be empty"})
		}

		// Super admins may touch any organization's price lists; everyone else only their own.
		var orgID uint
		if !p.IsSuperAdmin() {
			orgID = p.OrganizationID
		}

		ctx := c.Request().Context()
		res, err := pricing.ImportSupplierItems(ctx, deps.DB, orgID, body.Items, body.BatchSize)
		if err != nil {
			return api.Error(c, deps.Log, err)
		}
		// An empty id list would flush the whole cache.
		if len(res.SupplierIDs) > 0 {
			deps.Prices.Invalidate(ctx, res.SupplierIDs...)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"message":  "Supplier prices imported",
			"imported": res.Imported,
			"skipped":  res.Skipped,
			"warnings": res.Warnings,
		})
	})
}
