// Package custom is the drop-in extension point: blank-import it and its init
// registers GraphQL extensions, CLI commands, cron jobs and public routes.
package custom

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"procurement.GO/api"
	"procurement.GO/cmd"
	gqlregistry "procurement.GO/graphql/registry"
	poEntity "procurement.GO/model/entity/purchaseorder"
)

// Statuses lists every purchase order status in lifecycle order.
var Statuses = []poEntity.Status{
	poEntity.StatusPending,
	poEntity.StatusOpen,
	poEntity.StatusCompleted,
	poEntity.StatusCancelled,
	poEntity.StatusRejected,
}

func init() {
	// GraphQL extension: _extension(name: "purchaseOrderStatuses")
	gqlregistry.Register("purchaseOrderStatuses", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return Statuses, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "purchase-orders:statuses",
		Short: "Print the purchase order statuses as JSON",
		RunE: func(c *cobra.Command, args []string) error {
			return json.NewEncoder(c.OutOrStdout()).Encode(Statuses)
		},
	})

	// Public route (skipped by auth)
	api.RegisterGET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
