package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"procurement.GO/config"
	"procurement.GO/core/auth"
	poRepo "procurement.GO/model/repository/purchaseorder"
	"procurement.GO/search"
	"procurement.GO/service/pricing"
	"procurement.GO/service/report"
)

// systemPrincipal is the identity CLI commands act under.
var systemPrincipal = auth.Principal{Role: auth.RoleSuperAdmin}

var (
	overdueOrg  uint
	reindexOrg  uint
	pricesFile  string
	pricesBatch int
	pricesOrg   uint
)

var overdueCmd = &cobra.Command{
	Use:   "purchase-orders:overdue",
	Short: "Print overdue purchase orders as JSON, grouped by organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, zaplog, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer zaplog.Sync()

		reports := report.NewService(db)
		ctx := cmd.Context()
		now := time.Now()
		var out interface{}
		if overdueOrg != 0 {
			out, err = reports.Overdue(ctx, systemPrincipal, overdueOrg, now)
		} else {
			out, err = reports.OverdueByOrganization(ctx, now)
		}
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var importPricesCmd = &cobra.Command{
	Use:   "supplier-prices:import",
	Short: "Upsert supplier item prices from a CSV file (supplier_id,item_id,unit_price[,uom])",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, zaplog, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer zaplog.Sync()

		f, err := os.Open(pricesFile)
		if err != nil {
			return fmt.Errorf("failed to open CSV: %w", err)
		}
		defer f.Close()

		start := time.Now()
		items, warnings, err := pricing.ParseSupplierItemsCSV(f)
		if err != nil {
			return err
		}
		res, err := pricing.ImportSupplierItems(cmd.Context(), db, pricesOrg, items, pricesBatch)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		// Only a shared cache outlives this process.
		if err := config.ConnectRedis(); err != nil {
			zaplog.Warn("price cache not invalidated", zap.Error(err))
		}
		if config.RedisClient != nil && len(res.SupplierIDs) > 0 {
			pricing.NewPriceLookup(db, pricing.NewRedisPriceCache(config.RedisClient, cfg.PriceCacheTTL)).
				Invalidate(cmd.Context(), res.SupplierIDs...)
		}

		for _, w := range append(warnings, res.Warnings...) {
			fmt.Fprintf(cmd.OutOrStdout(), "  [warn] %s\n", w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), `
=== Import Report ===
CSV rows:   %d
Imported:   %d
Skipped:    %d
Suppliers:  %d
Total time: %s
=====================
`, len(items), res.Imported, res.Skipped, len(res.SupplierIDs), time.Since(start).Round(time.Millisecond))
		zaplog.Info("supplier prices imported", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "search:reindex",
	Short: "Bulk index purchase orders into Elasticsearch",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, zaplog, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer zaplog.Sync()
		if cfg.ElasticsearchHost == "" {
			return fmt.Errorf("ELASTICSEARCH_HOST is not set")
		}
		ix, err := search.NewElasticIndexer(cfg.ElasticsearchHost, cfg.ElasticsearchPrefix)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		orders, err := poRepo.NewPurchaseOrderRepository(db).FindAll(ctx, poRepo.ListFilter{OrganizationID: reindexOrg})
		if err != nil {
			return err
		}
		start := time.Now()
		n, err := ix.BulkIndex(ctx, orders)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d of %d purchase orders into %s in %s\n",
			n, len(orders), search.IndexName(cfg.ElasticsearchPrefix), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	overdueCmd.Flags().UintVar(&overdueOrg, "org", 0, "Organization ID (default: all organizations)")

	importPricesCmd.Flags().StringVarP(&pricesFile, "file", "f", "", "CSV file path (required)")
	importPricesCmd.MarkFlagRequired("file")
	importPricesCmd.Flags().IntVar(&pricesBatch, "batch-size", 500, "Batch size for DB upserts")
	importPricesCmd.Flags().UintVar(&pricesOrg, "org", 0, "Only accept suppliers and items of this organization (default: any)")

	reindexCmd.Flags().UintVar(&reindexOrg, "org", 0, "Organization ID (default: all organizations)")

	rootCmd.AddCommand(overdueCmd, importPricesCmd, reindexCmd)
}
