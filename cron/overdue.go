package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"procurement.GO/config"
	"procurement.GO/service/report"
)

const OverdueJobName = "overduepurchaseorders"

// OverdueJob logs, per organization, the purchase orders whose expected date
// has passed while they are still PENDING or OPEN.
func OverdueJob(reports *report.Service, log *zap.Logger, now func() time.Time) Job {
	return Job{
		Schedule: config.CronSchedule(OverdueJobName),
		Run: func(...string) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			byOrg, err := reports.OverdueByOrganization(ctx, now())
			if err != nil {
				log.Error("overdue purchase orders scan failed", zap.Error(err))
				return
			}
			total := 0
			for org, orders := range byOrg {
				numbers := make([]string, 0, len(orders))
				for _, po := range orders {
					numbers = append(numbers, po.OrderNumber)
				}
				total += len(orders)
				log.Warn("overdue purchase orders",
					zap.Uint("organization_id", org),
					zap.Int("count", len(orders)),
					zap.Strings("order_numbers", numbers),
				)
			}
			log.Info("overdue purchase orders scan finished", zap.Int("organizations", len(byOrg)), zap.Int("total", total))
		},
	}
}

// Builtins returns the jobs every scheduler runs.
func Builtins(db *gorm.DB, log *zap.Logger) map[string]Job {
	return map[string]Job{
		OverdueJobName: OverdueJob(report.NewService(db), log, time.Now),
	}
}
