package cron

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	poEntity "procurement.GO/model/entity/purchaseorder"
	"procurement.GO/model/modeltest"
	"procurement.GO/service/report"
)

func TestOverdueJob_LogsPerOrganization(t *testing.T) {
	db := modeltest.NewDB(t)
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	orders := []poEntity.PurchaseOrder{
		{OrganizationID: 1, SupplierID: 1, OrderNumber: "PO-1", Status: poEntity.StatusPending, ExpectedDate: &past},
		{OrganizationID: 1, SupplierID: 1, OrderNumber: "PO-2", Status: poEntity.StatusOpen, ExpectedDate: &past},
		{OrganizationID: 2, SupplierID: 1, OrderNumber: "PO-3", Status: poEntity.StatusPending, ExpectedDate: &past},
		{OrganizationID: 2, SupplierID: 1, OrderNumber: "PO-4", Status: poEntity.StatusCompleted, ExpectedDate: &past},
		{OrganizationID: 3, SupplierID: 1, OrderNumber: "PO-5", Status: poEntity.StatusPending, ExpectedDate: &future},
	}
	for i := range orders {
		orders[i].TotalAmount = decimal.NewNullDecimal(decimal.Zero)
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	job := OverdueJob(report.NewService(db), zap.New(core), func() time.Time { return now })
	job.Run()

	warned := logs.FilterMessage("overdue purchase orders").All()
	require.Len(t, warned, 2)
	counts := map[int64]int64{}
	for _, entry := range warned {
		fields := entry.ContextMap()
		counts[int64(fields["organization_id"].(uint64))] = fields["count"].(int64)
	}
	require.Equal(t, map[int64]int64{1: 2, 2: 1}, counts)

	finished := logs.FilterMessage("overdue purchase orders scan finished").All()
	require.Len(t, finished, 1)
	require.Equal(t, int64(3), finished[0].ContextMap()["total"])
}

func TestOverdueJob_DefaultSchedule(t *testing.T) {
	job := OverdueJob(nil, zap.NewNop(), time.Now)
	require.Equal(t, "@hourly", job.Schedule)
}

func TestMerge_BuiltinsWin(t *testing.T) {
	Register("mergejob", "@daily", func(...string) {})
	defer Unregister("mergejob")
	Register(OverdueJobName, "@every 1s", func(...string) {})
	defer Unregister(OverdueJobName)

	jobs := Merge(map[string]Job{OverdueJobName: {Schedule: "@hourly"}})
	require.Contains(t, jobs, "mergejob")
	require.Equal(t, "@hourly", jobs[OverdueJobName].Schedule)
}
