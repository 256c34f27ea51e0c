package pricing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	supplierEntity "procurement.GO/model/entity/supplier"
	supplierRepo "procurement.GO/model/repository/supplier"
)

// SupplierItemInput is one price row of an import.
type SupplierItemInput struct {
	SupplierID uint            `json:"supplierId"`
	ItemID     uint            `json:"itemId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	UOM        string          `json:"uom"`
}

// ImportResult holds the result of a price import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
	// SupplierIDs lists the suppliers whose price list changed.
	SupplierIDs []uint `json:"-"`
}

// ImportSupplierItems upserts supplier price rows, skipping rows whose supplier or
// item does not exist in organizationID (0 allows every organization). A later row
// for the same (supplier, item) wins.
func ImportSupplierItems(ctx context.Context, db *gorm.DB, organizationID uint, items []SupplierItemInput, batchSize int) (*ImportResult, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	repo := supplierRepo.NewSupplierItemRepository(db)
	result := &ImportResult{}

	supplierIDs := make([]uint, 0, len(items))
	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		supplierIDs = append(supplierIDs, it.SupplierID)
		itemIDs = append(itemIDs, it.ItemID)
	}
	knownSuppliers, err := repo.ExistingSupplierIDs(ctx, organizationID, supplierIDs)
	if err != nil {
		return nil, err
	}
	knownItems, err := repo.ExistingItemIDs(ctx, organizationID, itemIDs)
	if err != nil {
		return nil, err
	}

	type pairKey struct{ supplierID, itemID uint }
	index := make(map[pairKey]int, len(items))
	rows := make([]supplierEntity.SupplierItem, 0, len(items))
	touched := make(map[uint]bool)
	for n, it := range items {
		switch {
		case !knownSuppliers[it.SupplierID]:
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: supplier %d not found", n+1, it.SupplierID))
			continue
		case !knownItems[it.ItemID]:
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: item %d not found", n+1, it.ItemID))
			continue
		case it.UnitPrice.IsNegative():
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: negative unit price %s", n+1, it.UnitPrice))
			continue
		}

		row := supplierEntity.SupplierItem{
			SupplierID: it.SupplierID,
			ItemID:     it.ItemID,
			UnitPrice:  it.UnitPrice,
			UOM:        strings.TrimSpace(it.UOM),
		}
		key := pairKey{it.SupplierID, it.ItemID}
		if pos, dup := index[key]; dup {
			rows[pos] = row
		} else {
			index[key] = len(rows)
			rows = append(rows, row)
		}
		if !touched[it.SupplierID] {
			touched[it.SupplierID] = true
			result.SupplierIDs = append(result.SupplierIDs, it.SupplierID)
		}
		result.Imported++
	}

	if err := repo.Upsert(ctx, rows, batchSize); err != nil {
		return nil, err
	}
	return result, nil
}

var csvHeader = []string{"supplier_id", "item_id", "unit_price", "uom"}

// ParseSupplierItemsCSV reads rows with the header supplier_id,item_id,unit_price,uom.
// Unparseable rows are reported as warnings and left out.
func ParseSupplierItemsCSV(r io.Reader) ([]SupplierItemInput, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty csv")
		}
		return nil, nil, err
	}
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvHeader[:3] {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", col)
		}
	}

	field := func(row []string, col string) string {
		ci, ok := colIndex[col]
		if !ok || ci >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ci])
	}

	var (
		items    []SupplierItemInput
		warnings []string
	)
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, err
		}
		supplierID, err := strconv.ParseUint(field(row, "supplier_id"), 10, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid supplier_id %q", line, field(row, "supplier_id")))
			continue
		}
		itemID, err := strconv.ParseUint(field(row, "item_id"), 10, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid item_id %q", line, field(row, "item_id")))
			continue
		}
		price, err := decimal.NewFromString(field(row, "unit_price"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid unit_price %q", line, field(row, "unit_price")))
			continue
		}
		items = append(items, SupplierItemInput{
			SupplierID: uint(supplierID),
			ItemID:     uint(itemID),
			UnitPrice:  price,
			UOM:        field(row, "uom"),
		})
	}
	return items, warnings, nil
}
