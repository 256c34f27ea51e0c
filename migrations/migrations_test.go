package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFS_EveryUpHasDown(t *testing.T) {
	names, err := fs.Glob(FS, "*.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for _, up := range names {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(FS, down); err != nil {
			t.Errorf("%s has no matching %s", up, down)
		}
	}
}

func TestFS_CreatesEveryTable(t *testing.T) {
	var all strings.Builder
	names, _ := fs.Glob(FS, "*.up.sql")
	for _, n := range names {
		b, err := fs.ReadFile(FS, n)
		if err != nil {
			t.Fatal(err)
		}
		all.Write(b)
	}
	for _, table := range []string{"items", "suppliers", "supplier_items", "purchase_orders", "purchase_order_items", "goods_receipt_notes"} {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("missing table %s", table)
		}
	}
}
