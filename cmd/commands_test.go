package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"u:p@tcp(db:3306)/po":                "mysql://u:p@tcp(db:3306)/po?multiStatements=true",
		"u:p@tcp(db:3306)/po?parseTime=true": "mysql://u:p@tcp(db:3306)/po?parseTime=true&multiStatements=true",
	}
	for dsn, want := range cases {
		if got := migrateURL(dsn); got != want {
			t.Errorf("migrateURL(%q) = %q, want %q", dsn, got, want)
		}
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCommands_SQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("GORM_LOG", "off")

	if out := run(t, "db:automigrate"); !strings.Contains(out, "AutoMigrate done") {
		t.Fatalf("db:automigrate output = %q", out)
	}

	if out := run(t, "purchase-orders:overdue"); strings.TrimSpace(out) != "{}" {
		t.Errorf("overdue on empty database = %q, want {}", out)
	}

	csvPath := filepath.Join(dir, "prices.csv")
	if err := os.WriteFile(csvPath, []byte("supplier_id,item_id,unit_price\n99,1,2.50\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := run(t, "supplier-prices:import", "--file", csvPath)
	if !strings.Contains(out, "Imported:   0") || !strings.Contains(out, "supplier 99 not found") {
		t.Errorf("import output = %q", out)
	}
}
