package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"POSTGRES_HOST", "POSTGRES_DB", "INVOICE_DUE_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.InvoiceDueDays != 14 {
		t.Errorf("InvoiceDueDays = %d, want 14", cfg.InvoiceDueDays)
	}
	want := "postgres://admin:admin@db/erp_db?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/other")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.DSN(); got != "postgres://u:p@localhost:5432/other" {
		t.Errorf("DSN() = %q, want DATABASE_URL verbatim", got)
	}
}

func TestLoadRejectsNonPositiveDueDays(t *testing.T) {
	t.Setenv("INVOICE_DUE_DAYS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted INVOICE_DUE_DAYS=0, want error")
	}
}
