package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("expected redis disabled by default, got %s", cfg.Redis.URL)
	}
	if !cfg.CashRegister.RequireBarberForSale {
		t.Error("expected barber to be required for sales by default")
	}
	if cfg.CashRegister.HistoryDefaultLimit != 10 || cfg.CashRegister.HistoryMaxLimit != 100 {
		t.Errorf("unexpected history limits %d/%d", cfg.CashRegister.HistoryDefaultLimit, cfg.CashRegister.HistoryMaxLimit)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected allowed origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CASH_REQUIRE_BARBER_FOR_SALE", "false")
	t.Setenv("CASH_TIMEZONE", "America/Sao_Paulo")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected driver to be normalised, got %s", cfg.Database.Driver)
	}
	if cfg.JWT.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("expected 30m access expiry, got %s", cfg.JWT.AccessTokenExpiry)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected allowed origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.CashRegister.RequireBarberForSale {
		t.Error("expected barber requirement to be disabled")
	}
	if loc := cfg.CashRegister.Location(); loc.String() != "America/Sao_Paulo" {
		t.Errorf("expected America/Sao_Paulo, got %s", loc)
	}
}

func TestCashRegisterConfig_LocationFallback(t *testing.T) {
	cfg := CashRegisterConfig{Timezone: "Mars/Olympus"}
	if cfg.Location() != time.Local {
		t.Error("expected unknown timezone to fall back to local time")
	}
}
