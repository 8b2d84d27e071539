package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_ProviderTokenRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FOOTBALL_DATA_TOKEN is unset")
	}
}

func TestLoad_ProviderDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataBaseURL != "https://api.football-data.org/v4" {
		t.Fatalf("unexpected provider base url: %q", cfg.FootballDataBaseURL)
	}
	if cfg.FootballDataTimeout != 20*time.Second {
		t.Fatalf("unexpected provider timeout: %s", cfg.FootballDataTimeout)
	}
	if cfg.FootballDataMaxRetries != 2 {
		t.Fatalf("unexpected provider max retries: %d", cfg.FootballDataMaxRetries)
	}
	if !cfg.FootballDataCircuitEnabled {
		t.Fatalf("expected provider circuit enabled by default")
	}
}

func TestLoad_LeagueCodesParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LEAGUE_CODES", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		want := []string{"PL", "PD", "SA", "BL1", "FL1", "CL"}
		if len(cfg.LeagueCodes) != len(want) {
			t.Fatalf("unexpected league codes: %+v", cfg.LeagueCodes)
		}
		for i, code := range want {
			if cfg.LeagueCodes[i] != code {
				t.Fatalf("unexpected league code at %d: %q", i, cfg.LeagueCodes[i])
			}
		}
	})

	t.Run("comma separated with spaces", func(t *testing.T) {
		t.Setenv("LEAGUE_CODES", " PL , SA ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.LeagueCodes) != 2 || cfg.LeagueCodes[0] != "PL" || cfg.LeagueCodes[1] != "SA" {
			t.Fatalf("unexpected league codes: %+v", cfg.LeagueCodes)
		}
	})
}

func TestLoad_SeasonPriorityParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")

	t.Run("ordered years", func(t *testing.T) {
		t.Setenv("SEASON_PRIORITY", "2026,2025,2024")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SeasonPriority) != 3 || cfg.SeasonPriority[0] != 2026 || cfg.SeasonPriority[2] != 2024 {
			t.Fatalf("unexpected season priority: %+v", cfg.SeasonPriority)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		t.Setenv("SEASON_PRIORITY", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SEASON_PRIORITY")
		}
	})

	t.Run("out of range year", func(t *testing.T) {
		t.Setenv("SEASON_PRIORITY", "205")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for out of range season year")
		}
	})
}

func TestLoad_SweepWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")
	t.Setenv("SWEEP_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SWEEP_MAX_WORKERS=0")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")
	t.Setenv("APP_SERVICE_NAME", "footsight-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "footsight-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}
