package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("PROCUREMENT_TEST_KEY", "set")
	if got := GetEnv("PROCUREMENT_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("PROCUREMENT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q, want fallback", got)
	}
}

func TestCronSchedule_Override(t *testing.T) {
	if got := CronSchedule("overduepurchaseorders"); got != "@hourly" {
		t.Errorf("default schedule = %q, want @hourly", got)
	}
	t.Setenv("CRON_OVERDUEPURCHASEORDERS", "@every 5m")
	if got := CronSchedule("overduepurchaseorders"); got != "@every 5m" {
		t.Errorf("overridden schedule = %q, want @every 5m", got)
	}
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := NewDB(); err == nil {
		t.Fatal("NewDB with unsupported driver: want error")
	}
}

func TestConnectRedis_Unset(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if err := ConnectRedis(); err != nil {
		t.Fatalf("ConnectRedis: %v", err)
	}
	if RedisClient != nil {
		t.Error("RedisClient should stay nil without REDIS_ADDR")
	}
}
