package repository

import (
	"context"
	"testing"

	"github.com/timmy/artglass/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *SettingsRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Setting{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewSettingsRepository(db)
}

func TestGetFallsBackWhenUnset(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Get(context.Background(), domain.SettingKeyHotkey, domain.DefaultHotkey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != domain.DefaultHotkey {
		t.Errorf("Get = %q, want the fallback %q", got, domain.DefaultHotkey)
	}
}

func TestSetThenGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, domain.SettingKeyHotkey, "CmdOrCtrl+Shift+A"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.Get(ctx, domain.SettingKeyHotkey, domain.DefaultHotkey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "CmdOrCtrl+Shift+A" {
		t.Errorf("Get = %q, want the stored value", got)
	}
}

func TestSetOverwritesExistingValue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, domain.SettingKeyHotkey, "CmdOrCtrl+Shift+A"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set(ctx, domain.SettingKeyHotkey, "CmdOrCtrl+Shift+B"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.Get(ctx, domain.SettingKeyHotkey, domain.DefaultHotkey)
	if err != nil {
		t.Fatal(err)
	}
	if got != "CmdOrCtrl+Shift+B" {
		t.Errorf("Get = %q, want the replaced value", got)
	}
}
