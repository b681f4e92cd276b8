package admin

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Administrator{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewRepo(db))
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"Adm":    RoleAdmin,
		"admin":  RoleAdmin,
		"ADM":    RoleAdmin,
		"Editor": RoleEditor,
		"editor": RoleEditor,
	}
	for in, want := range cases {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestDTOValidate(t *testing.T) {
	if msgs := (DTO{Email: "a@b.com", Password: "x", Role: "Editor"}).Validate(); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %#v", msgs)
	}
	if msgs := (DTO{}).Validate(); len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %#v", msgs)
	}
	if msgs := (DTO{Email: "a@b.com", Password: "x", Role: "root"}).Validate(); len(msgs) != 1 {
		t.Fatalf("expected 1 message for unknown role, got %#v", msgs)
	}
}

func TestSeedDefaultAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SeedDefault(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// 幂等
	if err := svc.SeedDefault(ctx); err != nil {
		t.Fatalf("seed twice: %v", err)
	}

	a, err := svc.Login(ctx, DefaultAdminEmail, DefaultAdminPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if a.Role != string(RoleAdmin) {
		t.Fatalf("role mismatch: %s", a.Role)
	}
	if a.PasswordHash == DefaultAdminPassword {
		t.Fatalf("password stored in plain form")
	}

	if _, err := svc.Login(ctx, DefaultAdminEmail, "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@teste.com", "123456"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestCreateDefaultsToEditor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, DTO{Email: "editor@teste.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Role != string(RoleEditor) {
		t.Fatalf("expected default Editor role, got %s", a.Role)
	}
	if a.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}
