package vehicle

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Vehicle{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDTOValidate(t *testing.T) {
	ok := DTO{Name: "Fusca", Brand: "VW", Year: 1970}
	if msgs := ok.Validate(); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %#v", msgs)
	}

	bad := DTO{Year: 1949}
	msgs := bad.Validate()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %#v", msgs)
	}

	oldYear := DTO{Name: "Ford T", Brand: "Ford", Year: 1925}
	msgs = oldYear.Validate()
	if len(msgs) != 1 || msgs[0] != "only vehicles from 1950 onwards are accepted" {
		t.Fatalf("unexpected messages: %#v", msgs)
	}
}

func TestRepoCreateAndFind(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	v := &Vehicle{Name: "Civic", Brand: "Honda", Year: 2020}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := repo.FindByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Civic" || got.Brand != "Honda" || got.Year != 2020 {
		t.Fatalf("roundtrip mismatch: %#v", got)
	}

	if _, err := repo.FindByID(ctx, 9999); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRepoListPagination(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		v := &Vehicle{Name: fmt.Sprintf("car-%02d", i), Brand: "brand", Year: 1950 + i}
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// 无分页参数：全量
	all, err := repo.List(ctx, nil, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 15 {
		t.Fatalf("expected 15, got %d", len(all))
	}

	// 第 2 页应当是第 11~15 条
	page := 2
	got, err := repo.List(ctx, &page, "")
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 records, got %d", len(got))
	}
	for i, v := range got {
		want := fmt.Sprintf("car-%02d", 11+i)
		if v.Name != want {
			t.Fatalf("record %d: name=%s want=%s", i, v.Name, want)
		}
	}
}

func TestRepoListNameFilter(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	seed := []Vehicle{
		{Name: "Fusca", Brand: "VW", Year: 1970},
		{Name: "Gol", Brand: "VW", Year: 1995},
		{Name: "Fuscao", Brand: "VW", Year: 1975},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.List(ctx, nil, "FUSC")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestServiceUpdateReplacesFields(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	v, err := svc.Create(ctx, DTO{Name: "Uno", Brand: "Fiat", Year: 1990})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, v, DTO{Name: "Uno Mille", Brand: "Fiat", Year: 1994}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.FindByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Uno Mille" || got.Year != 1994 {
		t.Fatalf("update not applied: %#v", got)
	}
}
