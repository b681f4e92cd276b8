package admin

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, a *Administrator) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(a).Error
}

func (r *Repo) FindByID(ctx context.Context, id uint) (*Administrator, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var a Administrator
	if err := db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*Administrator, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var a Administrator
	if err := db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// List 分页列表。page 为 nil 时返回全量；固定按 id 升序。
func (r *Repo) List(ctx context.Context, page *int) ([]Administrator, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	q := db.Model(&Administrator{}).Order("id ASC")
	if page != nil {
		p := *page
		if p < 1 {
			p = 1
		}
		q = q.Offset((p - 1) * PageSize).Limit(PageSize)
	}

	var admins []Administrator
	if err := q.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
