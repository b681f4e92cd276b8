package vehicle

import (
	"context"
	"fmt"
	"strings"

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

func (r *Repo) Create(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(v).Error
}

func (r *Repo) Update(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(v).Error
}

func (r *Repo) Delete(ctx context.Context, v *Vehicle) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Delete(v).Error
}

func (r *Repo) FindByID(ctx context.Context, id uint) (*Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var v Vehicle
	if err := db.Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// List 支持按名称子串（大小写不敏感）过滤 + 分页。
// page 为 nil 时返回全量；否则按固定每页 PageSize 取第 page 页（1 起）。
// 固定按 id 升序，保证分页结果稳定。
func (r *Repo) List(ctx context.Context, page *int, name string) ([]Vehicle, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	q := db.Model(&Vehicle{})
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	q = q.Order("id ASC")

	if page != nil {
		p := *page
		if p < 1 {
			p = 1
		}
		q = q.Offset((p - 1) * PageSize).Limit(PageSize)
	}

	var vehicles []Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
