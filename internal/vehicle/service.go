package vehicle

import (
	"context"
	"fmt"
	"strings"
)

// Service 封装车辆领域的核心用例（不依赖 HTTP），便于复用和测试。
// 字段级校验在 HTTP 边界完成（DTO.Validate），这里只做编排。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Create 由 DTO 构造实体并落库，返回带 ID 的实体。
func (s *Service) Create(ctx context.Context, in DTO) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	v := &Vehicle{
		Name:  strings.TrimSpace(in.Name),
		Brand: strings.TrimSpace(in.Brand),
		Year:  in.Year,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update 整体替换 name/brand/year。
func (s *Service) Update(ctx context.Context, v *Vehicle, in DTO) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	v.Name = strings.TrimSpace(in.Name)
	v.Brand = strings.TrimSpace(in.Brand)
	v.Year = in.Year
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, v *Vehicle) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	return s.repo.Delete(ctx, v)
}

func (s *Service) FindByID(ctx context.Context, id uint) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page *int, name string) ([]Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, page, name)
}
