package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidCredentials 登录凭据不匹配（邮箱不存在和密码错误不作区分）。
var ErrInvalidCredentials = errors.New("invalid credentials")

// 默认管理员账号：首次启动时种子写入（密码以盐+哈希落库）。
const (
	DefaultAdminEmail    = "administrador@teste.com"
	DefaultAdminPassword = "123456"
)

// Service 封装管理员领域的核心用例。
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Login 按邮箱查找并校验密码哈希。凭据不匹配返回 ErrInvalidCredentials。
func (s *Service) Login(ctx context.Context, email, password string) (*Administrator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.FindByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, a.PasswordSalt, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Create 由 DTO 构造实体并落库。Role 为空时默认 Editor。
func (s *Service) Create(ctx context.Context, in DTO) (*Administrator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	role := RoleEditor
	if strings.TrimSpace(in.Role) != "" {
		parsed, ok := ParseRole(in.Role)
		if !ok {
			return nil, fmt.Errorf("unknown role: %s", in.Role)
		}
		role = parsed
	}

	salt, err := GenerateSaltHex()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, salt)
	if err != nil {
		return nil, err
	}

	a := &Administrator{
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         string(role),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) FindByID(ctx context.Context, id uint) (*Administrator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page *int) ([]Administrator, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, page)
}

// SeedDefault 确保默认管理员存在（幂等）。
func (s *Service) SeedDefault(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}

	_, err := s.repo.FindByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	_, err = s.Create(ctx, DTO{
		Email:    DefaultAdminEmail,
		Password: DefaultAdminPassword,
		Role:     string(RoleAdmin),
	})
	return err
}
