package admin

import "strings"

// PageSize 列表固定每页条数。
const PageSize = 10

// Role 管理员角色枚举（持久化为字符串）。
type Role string

const (
	RoleAdmin  Role = "Adm"    // 全量权限
	RoleEditor Role = "Editor" // 仅车辆读写
)

// ParseRole 将外部输入解析为已知角色（大小写不敏感，接受 adm/admin/editor）。
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adm", "admin":
		return RoleAdmin, true
	case "editor":
		return RoleEditor, true
	default:
		return "", false
	}
}

// Administrator 是 administrators 表的 GORM 模型。
// 密码只保存盐 + 哈希，不落明文。
type Administrator struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	PasswordSalt string `gorm:"size:64;not null" json:"-"`
	Role         string `gorm:"size:16;not null" json:"role"`
}

// DTO 创建管理员的入参。
type DTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate 按字段收集校验错误，返回空切片表示通过。
// Role 为空不算错误（入库时默认 Editor），但给了未知值要报。
func (d DTO) Validate() []string {
	var msgs []string
	if strings.TrimSpace(d.Email) == "" {
		msgs = append(msgs, "email is required")
	}
	if d.Password == "" {
		msgs = append(msgs, "password is required")
	}
	if strings.TrimSpace(d.Role) != "" {
		if _, ok := ParseRole(d.Role); !ok {
			msgs = append(msgs, "role must be Adm or Editor")
		}
	}
	return msgs
}
