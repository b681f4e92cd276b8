package vehicle

import "fmt"

const (
	// PageSize 列表固定每页条数。
	PageSize = 10
	// MinYear 只登记 1950 年及之后的车辆。
	MinYear = 1950
)

// Vehicle 是 vehicles 表的 GORM 模型。
type Vehicle struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:150;not null" json:"name"`
	Brand string `gorm:"size:100;not null" json:"brand"`
	Year  int    `gorm:"not null" json:"year"`
}

// DTO 创建/更新车辆的入参。
type DTO struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Year  int    `json:"year"`
}

// Validate 按字段收集校验错误，返回空切片表示通过。
func (d DTO) Validate() []string {
	var msgs []string
	if d.Name == "" {
		msgs = append(msgs, "vehicle name is required")
	}
	if d.Brand == "" {
		msgs = append(msgs, "vehicle brand is required")
	}
	if d.Year < MinYear {
		msgs = append(msgs, fmt.Sprintf("only vehicles from %d onwards are accepted", MinYear))
	}
	return msgs
}
