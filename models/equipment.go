// models/equipment.go
package models

import "time"

const EquipmentTable = "equipment"
const PlanningTable = "planning"

type Equipment struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Stock     int       `gorm:"not null;default:0" json:"stock"` // 总库存，按天共享
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Planning 一条预约：[StartDate, EndDate] 两端都包含
type Planning struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	EquipmentID int       `gorm:"index;not null" json:"equipmentId"`
	StartDate   time.Time `gorm:"type:date;index;not null" json:"start"`
	EndDate     time.Time `gorm:"type:date;index;not null" json:"end"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Note        string    `gorm:"size:255" json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }
func (Planning) TableName() string  { return PlanningTable }
