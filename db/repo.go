package db

import (
	"context"
	"errors"
	"strings"

	"equipment_availability/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrEquipmentName     = errors.New("equipment name is required")
	ErrEquipmentStock    = errors.New("equipment stock cannot be negative")
)

// Equipment

func (r *Repo) CreateEquipment(ctx context.Context, eq *models.Equipment) error {
	eq.Name = strings.TrimSpace(eq.Name)
	if eq.Name == "" {
		return ErrEquipmentName
	}
	if eq.Stock < 0 {
		return ErrEquipmentStock
	}
	return r.DB.WithContext(ctx).Create(eq).Error
}

// 按 ID 查
func (r *Repo) FindEquipmentByID(ctx context.Context, id int) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// 列表（关键词匹配名称）
func (r *Repo) ListEquipment(ctx context.Context, q string) ([]models.Equipment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Equipment{})
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	var items []models.Equipment
	err := tx.Order("id ASC").Find(&items).Error
	return items, err
}
