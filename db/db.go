package db

import (
	"equipment_availability/models"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate models: %w", err)
	}
	log.Info().Msg("database connected")
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Equipment{}, &models.Planning{}); err != nil {
		return err
	}

	// 区间重叠查询：按设备 + 起止日期
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_equipment_dates
	  ON %s (equipment_id, start_date, end_date);
	`, models.PlanningTable, models.PlanningTable)).Error; err != nil {
		return err
	}

	return nil
}
