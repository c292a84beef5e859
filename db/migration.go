package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "stroy-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Company{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Company")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.CompanySetting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CompanySetting")
	}
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Project")
	}
	if err := DB.AutoMigrate(&dbmodels.ProjectAssignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProjectAssignment")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyLog")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyLogEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyLogEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyLogMaterial{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyLogMaterial")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyLogIssue{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyLogIssue")
	}
	if err := DB.AutoMigrate(&dbmodels.DailyLogVisitor{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DailyLogVisitor")
	}
	if err := DB.AutoMigrate(&dbmodels.TimeEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TimeEntry")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
