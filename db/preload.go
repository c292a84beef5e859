package db

import (
	log "github.com/sirupsen/logrus"

	companysettingsstore "stroy-tools-backend/lib/company-settings/store"
	companystore "stroy-tools-backend/lib/company/store"
)

func InitPreload() {
	fillCompanySettings()
}

// для активных компаний создаём запись настроек, если её ещё нет
func fillCompanySettings() {
	log.Info("предзаполнение дефолтных настроек")
	companyStore := companystore.NewInstance(DB)
	settingsStore := companysettingsstore.NewInstance(DB)
	ids, err := companyStore.GetActiveIds()
	if err != nil {
		log.WithError(err).Error("ошибка получения активных компаний")
		return
	}
	for _, companyID := range ids {
		_, err = settingsStore.GetOrCreate(companyID)
		if err != nil {
			log.WithError(err).
				WithField("company_id", companyID).
				Error("ошибка добавления настроек компании")
			continue
		}
	}
	log.Info("предзаполнение дефолтных настроек завершено")
}
