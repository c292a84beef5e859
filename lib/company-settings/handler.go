package companysettingshandler

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stroy-tools-backend/config"
	"stroy-tools-backend/db"
	companysettingsstore "stroy-tools-backend/lib/company-settings/store"
	"stroy-tools-backend/models"
	dbmodels "stroy-tools-backend/models/db"
)

// Provider - единая точка доступа к настройкам компании.
// Чтение идёт через кеш с коротким TTL, запись сбрасывает кеш компании.
type Provider interface {
	Get(companyID string) (rec dbmodels.CompanySetting, err error)
	UpdateRoleAccess(companyID string, role models.UserRole, access models.RoleDataAccess) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstanceWithDB(db.DB, time.Duration(config.Conf.Cache.SettingsTTLInSec)*time.Second)
}

func NewInstanceWithDB(DB *gorm.DB, ttl time.Duration) Provider {
	return &impl{
		store: companysettingsstore.NewInstance(DB),
		ttl:   ttl,
		cache: map[string]cacheEntry{},
	}
}

type cacheEntry struct {
	rec      dbmodels.CompanySetting
	deadline time.Time
}

type impl struct {
	store companysettingsstore.Provider
	ttl   time.Duration
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func (i *impl) Get(companyID string) (dbmodels.CompanySetting, error) {
	i.mu.RLock()
	entry, exist := i.cache[companyID]
	i.mu.RUnlock()
	if exist && time.Now().Before(entry.deadline) {
		return entry.rec, nil
	}
	rec, err := i.store.GetOrCreate(companyID)
	if err != nil {
		log.WithField("company_id", companyID).
			WithError(err).
			Error("ошибка получения настроек компании")
		return dbmodels.CompanySetting{}, err
	}
	i.mu.Lock()
	i.cache[companyID] = cacheEntry{rec: *rec, deadline: time.Now().Add(i.ttl)}
	i.mu.Unlock()
	return *rec, nil
}

func (i *impl) UpdateRoleAccess(companyID string, role models.UserRole, access models.RoleDataAccess) error {
	err := i.store.UpdateRoleAccess(companyID, role, access)
	if err != nil {
		log.WithField("company_id", companyID).
			WithField("role", role).
			WithError(err).
			Error("ошибка обновления настроек доступа")
		return err
	}
	i.mu.Lock()
	delete(i.cache, companyID)
	i.mu.Unlock()
	log.WithField("company_id", companyID).
		WithField("role", role).
		Info("обновлены настройки доступа роли")
	return nil
}
