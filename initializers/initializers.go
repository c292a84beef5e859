package initializers

import (
	"context"

	"stroy-tools-backend/config"
	"stroy-tools-backend/fiberlog"
	accessresolver "stroy-tools-backend/lib/access"
	approvalhandler "stroy-tools-backend/lib/approval"
	companysettingshandler "stroy-tools-backend/lib/company-settings"
	authhandler "stroy-tools-backend/lib/company/auth"
	usershandler "stroy-tools-backend/lib/company/users"
	dailyloghandler "stroy-tools-backend/lib/daily-log"
	xlsexport "stroy-tools-backend/lib/export/xls"
	projecthandler "stroy-tools-backend/lib/project"
	"stroy-tools-backend/lib/rbac"
	timeentryhandler "stroy-tools-backend/lib/time-entry"
	staleworker "stroy-tools-backend/lib/time-entry/stale-worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	// порядок важен: резолвер доступа зависит от настроек компании,
	// прикладные обработчики - от резолвера
	companysettingshandler.NewHandler()
	accessresolver.NewHandler()
	authhandler.NewHandler()
	usershandler.NewHandler()
	projecthandler.NewHandler()
	dailyloghandler.NewHandler()
	timeentryhandler.NewHandler()
	approvalhandler.NewHandler()
	xlsexport.NewHandler()
	rbac.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача автозакрытия забытых смен
	staleworker.NewHandler()
	staleworker.Instance.StartWorker(ctx)
}
