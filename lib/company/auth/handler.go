package authhandler

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"stroy-tools-backend/config"
	"stroy-tools-backend/db"
	usersstore "stroy-tools-backend/lib/company/users/store"
	apierrors "stroy-tools-backend/lib/utils/api-errors"
	authutils "stroy-tools-backend/lib/utils/auth-utils"
	authapimodels "stroy-tools-backend/models/api/auth"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (item authapimodels.TokenResponse, err error)
	Refresh(data authapimodels.RefreshRequest) (item authapimodels.TokenResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

// Login - причину отказа наружу не раскрываем, ответ одинаковый
// для неизвестной почты, неверного пароля и заблокированного сотрудника
func (i impl) Login(data authapimodels.LoginRequest) (authapimodels.TokenResponse, error) {
	logger := log.WithField("email", data.Email)
	badCredentials := apierrors.NewForbidden("неверная почта или пароль")

	rec, err := i.store.GetByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска сотрудника при входе")
		return authapimodels.TokenResponse{}, err
	}
	if rec == nil || !rec.IsActive() {
		return authapimodels.TokenResponse{}, badCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(data.Password)) != nil {
		return authapimodels.TokenResponse{}, badCredentials
	}

	item, err := i.issueTokens(rec.ID)
	if err != nil {
		return authapimodels.TokenResponse{}, err
	}
	if err = i.store.SetLastLogin(rec.ID, time.Now()); err != nil {
		logger.WithError(err).Error("ошибка сохранения времени входа")
	}
	logger.WithField("user_id", rec.ID).Info("вход выполнен")
	return item, nil
}

func (i impl) Refresh(data authapimodels.RefreshRequest) (authapimodels.TokenResponse, error) {
	badToken := apierrors.NewForbidden("недействительный refresh токен")
	token, err := jwt.Parse(data.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return authapimodels.TokenResponse{}, badToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authapimodels.TokenResponse{}, badToken
	}
	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return authapimodels.TokenResponse{}, badToken
	}
	return i.issueTokens(userID)
}

func (i impl) issueTokens(userID string) (authapimodels.TokenResponse, error) {
	logger := log.WithField("user_id", userID)
	rec, err := i.store.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудника при выдаче токена")
		return authapimodels.TokenResponse{}, err
	}
	if rec == nil || !rec.IsActive() {
		return authapimodels.TokenResponse{}, apierrors.NewForbidden("сотрудник не найден или заблокирован")
	}
	accessToken, err := authutils.GetToken(rec.ID, rec.GetFullName(), rec.CompanyID, rec.Role.IsOwnerAdmin(), rec.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка выдачи токена")
		return authapimodels.TokenResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(rec.ID, rec.GetFullName())
	if err != nil {
		logger.WithError(err).Error("ошибка выдачи refresh токена")
		return authapimodels.TokenResponse{}, err
	}
	return authapimodels.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         string(rec.Role),
		RoleName:     rec.Role.ToHuman(),
	}, nil
}
