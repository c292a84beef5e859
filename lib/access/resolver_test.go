package accessresolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stroy-tools-backend/models"
	projectapimodels "stroy-tools-backend/models/api/project"
	dbmodels "stroy-tools-backend/models/db"
)

const (
	testCompanyID = "company-1"
	testUserID    = "user-1"
	testProjectID = "project-1"
)

type fakeUsersStore struct {
	users map[string]*dbmodels.User
}

func (f fakeUsersStore) Create(rec dbmodels.User) (string, error)        { return "", nil }
func (f fakeUsersStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }
func (f fakeUsersStore) List(companyID string) ([]dbmodels.User, error)  { return nil, nil }
func (f fakeUsersStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f fakeUsersStore) SetLastLogin(id string, moment time.Time) error { return nil }
func (f fakeUsersStore) Delete(companyID, id string) error              { return nil }
func (f fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	return f.users[id], nil
}

type fakeProjectStore struct {
	projects map[string]*dbmodels.Project
}

func (f fakeProjectStore) Create(rec dbmodels.Project) (string, error) { return "", nil }
func (f fakeProjectStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f fakeProjectStore) Delete(companyID, id string) error { return nil }
func (f fakeProjectStore) List(companyID string, filter projectapimodels.ProjectFilter) ([]dbmodels.Project, error) {
	return nil, nil
}
func (f fakeProjectStore) ListCount(companyID string, filter projectapimodels.ProjectFilter) (int64, error) {
	return 0, nil
}
func (f fakeProjectStore) GetByID(companyID, id string) (*dbmodels.Project, error) {
	rec := f.projects[id]
	if rec != nil && rec.CompanyID != companyID {
		return nil, nil
	}
	return rec, nil
}

type fakeAssignmentStore struct {
	assigned   map[string]bool
	projectIds []string
}

func (f fakeAssignmentStore) Create(rec dbmodels.ProjectAssignment) (string, error) { return "", nil }
func (f fakeAssignmentStore) ListByProject(companyID, projectID string) ([]dbmodels.ProjectAssignment, error) {
	return nil, nil
}
func (f fakeAssignmentStore) Delete(companyID, projectID, userID string) error { return nil }
func (f fakeAssignmentStore) Get(companyID, projectID, userID string) (*dbmodels.ProjectAssignment, error) {
	if f.assigned[projectID+"/"+userID] {
		return &dbmodels.ProjectAssignment{ProjectID: projectID, UserID: userID}, nil
	}
	return nil, nil
}
func (f fakeAssignmentStore) GetProjectIds(companyID, userID string) ([]string, error) {
	return f.projectIds, nil
}

type fakeSettings struct {
	rec dbmodels.CompanySetting
}

func (f fakeSettings) Get(companyID string) (dbmodels.CompanySetting, error) { return f.rec, nil }
func (f fakeSettings) UpdateRoleAccess(companyID string, role models.UserRole, access models.RoleDataAccess) error {
	return nil
}

func newTestResolver(role models.UserRole, status models.UserStatus, settings dbmodels.CompanySetting, assignments fakeAssignmentStore) impl {
	return impl{
		usersStore: fakeUsersStore{users: map[string]*dbmodels.User{
			testUserID: {
				BaseModel: dbmodels.BaseModel{ID: testUserID},
				CompanyID: testCompanyID,
				Role:      role,
				Status:    status,
			},
		}},
		projectStore: fakeProjectStore{projects: map[string]*dbmodels.Project{
			testProjectID: {
				BaseCompanyModel: dbmodels.BaseCompanyModel{
					BaseModel: dbmodels.BaseModel{ID: testProjectID},
					CompanyID: testCompanyID,
				},
				Name: "ЖК Северный",
			},
		}},
		assignmentStore: assignments,
		settings:        fakeSettings{rec: settings},
	}
}

func TestResolveAccess(t *testing.T) {
	emptySettings := dbmodels.CompanySetting{}

	t.Run(`владелец-администратор получает полный доступ`, func(t *testing.T) {
		resolver := newTestResolver(models.AdminRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, testProjectID, models.DailyLogsTool)
		require.True(t, access.IsOwnerAdmin)
		require.Equal(t, models.AccessLevelAdmin, access.Level)
	})

	t.Run(`неизвестный пользователь - доступ закрыт`, func(t *testing.T) {
		resolver := newTestResolver(models.AdminRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, "missing", "", models.DailyLogsTool)
		require.False(t, access.IsOwnerAdmin)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})

	t.Run(`пользователь другой компании - доступ закрыт`, func(t *testing.T) {
		resolver := newTestResolver(models.AdminRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess("other-company", testUserID, "", models.DailyLogsTool)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})

	t.Run(`отстранённый сотрудник - доступ закрыт`, func(t *testing.T) {
		resolver := newTestResolver(models.AdminRole, models.UserSuspendedStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, "", models.DailyLogsTool)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})

	t.Run(`member без назначения на проект - доступ закрыт`, func(t *testing.T) {
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, testProjectID, models.DailyLogsTool)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})

	t.Run(`member с назначением на проект`, func(t *testing.T) {
		assignments := fakeAssignmentStore{assigned: map[string]bool{testProjectID + "/" + testUserID: true}}
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, emptySettings, assignments)
		access := resolver.ResolveAccess(testCompanyID, testUserID, testProjectID, models.DailyLogsTool)
		require.False(t, access.IsOwnerAdmin)
		require.Equal(t, models.AccessLevelMember, access.Level)
	})

	t.Run(`несуществующий проект - доступ закрыт даже для admin-уровня`, func(t *testing.T) {
		resolver := newTestResolver(models.ProjectManagerRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, "missing-project", models.DailyLogsTool)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})

	t.Run(`admin-уровень не требует назначения`, func(t *testing.T) {
		resolver := newTestResolver(models.SuperintendentRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, testProjectID, models.DailyLogsTool)
		require.Equal(t, models.AccessLevelAdmin, access.Level)
	})

	t.Run(`переопределение уровня в настройках компании`, func(t *testing.T) {
		settings := dbmodels.CompanySetting{
			RoleDataAccess: dbmodels.RoleDataAccessMap{
				models.FieldWorkerRole: {
					ToolOverrides: map[models.Tool]models.AccessLevel{
						models.DailyLogsTool: models.AccessLevelNone,
					},
				},
			},
		}
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, settings, fakeAssignmentStore{})
		access := resolver.ResolveAccess(testCompanyID, testUserID, "", models.DailyLogsTool)
		require.Equal(t, models.AccessLevelNone, access.Level)
	})
}

func TestVisibilityScope(t *testing.T) {
	emptySettings := dbmodels.CompanySetting{}

	t.Run(`admin-уровень видит всё`, func(t *testing.T) {
		resolver := newTestResolver(models.ProjectManagerRole, models.UserActiveStatus, emptySettings, fakeAssignmentStore{})
		scope, err := resolver.DailyLogScope(testCompanyID, testUserID, models.ProjectManagerRole)
		require.Nil(t, err)
		require.True(t, scope.Unrestricted)
	})

	t.Run(`политика OWN_ONLY ограничивает собственными записями`, func(t *testing.T) {
		settings := dbmodels.CompanySetting{
			RoleDataAccess: dbmodels.RoleDataAccessMap{
				models.FieldWorkerRole: {DailyLogAccess: models.DataAccessOwnOnly},
			},
		}
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, settings, fakeAssignmentStore{})
		scope, err := resolver.DailyLogScope(testCompanyID, testUserID, models.FieldWorkerRole)
		require.Nil(t, err)
		require.False(t, scope.Unrestricted)
		require.Equal(t, testUserID, scope.OwnerID)
		require.Empty(t, scope.ProjectIDs)
	})

	t.Run(`устаревший флаг рабочего учитывается без явной настройки роли`, func(t *testing.T) {
		settings := dbmodels.CompanySetting{FieldWorkerDailyLogAccess: models.DataAccessAll}
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, settings, fakeAssignmentStore{})
		scope, err := resolver.DailyLogScope(testCompanyID, testUserID, models.FieldWorkerRole)
		require.Nil(t, err)
		require.True(t, scope.Unrestricted)
	})

	t.Run(`без настроек - свои записи и назначенные проекты`, func(t *testing.T) {
		assignments := fakeAssignmentStore{projectIds: []string{testProjectID, "project-2"}}
		resolver := newTestResolver(models.FieldWorkerRole, models.UserActiveStatus, emptySettings, assignments)
		scope, err := resolver.DailyLogScope(testCompanyID, testUserID, models.FieldWorkerRole)
		require.Nil(t, err)
		require.False(t, scope.Unrestricted)
		require.Equal(t, testUserID, scope.OwnerID)
		require.Equal(t, []string{testProjectID, "project-2"}, scope.ProjectIDs)
	})

	t.Run(`видимость записей времени по своей политике`, func(t *testing.T) {
		settings := dbmodels.CompanySetting{
			RoleDataAccess: dbmodels.RoleDataAccessMap{
				models.MechanicRole: {TimeEntryAccess: models.DataAccessOwnOnly},
			},
		}
		resolver := newTestResolver(models.MechanicRole, models.UserActiveStatus, settings, fakeAssignmentStore{})
		scope, err := resolver.TimeEntryScope(testCompanyID, testUserID, models.MechanicRole)
		require.Nil(t, err)
		require.False(t, scope.Unrestricted)
		require.Equal(t, testUserID, scope.OwnerID)
	})
}
