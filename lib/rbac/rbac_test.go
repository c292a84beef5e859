package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stroy-tools-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/daily_logs/{id}/submit [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/daily_logs/123-321/submit"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/daily_logs/submit"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/projects/{id}/assign/{user_id} [delete]")
		require.Nil(t, err)
		require.Equal(t, DELETE, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/projects/123-321/assign/qwe-ewr123-wr-12"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/projects/we-ewr123-wr-12/assign"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`GetRuleFunc check`, func(t *testing.T) {
		NewHandler()

		ruleFunc, found := Instance.GetRuleFunc("put", "/api/v1/daily_logs/123-321/approve")
		require.True(t, found)
		require.True(t, ruleFunc("company-1", "user-1", models.SuperintendentRole, "/api/v1/daily_logs/123-321/approve"))
		require.False(t, ruleFunc("company-1", "user-1", models.FieldWorkerRole, "/api/v1/daily_logs/123-321/approve"))

		ruleFunc, found = Instance.GetRuleFunc("post", "/api/v1/users")
		require.True(t, found)
		require.True(t, ruleFunc("company-1", "user-1", models.AdminRole, "/api/v1/users"))
		require.False(t, ruleFunc("company-1", "user-1", models.ProjectManagerRole, "/api/v1/users"))

		// неизвестный путь не фильтруется на уровне rbac
		_, found = Instance.GetRuleFunc("get", "/api/v1/unknown")
		require.False(t, found)
	})

	t.Run(`GetPermissions check`, func(t *testing.T) {
		NewHandler()

		permissions := Instance.GetPermissions(models.ViewerRole)
		require.Contains(t, permissions[models.DailyLogsModule], models.ViewPermission)
		require.NotContains(t, permissions[models.DailyLogsModule], models.CreatePermission)
		require.Empty(t, permissions[models.ApprovalsModule])

		permissions = Instance.GetPermissions(models.SuperintendentRole)
		require.Contains(t, permissions[models.ApprovalsModule], models.FlowPermission)
		require.NotContains(t, permissions[models.UsersModule], models.ManagePermission)
	})
}
