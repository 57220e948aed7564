package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/domain/entities"
)

func snapshot(status session.Status, role entities.Role) session.Snapshot {
	snap := session.Snapshot{Status: status}
	if status == session.StatusAuthenticated {
		snap.User = &entities.User{ID: 1, Username: "nova", Role: role}
	}
	return snap
}

func TestEvaluate_FullTable(t *testing.T) {
	admin := snapshot(session.StatusAuthenticated, entities.RoleAdmin)
	player := snapshot(session.StatusAuthenticated, entities.RoleUser)

	cases := []struct {
		name string
		req  guard.Requirement
		snap session.Snapshot
		want guard.Decision
	}{
		{"none/unknown", guard.RequireNone, snapshot(session.StatusUnknown, ""), guard.DecisionLoading},
		{"none/restoring", guard.RequireNone, snapshot(session.StatusRestoring, ""), guard.DecisionLoading},
		{"none/anonymous", guard.RequireNone, snapshot(session.StatusAnonymous, ""), guard.DecisionRender},
		{"none/admin", guard.RequireNone, admin, guard.DecisionRender},

		{"auth/unknown", guard.RequireAuthenticated, snapshot(session.StatusUnknown, ""), guard.DecisionLoading},
		{"auth/restoring", guard.RequireAuthenticated, snapshot(session.StatusRestoring, ""), guard.DecisionLoading},
		{"auth/anonymous", guard.RequireAuthenticated, snapshot(session.StatusAnonymous, ""), guard.DecisionRedirect},
		{"auth/player", guard.RequireAuthenticated, player, guard.DecisionRender},
		{"auth/admin", guard.RequireAuthenticated, admin, guard.DecisionRender},

		{"admin/unknown", guard.RequireAdmin, snapshot(session.StatusUnknown, ""), guard.DecisionLoading},
		{"admin/restoring", guard.RequireAdmin, snapshot(session.StatusRestoring, ""), guard.DecisionLoading},
		{"admin/anonymous", guard.RequireAdmin, snapshot(session.StatusAnonymous, ""), guard.DecisionRedirect},
		{"admin/player", guard.RequireAdmin, player, guard.DecisionDeny},
		{"admin/admin", guard.RequireAdmin, admin, guard.DecisionRender},

		{"user/unknown", guard.RequireUser, snapshot(session.StatusUnknown, ""), guard.DecisionLoading},
		{"user/restoring", guard.RequireUser, snapshot(session.StatusRestoring, ""), guard.DecisionLoading},
		{"user/anonymous", guard.RequireUser, snapshot(session.StatusAnonymous, ""), guard.DecisionRedirect},
		{"user/player", guard.RequireUser, player, guard.DecisionRender},
		{"user/admin", guard.RequireUser, admin, guard.DecisionDeny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, guard.Evaluate(tc.req, tc.snap))
		})
	}
}

func TestEvaluate_AuthenticatedWithoutUserRedirects(t *testing.T) {
	snap := session.Snapshot{Status: session.StatusAuthenticated}
	assert.Equal(t, guard.DecisionRedirect, guard.Evaluate(guard.RequireAuthenticated, snap))
}

func TestEvaluate_RestoringNeverRenders(t *testing.T) {
	// Пока идет восстановление, ни один маршрут не должен ни
	// рендериться, ни редиректить: моргание экраном входа недопустимо,
	// и даже открытая страница ждет определенного статуса.
	for _, req := range []guard.Requirement{guard.RequireNone, guard.RequireAuthenticated, guard.RequireAdmin, guard.RequireUser} {
		got := guard.Evaluate(req, snapshot(session.StatusRestoring, ""))
		assert.Equal(t, guard.DecisionLoading, got)
	}
}
