package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidyhome/homeservices-api/models"
)

func approvedWorker() Session {
	return Session{
		Authenticated:    true,
		Role:             models.RoleWorker,
		ProfileCompleted: true,
		WorkerStatus:     models.WorkerApproved,
	}
}

func TestDecide(t *testing.T) {
	client := Session{Authenticated: true, Role: models.RoleClient}
	admin := Session{Authenticated: true, Role: models.RoleAdmin}
	anonymous := Session{}

	incompleteWorker := approvedWorker()
	incompleteWorker.ProfileCompleted = false

	pendingWorker := approvedWorker()
	pendingWorker.WorkerStatus = models.WorkerPendingApproval

	rejectedWorker := approvedWorker()
	rejectedWorker.WorkerStatus = models.WorkerRejected

	tests := []struct {
		name    string
		session Session
		path    string
		want    Decision
	}{
		{"loading session", Session{Loading: true}, "/admin", Decision{Action: ActionLoading}},
		{"anonymous home", anonymous, "/", render()},
		{"anonymous public page", anonymous, "/services/deep-cleaning", render()},
		{"anonymous admin", anonymous, "/admin", redirect(PathAuth)},
		{"anonymous admin subpage", anonymous, "/admin/bookings", redirect(PathAuth)},
		{"anonymous booking", anonymous, "/book", redirect(PathAuth)},
		{"anonymous worker dashboard", anonymous, "/worker-dashboard", redirect(PathAuth)},
		{"admin on admin", admin, "/admin", render()},
		{"client on admin", client, "/admin", redirect(PathClientDashboard)},
		{"client on booking", client, "/book", render()},
		{"client on bookings list", client, "/bookings", render()},
		{"client on quote form", client, "/quote/removals", render()},
		{"client on worker dashboard", client, "/worker-dashboard", redirect(PathClientDashboard)},
		{"admin on client dashboard", admin, "/client-dashboard", redirect(PathAdmin)},
		{"worker on client dashboard", approvedWorker(), "/client-dashboard", redirect(PathWorkerDashboard)},
		{"approved worker on dashboard", approvedWorker(), "/worker-dashboard", render()},
		{"incomplete worker on dashboard", incompleteWorker, "/worker-dashboard", redirect(PathCompleteProfile)},
		{"incomplete worker on complete profile", incompleteWorker, "/complete-profile", render()},
		{"pending worker on dashboard", pendingWorker, "/worker-dashboard", redirect(PathPendingApproval)},
		{"rejected worker on dashboard", rejectedWorker, "/worker-dashboard", redirect(PathPendingApproval)},
		{"pending worker on pending page", pendingWorker, "/pending-approval", render()},
		{"approved worker on pending page", approvedWorker(), "/pending-approval", redirect(PathWorkerDashboard)},
		{"client on complete profile", client, "/complete-profile", redirect(PathClientDashboard)},
		{"moderator on admin", Session{Authenticated: true, Role: models.RoleModerator}, "/admin", redirect(PathHome)},
		{"user role treated as client", Session{Authenticated: true, Role: models.RoleUser}, "/book", render()},
		{"any signed-in role on profile", approvedWorker(), "/profile", render()},
		{"query string ignored", anonymous, "/admin?tab=quotes", redirect(PathAuth)},
		{"trailing slash ignored", anonymous, "/admin/", redirect(PathAuth)},
		{"segment match only", anonymous, "/administrator", render()},
		{"unknown view renders", anonymous, "/not-a-page", render()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.session, tt.path))
		})
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, PathAdmin, HomeFor(models.RoleAdmin))
	assert.Equal(t, PathWorkerDashboard, HomeFor(models.RoleWorker))
	assert.Equal(t, PathClientDashboard, HomeFor(models.RoleClient))
	assert.Equal(t, PathClientDashboard, HomeFor(models.RoleUser))
	assert.Equal(t, PathHome, HomeFor(models.RoleModerator))
}

func TestNextLocation(t *testing.T) {
	assert.Equal(t, PathWorkerDashboard, NextLocation(approvedWorker()))

	incomplete := approvedWorker()
	incomplete.ProfileCompleted = false
	assert.Equal(t, PathCompleteProfile, NextLocation(incomplete))

	assert.Equal(t, PathAdmin, NextLocation(Session{Authenticated: true, Role: models.RoleAdmin}))
}
