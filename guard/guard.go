// Package guard decides whether a view may be rendered for a session or where the
// session should be sent instead.
package guard

import (
	"strings"

	"github.com/tidyhome/homeservices-api/models"
)

// Action is what the client should do with the requested view
type Action string

const (
	ActionRender   Action = "render"
	ActionRedirect Action = "redirect"
	ActionLoading  Action = "loading"
)

// Well-known locations
const (
	PathHome            = "/"
	PathAuth            = "/auth"
	PathAdmin           = "/admin"
	PathClientDashboard = "/client-dashboard"
	PathWorkerDashboard = "/worker-dashboard"
	PathCompleteProfile = "/complete-profile"
	PathPendingApproval = "/pending-approval"
)

// Session is everything the guard needs to know about the requester.
// Loading is set while auth, role or profile are still being resolved.
type Session struct {
	Loading          bool
	Authenticated    bool
	Role             models.Role
	ProfileCompleted bool
	WorkerStatus     string
}

// Decision is the outcome for one path
type Decision struct {
	Action   Action `json:"action"`
	Location string `json:"location,omitempty"`
}

type access int

const (
	accessPublic access = iota
	accessAuthenticated
	accessClient
	accessWorker
	accessWorkerOnboarding
	accessAdmin
)

type route struct {
	prefix string
	access access
}

// Matched on whole path segments: /admin covers /admin/bookings but not /administrator.
var routes = []route{
	{"/client-dashboard", accessClient},
	{"/quote/removals", accessClient},
	{"/quote/care", accessClient},
	{"/bookings", accessClient},
	{"/book", accessClient},
	{"/worker-dashboard", accessWorker},
	{"/complete-profile", accessWorkerOnboarding},
	{"/pending-approval", accessWorkerOnboarding},
	{"/admin", accessAdmin},
	{"/profile", accessAuthenticated},
	{"/services", accessPublic},
	{"/contact", accessPublic},
	{"/careers", accessPublic},
	{"/about", accessPublic},
	{"/auth", accessPublic},
}

// HomeFor is the landing view for a role
func HomeFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return PathAdmin
	case models.RoleWorker:
		return PathWorkerDashboard
	case models.RoleClient, models.RoleUser:
		return PathClientDashboard
	}
	return PathHome
}

// Decide applies the access policy to path for the given session.
func Decide(s Session, path string) Decision {
	if s.Loading {
		return Decision{Action: ActionLoading}
	}

	a := lookup(path)
	if a == accessPublic {
		return render()
	}
	if !s.Authenticated {
		return redirect(PathAuth)
	}

	switch a {
	case accessAuthenticated:
		return render()
	case accessAdmin:
		if s.Role != models.RoleAdmin {
			return redirect(HomeFor(s.Role))
		}
		return render()
	case accessClient:
		if s.Role != models.RoleClient && s.Role != models.RoleUser {
			return redirect(HomeFor(s.Role))
		}
		return render()
	case accessWorkerOnboarding:
		if s.Role != models.RoleWorker {
			return redirect(HomeFor(s.Role))
		}
		if cleanPath(path) == PathPendingApproval && s.ProfileCompleted && s.WorkerStatus == models.WorkerApproved {
			return redirect(PathWorkerDashboard)
		}
		return render()
	case accessWorker:
		if s.Role != models.RoleWorker {
			return redirect(HomeFor(s.Role))
		}
		if !s.ProfileCompleted {
			return redirect(PathCompleteProfile)
		}
		if s.WorkerStatus != models.WorkerApproved {
			return redirect(PathPendingApproval)
		}
		return render()
	}
	return render()
}

// NextLocation is where a freshly signed-in session should land.
func NextLocation(s Session) string {
	home := HomeFor(s.Role)
	d := Decide(s, home)
	if d.Action == ActionRedirect {
		return d.Location
	}
	return home
}

func lookup(path string) access {
	p := cleanPath(path)
	if p == PathHome {
		return accessPublic
	}
	for _, r := range routes {
		if p == r.prefix || strings.HasPrefix(p, r.prefix+"/") {
			return r.access
		}
	}
	// unknown views render; the client shows its own not-found page
	return accessPublic
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return strings.ToLower(path)
}

func render() Decision {
	return Decision{Action: ActionRender}
}

func redirect(location string) Decision {
	return Decision{Action: ActionRedirect, Location: location}
}
