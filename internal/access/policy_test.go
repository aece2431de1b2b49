package access

import (
	"testing"

	"bookingportal/internal/user"
)

func hasView(views []View, v View) bool {
	for _, have := range views {
		if have == v {
			return true
		}
	}
	return false
}

func TestReachableViews_Generic(t *testing.T) {
	views := ReachableViews(user.RoleGeneric)

	for _, v := range []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin} {
		if !hasView(views, v) {
			t.Fatalf("generic should reach %s", v)
		}
	}
	if hasView(views, ViewBookSpace) {
		t.Fatalf("generic must not reach book-space")
	}
	if hasView(views, ViewAdminPanel) {
		t.Fatalf("generic must not reach admin-panel")
	}
}

func TestReachableViews_BookSpaceForRegisteredRoles(t *testing.T) {
	for _, r := range []user.Role{user.RoleUtente, user.RoleOperatore, user.RoleAdmin, user.RoleSuperuser} {
		if !hasView(ReachableViews(r), ViewBookSpace) {
			t.Fatalf("%s should reach book-space", r)
		}
	}
}

func TestReachableViews_AdminPanelOnlySuperuser(t *testing.T) {
	roles := []user.Role{user.RoleGeneric, user.RolePending, user.RoleUtente, user.RoleOperatore, user.RoleAdmin}
	for _, r := range roles {
		if hasView(ReachableViews(r), ViewAdminPanel) {
			t.Fatalf("%s must not reach admin-panel", r)
		}
	}
	if !hasView(ReachableViews(user.RoleSuperuser), ViewAdminPanel) {
		t.Fatalf("superuser should reach admin-panel")
	}
}

func TestReachableViews_UnknownRoleFallsBackToGeneric(t *testing.T) {
	views := ReachableViews(user.Role("mystery"))
	if hasView(views, ViewBookSpace) || hasView(views, ViewAdminPanel) {
		t.Fatalf("unknown role must get the generic view set")
	}
}

func TestAllowed(t *testing.T) {
	if Allowed(user.RoleGeneric, ActionSubmitBooking) {
		t.Fatalf("generic must not submit bookings")
	}
	if Allowed(user.RolePending, ActionSubmitBooking) {
		t.Fatalf("pending must not submit bookings")
	}
	if !Allowed(user.RoleUtente, ActionSubmitBooking) {
		t.Fatalf("utente should submit bookings")
	}
	if Allowed(user.RoleUtente, ActionAttachFeedback) {
		t.Fatalf("utente must not attach feedback")
	}
	if !Allowed(user.RoleOperatore, ActionAttachFeedback) {
		t.Fatalf("operatore should attach feedback")
	}
	if Allowed(user.RoleOperatore, ActionReviewBooking) {
		t.Fatalf("operatore must not review bookings")
	}
	if !Allowed(user.RoleAdmin, ActionReviewBooking) {
		t.Fatalf("admin should review bookings")
	}
	if Allowed(user.RoleAdmin, ActionManageUsers) {
		t.Fatalf("only superuser manages users")
	}
	if !Allowed(user.RoleSuperuser, ActionManageUsers) {
		t.Fatalf("superuser should manage users")
	}
}

func TestHidesUnreviewed(t *testing.T) {
	if !HidesUnreviewed(user.RoleGeneric) {
		t.Fatalf("generic listings must hide pending/rejected")
	}
	if HidesUnreviewed(user.RoleUtente) {
		t.Fatalf("utente sees all statuses")
	}
}
