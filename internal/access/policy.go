package access

import "bookingportal/internal/user"

// View is a reachable screen of the portal frontend.
type View string

const (
	ViewHome       View = "home"
	ViewCalendar   View = "calendar"
	ViewBookSpace  View = "book-space"
	ViewSpacesInfo View = "spaces-info"
	ViewAdminPanel View = "admin-panel"
	ViewLogin      View = "login"
	ViewRegister   View = "register"
)

// Action is a mutating operation gated by role.
type Action string

const (
	ActionSubmitBooking  Action = "submit-booking"
	ActionReviewBooking  Action = "review-booking" // approve / reject / delete
	ActionAttachFeedback Action = "attach-feedback"
	ActionManageUsers    Action = "manage-users"
)

// Every permission check in the portal goes through this single table.
// Screens must not re-derive their own role conditionals.
var policy = map[user.Role]struct {
	views   []View
	actions map[Action]bool
}{
	user.RoleGeneric: {
		views:   []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin},
		actions: map[Action]bool{},
	},
	user.RolePending: {
		views:   []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin},
		actions: map[Action]bool{},
	},
	user.RoleUtente: {
		views: []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin, ViewBookSpace},
		actions: map[Action]bool{
			ActionSubmitBooking: true,
		},
	},
	user.RoleOperatore: {
		views: []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin, ViewBookSpace},
		actions: map[Action]bool{
			ActionSubmitBooking:  true,
			ActionAttachFeedback: true,
		},
	},
	user.RoleAdmin: {
		views: []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin, ViewBookSpace},
		actions: map[Action]bool{
			ActionSubmitBooking:  true,
			ActionAttachFeedback: true,
			ActionReviewBooking:  true,
		},
	},
	user.RoleSuperuser: {
		views: []View{ViewHome, ViewCalendar, ViewSpacesInfo, ViewRegister, ViewLogin, ViewBookSpace, ViewAdminPanel},
		actions: map[Action]bool{
			ActionSubmitBooking:  true,
			ActionAttachFeedback: true,
			ActionReviewBooking:  true,
			ActionManageUsers:    true,
		},
	},
}

// ReachableViews returns the screens the role may open.
// Unknown roles fall back to the generic visitor set.
func ReachableViews(r user.Role) []View {
	p, ok := policy[r]
	if !ok {
		p = policy[user.RoleGeneric]
	}
	out := make([]View, len(p.views))
	copy(out, p.views)
	return out
}

func CanView(r user.Role, v View) bool {
	for _, have := range ReachableViews(r) {
		if have == v {
			return true
		}
	}
	return false
}

func Allowed(r user.Role, a Action) bool {
	p, ok := policy[r]
	if !ok {
		return false
	}
	return p.actions[a]
}

// HidesUnreviewed reports whether calendar listings must hide pending and
// rejected requests for this role.
func HidesUnreviewed(r user.Role) bool {
	return r == user.RoleGeneric || r == ""
}
