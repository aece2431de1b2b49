package audit

type Action string

// Every privileged mutation of the portal lands in the trail.
const (
	ActionUserApproved    Action = "USER_APPROVED"
	ActionUserRejected    Action = "USER_REJECTED"
	ActionUserRoleChanged Action = "USER_ROLE_CHANGED"
	ActionUserDeleted     Action = "USER_DELETED"

	ActionBookingApproved  Action = "BOOKING_APPROVED"
	ActionBookingRejected  Action = "BOOKING_REJECTED"
	ActionBookingDeleted   Action = "BOOKING_DELETED"
	ActionFeedbackAttached Action = "FEEDBACK_ATTACHED"
)
