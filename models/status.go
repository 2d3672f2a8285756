package models

// Role is the single role attached to a user in user_roles
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
	RoleClient    Role = "client"
	RoleWorker    Role = "worker"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser, RoleClient, RoleWorker:
		return true
	}
	return false
}

// Booking statuses
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Quote request statuses
const (
	QuotePending   = "pending"
	QuoteQuoted    = "quoted"
	QuoteAccepted  = "accepted"
	QuoteDeclined  = "declined"
	QuoteCompleted = "completed"
)

// Worker application statuses
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Worker profile statuses
const (
	WorkerPendingApproval = "pending_approval"
	WorkerApproved        = "approved"
	WorkerRejected        = "rejected"
)

// Enquiry statuses
const (
	EnquiryNew     = "new"
	EnquiryHandled = "handled"
)

var (
	bookingStatuses     = []string{BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled}
	quoteStatuses       = []string{QuotePending, QuoteQuoted, QuoteAccepted, QuoteDeclined, QuoteCompleted}
	applicationStatuses = []string{ApplicationPending, ApplicationApproved, ApplicationRejected}
	workerStatuses      = []string{WorkerPendingApproval, WorkerApproved, WorkerRejected}
	enquiryStatuses     = []string{EnquiryNew, EnquiryHandled}
)

func IsValidBookingStatus(s string) bool     { return contains(bookingStatuses, s) }
func IsValidQuoteStatus(s string) bool       { return contains(quoteStatuses, s) }
func IsValidApplicationStatus(s string) bool { return contains(applicationStatuses, s) }
func IsValidWorkerStatus(s string) bool      { return contains(workerStatuses, s) }
func IsValidEnquiryStatus(s string) bool     { return contains(enquiryStatuses, s) }

// WorkerStatusForApplication maps an application decision onto the applicant's profile.
// A pending application leaves the worker pending approval.
func WorkerStatusForApplication(status string) string {
	switch status {
	case ApplicationApproved:
		return WorkerApproved
	case ApplicationRejected:
		return WorkerRejected
	}
	return WorkerPendingApproval
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
