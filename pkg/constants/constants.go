package constants

// Project statuses.
const (
	ProjectStatusPlanning   = "PLANNING"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusCancelled  = "CANCELLED"
)

// Machinery statuses. IN_USE is owned by the assignment rule; the other three
// are set by direct edits.
const (
	MachineryStatusAvailable    = "AVAILABLE"
	MachineryStatusInUse        = "IN_USE"
	MachineryStatusMaintenance  = "MAINTENANCE"
	MachineryStatusOutOfService = "OUT_OF_SERVICE"
)

// Assignment statuses.
const (
	AssignmentStatusAssigned  = "ASSIGNED"
	AssignmentStatusReturned  = "RETURNED"
	AssignmentStatusCancelled = "CANCELLED"
)

var (
	ProjectStatuses    = []string{ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled}
	MachineryStatuses  = []string{MachineryStatusAvailable, MachineryStatusInUse, MachineryStatusMaintenance, MachineryStatusOutOfService}
	AssignmentStatuses = []string{AssignmentStatusAssigned, AssignmentStatusReturned, AssignmentStatusCancelled}
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

//============== CACHE KEYS ==============

const (
	// login_attempts:<username> -> failed attempt count
	CacheKeyLoginAttempts = "login_attempts:%s"

	// lockout:<username> -> "locked"
	CacheKeyLockout = "lockout:%s"

	// dashboard:stats:<version> -> JSON counts
	CacheKeyDashboardStats = "dashboard:stats:%d"

	// dashboard:version -> bumped on every invalidation
	CacheKeyDashboardVersion = "dashboard:version"
)
