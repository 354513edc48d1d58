package constants

import "strings"

// RequestStatus is the lifecycle state of a service request. Values match the
// `status` column of service_requests.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusQuoted     RequestStatus = "quoted"
	StatusApproved   RequestStatus = "approved"
	StatusInProgress RequestStatus = "in-progress"
	StatusRejected   RequestStatus = "rejected"
	StatusCompleted  RequestStatus = "completed"
)

var AllStatuses = []RequestStatus{
	StatusPending,
	StatusQuoted,
	StatusApproved,
	StatusInProgress,
	StatusRejected,
	StatusCompleted,
}

// Final statuses have no outbound transitions.
var FinalStatuses = []RequestStatus{
	StatusRejected,
	StatusCompleted,
}

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) Valid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func IsFinalStatus(s RequestStatus) bool {
	for _, st := range FinalStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ParseStatus accepts the canonical value as well as upper case and
// underscore spellings ("IN_PROGRESS").
func ParseStatus(raw string) (RequestStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	st := RequestStatus(s)
	if !st.Valid() {
		return "", false
	}
	return st, true
}

// AssignmentRequired reports whether a request in this status must carry an
// assigned technician.
func AssignmentRequired(s RequestStatus) bool {
	return s == StatusInProgress || s == StatusCompleted
}
