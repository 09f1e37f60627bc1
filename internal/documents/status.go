package documents

// Status represents the verification state of a single document.
type Status string

const (
	StatusPending       Status = "pending"
	StatusVerified      Status = "verified"
	StatusNeedsReupload Status = "needs_reupload"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusNeedsReupload:
		return true
	}
	return false
}

// IsLocked reports whether the document is write-protected. A verified
// document admits no further transitions.
func (s Status) IsLocked() bool {
	return s == StatusVerified
}

// CountsTowardProgress reports whether a document in this state contributes
// to the traveler's readiness percentage.
func (s Status) CountsTowardProgress() bool {
	return s == StatusPending || s == StatusVerified
}
