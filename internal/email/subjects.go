package email

const (
	subjectApplicationReceivedFmt = "Application received: %s"
	subjectApplicationApprovedFmt = "Your lease application for %s is approved"
	subjectApplicationRejectedFmt = "Update on your lease application for %s"
	subjectLeaseExpiredFmt        = "Your lease of %s has ended"
)
