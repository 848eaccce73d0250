package application

type Status string

const (
	StatusApplied            Status = "Applied"
	StatusReviewing          Status = "Reviewing"
	StatusShortlisted        Status = "Shortlisted"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusRejected           Status = "Rejected"
	StatusHired              Status = "Hired"
)

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal statuses admit no further transitions, including interview
// scheduling.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusHired
}

var transitions = map[Status][]Status{
	StatusApplied:            {StatusReviewing, StatusShortlisted, StatusRejected},
	StatusReviewing:          {StatusShortlisted, StatusRejected},
	StatusShortlisted:        {StatusHired, StatusRejected},
	StatusInterviewScheduled: {StatusHired, StatusRejected},
	StatusRejected:           {},
	StatusHired:              {},
}

// CanTransition reports whether a recruiter may move an application from one
// status to another. Interview Scheduled is reachable only through
// scheduling, which is validated separately.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
