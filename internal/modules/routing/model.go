package routing

// Candidate is a kitchen station being scored for the next ticket.
type Candidate struct {
	Station     string  `json:"station"`
	ActiveItems int     `json:"activeItems"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// Decision records which station a ticket was sent to and why.
type Decision struct {
	Station string  `json:"station"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason"`
}
