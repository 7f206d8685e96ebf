package pandascore

import "time"

const providerName = "pandascore"

// matchResponse mirrors one element of the /matches/* array. Only the fields
// esmatch reads are declared; the snapshot keeps the full upstream document.
type matchResponse struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	ScheduledAt *time.Time         `json:"scheduled_at"`
	BeginAt     *time.Time         `json:"begin_at"`
	Status      string             `json:"status"`
	Videogame   namedResponse      `json:"videogame"`
	League      namedResponse      `json:"league"`
	Tournament  namedResponse      `json:"tournament"`
	Serie       serieResponse      `json:"serie"`
	Opponents   []opponentEnvelope `json:"opponents"`
}

type namedResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type serieResponse struct {
	FullName string `json:"full_name"`
}

type opponentEnvelope struct {
	Type     string           `json:"type"`
	Opponent opponentResponse `json:"opponent"`
}

type opponentResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Acronym  *string `json:"acronym"`
	Location *string `json:"location"`
}
