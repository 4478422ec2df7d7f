package domain

// Patient record.
// HeartRateHistory maps "2006-01-02 15:04:05" timestamps to bpm values.
// Keys sort lexicographically in chronological order. A reading that
// arrives with a timestamp already present overwrites the earlier one,
// so callers are expected to space submissions at least a second apart.
type Patient struct {
	PatientID         int            `json:"patient_id"` // unique
	AttendingUsername string         `json:"attending_username"`
	PatientAge        int            `json:"patient_age"` // years, >= 1
	HeartRateHistory  map[string]int `json:"heart_rate_history"`
}

// SortedTimestamps returns the history keys in chronological order.
func (p *Patient) SortedTimestamps() []string {
	return SortTimestamps(p.HeartRateHistory)
}
