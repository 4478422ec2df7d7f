package service

// Tachycardic is the live rule used when a reading arrives and by the
// status endpoint. A reading is tachycardic when it exceeds the
// threshold for the patient's age band.
func Tachycardic(age, heartRate int) bool {
	var threshold int
	switch {
	case age < 3:
		threshold = 151
	case age <= 5:
		threshold = 133
	case age <= 15:
		threshold = 119
	default:
		threshold = 100
	}
	return heartRate > threshold
}

// ReportTachycardic is the rule used by the all_tachycardia report.
// Its age bands are finer than Tachycardic's and the two disagree for
// some band/rate pairs. The report has always been produced with this
// table, so the two rules are kept separate on purpose.
func ReportTachycardic(age, heartRate int) bool {
	var threshold int
	switch {
	case age < 3:
		threshold = 151
	case age <= 4:
		threshold = 137
	case age <= 7:
		threshold = 133
	case age <= 11:
		threshold = 130
	case age <= 15:
		threshold = 119
	default:
		threshold = 100
	}
	return heartRate > threshold
}
