package interactions

// Summary counts interactions by severity and gives a single recommendation.
type Summary struct {
	Total           int       `json:"total"`
	High            int       `json:"high"`
	Moderate        int       `json:"moderate"`
	Mild            int       `json:"mild"`
	HighestSeverity *Severity `json:"highest_severity"`
	Recommendation  string    `json:"recommendation"`
}

var recommendations = map[Severity]string{
	SeverityHigh:     "Consult healthcare provider immediately. Multiple high-severity interactions detected.",
	SeverityModerate: "Consult healthcare provider. Moderate interactions detected that require monitoring.",
	SeverityMild:     "Minor interactions detected. Monitor for any changes.",
}

// Summarize buckets interactions into high, moderate, and mild.
// Contraindicated and unknown severities count toward Total only.
func Summarize(found []Interaction) Summary {
	if len(found) == 0 {
		return Summary{Recommendation: "No interactions detected"}
	}

	s := Summary{Total: len(found), Recommendation: "No major concerns"}
	for _, in := range found {
		switch in.Severity {
		case SeverityHigh:
			s.High++
		case SeverityModerate:
			s.Moderate++
		case SeverityMild:
			s.Mild++
		}
	}

	var highest Severity
	switch {
	case s.High > 0:
		highest = SeverityHigh
	case s.Moderate > 0:
		highest = SeverityModerate
	case s.Mild > 0:
		highest = SeverityMild
	default:
		return s
	}

	s.HighestSeverity = &highest
	s.Recommendation = recommendations[highest]
	return s
}
