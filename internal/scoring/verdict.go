package scoring

// Verdict is the categorical grade derived from the final weighted score.
type Verdict string

const (
	VerdictExcellent Verdict = "EX"
	VerdictVeryGood  Verdict = "VG"
	VerdictGoodPlus  Verdict = "GP"
	VerdictGood      Verdict = "G"
	VerdictPoor      Verdict = "Poor"
	VerdictNA        Verdict = "N/A"
)

// Classify maps a final score to its verdict. Intervals are half-open from
// above: exactly 9.0 is VG, exactly 6.0 is Poor.
func Classify(score float64) Verdict {
	switch {
	case score > 9:
		return VerdictExcellent
	case score > 8:
		return VerdictVeryGood
	case score > 7:
		return VerdictGoodPlus
	case score > 6:
		return VerdictGood
	default:
		return VerdictPoor
	}
}

// ClassifyNullable maps an optional final score to its verdict; a nil score
// is "N/A".
func ClassifyNullable(score *float64) Verdict {
	if score == nil {
		return VerdictNA
	}
	return Classify(*score)
}
