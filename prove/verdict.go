package prove

// Verdict summarizes a proof attempt.
type Verdict int

const (
	Unproven Verdict = iota
	Ambiguous
	Proven
)

func (v Verdict) String() string {
	switch v {
	case Unproven:
		return "unproven"
	case Ambiguous:
		return "ambiguous"
	case Proven:
		return "proven"
	default:
		return "unknown"
	}
}

// Classify is `Proven` if some result is known to hold and `Ambiguous` if
// there are only ambiguous results.
func Classify(s *ProvenSet) Verdict {
	verdict := Unproven
	for c := range s.All() {
		if !c.IsAmbiguous() {
			return Proven
		}

		verdict = Ambiguous
	}

	return verdict
}

// Holds decides whether a goal with this verdict may be relied upon; an
// ambiguous answer counts only under `Completeness`.
func (v Verdict) Holds(bias Bias) bool {
	switch v {
	case Proven:
		return true
	case Ambiguous:
		return bias == Completeness
	default:
		return false
	}
}
