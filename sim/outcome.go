package sim

import "fmt"

// Outcome is the clinical trajectory assigned to a person at exposure time.
// It is drawn once and predetermines the rest of the person's timeline.
type Outcome int

const (
	OutcomeNoInfection Outcome = iota
	OutcomeNoSymptoms
	OutcomeMildToModerate
	OutcomeSevere
	OutcomeDeath
)

// NumOutcomes is the number of outcome categories, and the length of a threshold row.
const NumOutcomes = 5

var outcomeNames = [NumOutcomes]string{
	OutcomeNoInfection:    "no-infection",
	OutcomeNoSymptoms:     "no-symptoms",
	OutcomeMildToModerate: "mild-to-moderate",
	OutcomeSevere:         "severe",
	OutcomeDeath:          "death",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= NumOutcomes {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// SeverityThresholds holds five non-increasing probabilities. A uniform draw above
// thresholds[0] means no infection, above thresholds[1] no symptoms, above
// thresholds[2] mild-to-moderate, above thresholds[3] severe, otherwise death.
// The last entry is carried for table compatibility and does not affect classification.
type SeverityThresholds []float64

// Validate checks length, range and ordering.
func (t SeverityThresholds) Validate() error {
	if len(t) != NumOutcomes {
		return fmt.Errorf("severity thresholds must have %d entries, got %d", NumOutcomes, len(t))
	}
	for i, p := range t {
		if err := checkProbability(fmt.Sprintf("severity threshold[%d]", i), p); err != nil {
			return err
		}
		if i > 0 && p > t[i-1] {
			return fmt.Errorf("severity thresholds must be non-increasing: [%d]=%v > [%d]=%v", i, p, i-1, t[i-1])
		}
	}
	return nil
}

// Classify maps a uniform draw u to an outcome.
func (t SeverityThresholds) Classify(u float64) Outcome {
	switch {
	case u > t[0]:
		return OutcomeNoInfection
	case u > t[1]:
		return OutcomeNoSymptoms
	case u > t[2]:
		return OutcomeMildToModerate
	case u > t[3]:
		return OutcomeSevere
	default:
		return OutcomeDeath
	}
}

// ClassifyOutcome draws one uniform value from s and classifies it against t.
func ClassifyOutcome(s *Sampler, t SeverityThresholds) Outcome {
	return t.Classify(s.Uniform())
}
