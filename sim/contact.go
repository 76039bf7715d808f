package sim

// MaxContactRetries bounds how many extra draws SampleContact makes when it
// keeps landing on already-infected persons.
const MaxContactRetries = 100

// SampleContact draws a uniformly random person, retrying while the draw is
// already infected. After MaxContactRetries retries it gives up and returns the
// last person examined, infected or not; callers still apply their own
// susceptibility checks, so an infected fallback simply yields no transmission.
// pop must not be empty.
func SampleContact(pop Population, s *Sampler) *Person {
	var candidate *Person
	for range MaxContactRetries + 1 {
		candidate = pop[s.IntN(len(pop))]
		if !candidate.Infected {
			return candidate
		}
	}
	return candidate
}
