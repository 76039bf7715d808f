// Defines the Person struct that models one individual in the epidemic.
// Tracks exposure, incubation, contagion, diagnosis, quarantine and outcome flags.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Person models a single individual's disease timeline.
//
// Flags only move in one direction over a run, except InIncubation, Contagious,
// Active and InQuarantine which are set and later cleared once. Once Dead is
// set no other flag changes.
type Person struct {
	ID       int // stable index into the Population
	AgeGroup int // 0..NumAgeGroups-1, immutable

	Susceptible  bool // true until the first exposure attempt
	Infected     bool // set on successful exposure, never reset
	InIncubation bool
	Contagious   bool
	Active       bool // has an unresolved case
	Diagnosed    bool
	InQuarantine bool
	Dead         bool

	ExpectedOutcome Outcome // assigned once, at exposure
	MaskUsage       float64 // P(mask worn) at any given contact
	Transmitted     int     // onward street infections caused by this person
}

// NewPerson returns a susceptible, healthy person.
func NewPerson(id, ageGroup int, maskUsage float64) *Person {
	return &Person{
		ID:              id,
		AgeGroup:        ageGroup,
		Susceptible:     true,
		ExpectedOutcome: OutcomeNoInfection,
		MaskUsage:       maskUsage,
	}
}

// String returns a human-readable representation of a Person.
func (p *Person) String() string {
	return fmt.Sprintf("Person: (ID: %d, Age: %s, Outcome: %s, Active: %t, Dead: %t)",
		p.ID, AgeGroupLabels[p.AgeGroup], p.ExpectedOutcome, p.Active, p.Dead)
}

// ExposeToVirus is the only entry point through which another process may change
// this person's state. It returns true if the exposure caused an infection.
//
// The first call always removes the person from the susceptible pool, even when
// the drawn outcome is no infection: the person can never be exposed again.
func (p *Person) ExposeToVirus(sim *Simulator) bool {
	if !p.Susceptible {
		return false
	}
	p.Susceptible = false

	outcome := ClassifyOutcome(sim.exposure, sim.Config.ThresholdsFor(p.AgeGroup))
	if outcome == OutcomeNoInfection {
		return false
	}
	p.ExpectedOutcome = outcome
	p.Infected = true
	p.Active = true

	incubation := sim.exposure.Weibull(sim.Config.Disease.Incubation)
	p.InIncubation = true
	sim.Schedule(&IncubationEndEvent{time: sim.after(incubation), Person: p})

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("[day %8.3f] person %d exposed: outcome=%s incubation=%.2f", sim.Clock, p.ID, outcome, incubation)
	}
	return true
}

// becomeContagious ends incubation and starts the contagious phase, the street
// contact loop and the outcome-specific progression.
func (p *Person) becomeContagious(sim *Simulator) {
	p.InIncubation = false
	p.Contagious = true

	sim.Schedule(&StreetContactEvent{time: sim.after(sim.street.Exponential(sim.Config.Disease.MeanContactInterval)), Person: p})

	contagion := sim.progression.Weibull(sim.Config.Disease.Contagion)
	p.progress(sim)
	sim.Schedule(&ContagionEndEvent{time: sim.after(contagion), Person: p})
}

// progress schedules the person's resolution according to ExpectedOutcome.
func (p *Person) progress(sim *Simulator) {
	d := sim.Config.Disease
	iv := sim.Config.Intervention
	switch p.ExpectedOutcome {
	case OutcomeDeath:
		untilOutcome := sim.progression.Weibull(d.DeathOutcome)
		// fatal cases are always caught
		p.Diagnosed = true
		p.InQuarantine = true
		sim.Schedule(&DeathEvent{time: sim.after(untilOutcome), Person: p})
	case OutcomeSevere:
		untilOutcome := sim.progression.Weibull(d.SevereOutcome)
		sim.Schedule(&DiagnosisEvent{time: sim.after(iv.DiagnosisDelay), Person: p})
		sim.Schedule(&RecoveryEvent{time: sim.after(untilOutcome), Person: p})
	case OutcomeMildToModerate:
		untilOutcome := sim.progression.Weibull(d.ModerateOutcome)
		if iv.DiagnosisChanceIfModerate > sim.progression.Uniform() {
			sim.Schedule(&DiagnosisEvent{time: sim.after(iv.DiagnosisDelay), Person: p})
		}
		sim.Schedule(&RecoveryEvent{time: sim.after(untilOutcome), Person: p})
	default:
		untilOutcome := sim.progression.Weibull(d.NoSymptomsOutcome)
		sim.Schedule(&RecoveryEvent{time: sim.after(untilOutcome), Person: p})
	}
}

// diagnose marks the case as diagnosed. A case that already resolved keeps its
// diagnosis but is not sent into quarantine.
func (p *Person) diagnose() {
	if p.Dead {
		return
	}
	p.Diagnosed = true
	if p.Active {
		p.InQuarantine = true
	}
}

func (p *Person) cure() {
	if p.Dead {
		return
	}
	p.InQuarantine = false
	p.Active = false
}

func (p *Person) die() {
	p.Active = false
	p.Contagious = false
	p.Susceptible = false
	p.InQuarantine = false
	p.InIncubation = false
	p.Dead = true
}

// === Street transmission filters ===

// quarantineBlocks reports whether quarantine prevented this contact.
func (p *Person) quarantineBlocks(sim *Simulator) bool {
	return p.InQuarantine && sim.street.Uniform() < sim.Config.Intervention.QuarantineEffectiveness
}

// maskBlocks reports whether a worn mask prevented this contact, given the
// side-specific reduction probability.
func (p *Person) maskBlocks(sim *Simulator, reduction float64) bool {
	if p.MaskUsage > sim.street.Uniform() {
		return reduction > sim.street.Uniform()
	}
	return false
}

// CanTransmitOnStreet draws whether a contagious person passes the virus on at a contact.
func (p *Person) CanTransmitOnStreet(sim *Simulator) bool {
	return !p.quarantineBlocks(sim) && !p.maskBlocks(sim, sim.Config.Intervention.MaskTransmissionReduction)
}

// CanBeInfectedOnStreet draws whether this person can catch the virus at a contact.
func (p *Person) CanBeInfectedOnStreet(sim *Simulator) bool {
	return p.Susceptible &&
		!p.quarantineBlocks(sim) &&
		!p.maskBlocks(sim, sim.Config.Intervention.MaskInfectionReduction)
}
