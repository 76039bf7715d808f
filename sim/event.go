package sim

import "github.com/sirupsen/logrus"

// IncubationEndEvent fires when an exposed person's incubation delay elapses.
type IncubationEndEvent struct {
	time   float64 // Simulation time (in days)
	Person *Person
}

// Timestamp returns the scheduled time of the IncubationEndEvent.
func (e *IncubationEndEvent) Timestamp() float64 {
	return e.time
}

// Execute makes the person contagious and schedules the rest of the timeline.
func (e *IncubationEndEvent) Execute(sim *Simulator) {
	if e.Person.Dead {
		return
	}
	e.Person.becomeContagious(sim)
}

// ContagionEndEvent closes the person's contagious window.
type ContagionEndEvent struct {
	time   float64
	Person *Person
}

// Timestamp returns the scheduled time of the ContagionEndEvent.
func (e *ContagionEndEvent) Timestamp() float64 {
	return e.time
}

// Execute clears the contagious flag, which also stops the street contact loop.
func (e *ContagionEndEvent) Execute(sim *Simulator) {
	e.Person.Contagious = false
}

// StreetContactEvent is one iteration of a contagious person's street contact loop.
type StreetContactEvent struct {
	time   float64
	Person *Person
}

// Timestamp returns the scheduled time of the StreetContactEvent.
func (e *StreetContactEvent) Timestamp() float64 {
	return e.time
}

// Execute tries to infect one random contact, then schedules the next contact
// while the person remains contagious.
func (e *StreetContactEvent) Execute(sim *Simulator) {
	p := e.Person
	if !p.Contagious {
		return
	}
	if p.CanTransmitOnStreet(sim) {
		contact := SampleContact(sim.Population, sim.contact)
		if contact.CanBeInfectedOnStreet(sim) && contact.ExposeToVirus(sim) {
			p.Transmitted++
			if sim.Trace != nil {
				sim.Trace.RecordTransmission(sim.Clock, p.ID, contact.ID)
			}
			if logrus.IsLevelEnabled(logrus.DebugLevel) {
				logrus.Debugf("[day %8.3f] person %d infected person %d on the street", sim.Clock, p.ID, contact.ID)
			}
		}
	}
	next := sim.street.Exponential(sim.Config.Disease.MeanContactInterval)
	sim.Schedule(&StreetContactEvent{time: sim.after(next), Person: p})
}

// DiagnosisEvent fires a fixed delay after symptom onset for cases that get tested.
// A diagnosis landing after the case resolved records Diagnosed without quarantine.
type DiagnosisEvent struct {
	time   float64
	Person *Person
}

// Timestamp returns the scheduled time of the DiagnosisEvent.
func (e *DiagnosisEvent) Timestamp() float64 {
	return e.time
}

// Execute diagnoses the person and quarantines an unresolved case.
func (e *DiagnosisEvent) Execute(sim *Simulator) {
	e.Person.diagnose()
}

// RecoveryEvent resolves a non-fatal case.
type RecoveryEvent struct {
	time   float64
	Person *Person
}

// Timestamp returns the scheduled time of the RecoveryEvent.
func (e *RecoveryEvent) Timestamp() float64 {
	return e.time
}

// Execute releases the person from quarantine and closes the case.
func (e *RecoveryEvent) Execute(sim *Simulator) {
	e.Person.cure()
}

// DeathEvent resolves a fatal case.
type DeathEvent struct {
	time   float64
	Person *Person
}

// Timestamp returns the scheduled time of the DeathEvent.
func (e *DeathEvent) Timestamp() float64 {
	return e.time
}

// Execute marks the person dead. Dead is terminal.
func (e *DeathEvent) Execute(sim *Simulator) {
	logrus.Debugf("[day %8.3f] person %d died", sim.Clock, e.Person.ID)
	e.Person.die()
}

// MetricsCollectionEvent samples the population once per simulated day.
type MetricsCollectionEvent struct {
	time float64
	day  int64
}

// Timestamp returns the scheduled time of the MetricsCollectionEvent.
func (e *MetricsCollectionEvent) Timestamp() float64 {
	return e.time
}

// Execute appends today's sample and schedules tomorrow's.
func (e *MetricsCollectionEvent) Execute(sim *Simulator) {
	sim.Metrics.Append(sim.Population.Sample(e.day, sim.Metrics.Last()))
	sim.Schedule(&MetricsCollectionEvent{time: e.time + 1, day: e.day + 1})
}
