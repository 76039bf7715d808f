package sim

import (
	"errors"
	"fmt"
	"math"
)

// NumAgeGroups is the number of age bands (0-9, 10-19, ..., 80+).
const NumAgeGroups = 9

// AgeGroupLabels names the age bands in index order.
var AgeGroupLabels = [NumAgeGroups]string{
	"0-9", "10-19", "20-29", "30-39", "40-49", "50-59", "60-69", "70-79", "80+",
}

// PopulationConfig groups population initialization parameters.
type PopulationConfig struct {
	Size            int       `yaml:"size"`             // number of persons (must be > 0)
	InitialInfected int       `yaml:"initial_infected"` // successful seed infections (0..Size)
	MaskUsage       float64   `yaml:"mask_usage"`       // default per-person mask usage probability
	AgeDistribution []float64 `yaml:"age_distribution"` // 8 cumulative thresholds -> 9 age groups
}

// InterventionConfig groups the containment measures applied at street contacts.
type InterventionConfig struct {
	MaskTransmissionReduction float64 `yaml:"mask_transmission_reduction"`  // P(worn mask blocks transmitting)
	MaskInfectionReduction    float64 `yaml:"mask_infection_reduction"`     // P(worn mask blocks being infected)
	QuarantineEffectiveness   float64 `yaml:"quarantine_effectiveness"`     // P(quarantine blocks a contact)
	DiagnosisChanceIfModerate float64 `yaml:"diagnosis_chance_if_moderate"` // P(mild-to-moderate case gets diagnosed)
	DiagnosisDelay            float64 `yaml:"diagnosis_delay"`              // days from symptom onset to diagnosis
}

// DiseaseConfig groups the timeline distributions, all in days.
type DiseaseConfig struct {
	Incubation          WeibullParams `yaml:"incubation"`
	Contagion           WeibullParams `yaml:"contagion"`
	SevereOutcome       WeibullParams `yaml:"severe_outcome"`
	DeathOutcome        WeibullParams `yaml:"death_outcome"`
	ModerateOutcome     WeibullParams `yaml:"moderate_outcome"`
	NoSymptomsOutcome   WeibullParams `yaml:"no_symptoms_outcome"`
	MeanContactInterval float64       `yaml:"mean_contact_interval"`
}

// Config is the full, validated input of a simulation run.
type Config struct {
	Horizon      int64              `yaml:"horizon"` // days; metrics are sampled for days 0..Horizon
	Population   PopulationConfig   `yaml:"population"`
	Intervention InterventionConfig `yaml:"intervention"`
	Disease      DiseaseConfig      `yaml:"disease"`
	// OutcomeThresholds has either one row shared by every age group,
	// or one row per age group.
	OutcomeThresholds []SeverityThresholds `yaml:"outcome_thresholds"`
}

// DefaultConfig returns the reference scenario: a city of 488k people over 180 days.
func DefaultConfig() Config {
	return Config{
		Horizon: 180,
		Population: PopulationConfig{
			Size:            488000,
			InitialInfected: 12,
			MaskUsage:       0.4,
			AgeDistribution: []float64{
				0.1463559, 0.28887671, 0.4237656, 0.56420489,
				0.71197656, 0.8418588, 0.93131528, 0.97634216,
			},
		},
		Intervention: InterventionConfig{
			MaskTransmissionReduction: 0.5,
			MaskInfectionReduction:    0.3,
			QuarantineEffectiveness:   0.8,
			DiagnosisChanceIfModerate: 0.5,
			DiagnosisDelay:            2,
		},
		Disease: DiseaseConfig{
			Incubation:          WeibullParams{Shape: 4, Scale: 6},
			Contagion:           WeibullParams{Shape: 2, Scale: 4},
			SevereOutcome:       WeibullParams{Shape: 2, Scale: 12},
			DeathOutcome:        WeibullParams{Shape: 2, Scale: 17},
			ModerateOutcome:     WeibullParams{Shape: 2, Scale: 20},
			NoSymptomsOutcome:   WeibullParams{Shape: 2, Scale: 15},
			MeanContactInterval: 0.5,
		},
		OutcomeThresholds: []SeverityThresholds{{0.5, 0.4, 0.065, 0.025, 0.01}},
	}
}

// ThresholdsFor returns the severity row for an age group.
// Callers must have validated the config.
func (c *Config) ThresholdsFor(ageGroup int) SeverityThresholds {
	if len(c.OutcomeThresholds) == 1 {
		return c.OutcomeThresholds[0]
	}
	return c.OutcomeThresholds[ageGroup]
}

// Validate reports the first configuration error, or nil.
// A run must never start on an invalid config.
func (c *Config) Validate() error {
	if c.Horizon < 0 {
		return fmt.Errorf("horizon must be >= 0, got %d", c.Horizon)
	}
	if err := c.Population.validate(); err != nil {
		return fmt.Errorf("population: %w", err)
	}
	if err := c.Intervention.validate(); err != nil {
		return fmt.Errorf("intervention: %w", err)
	}
	if err := c.Disease.validate(); err != nil {
		return fmt.Errorf("disease: %w", err)
	}
	switch len(c.OutcomeThresholds) {
	case 1, NumAgeGroups:
	default:
		return fmt.Errorf("outcome_thresholds must have 1 or %d rows, got %d", NumAgeGroups, len(c.OutcomeThresholds))
	}
	for i, row := range c.OutcomeThresholds {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("outcome_thresholds[%d]: %w", i, err)
		}
	}
	if c.Population.InitialInfected > 0 && !c.infectionPossible() {
		return errors.New("outcome_thresholds: no exposure can succeed, initial infections would never seed")
	}
	return nil
}

func (c *Config) infectionPossible() bool {
	for _, row := range c.OutcomeThresholds {
		if row[0] > 0 {
			return true
		}
	}
	return false
}

func (p *PopulationConfig) validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("size must be > 0, got %d", p.Size)
	}
	if p.InitialInfected < 0 || p.InitialInfected > p.Size {
		return fmt.Errorf("initial_infected must be in [0, %d], got %d", p.Size, p.InitialInfected)
	}
	if err := checkProbability("mask_usage", p.MaskUsage); err != nil {
		return err
	}
	if len(p.AgeDistribution) != NumAgeGroups-1 {
		return fmt.Errorf("age_distribution must have %d cumulative thresholds, got %d", NumAgeGroups-1, len(p.AgeDistribution))
	}
	for i, v := range p.AgeDistribution {
		if err := checkProbability(fmt.Sprintf("age_distribution[%d]", i), v); err != nil {
			return err
		}
		if i > 0 && v < p.AgeDistribution[i-1] {
			return fmt.Errorf("age_distribution must be non-decreasing: [%d]=%v < [%d]=%v", i, v, i-1, p.AgeDistribution[i-1])
		}
	}
	return nil
}

func (iv *InterventionConfig) validate() error {
	probs := []struct {
		name string
		v    float64
	}{
		{"mask_transmission_reduction", iv.MaskTransmissionReduction},
		{"mask_infection_reduction", iv.MaskInfectionReduction},
		{"quarantine_effectiveness", iv.QuarantineEffectiveness},
		{"diagnosis_chance_if_moderate", iv.DiagnosisChanceIfModerate},
	}
	for _, p := range probs {
		if err := checkProbability(p.name, p.v); err != nil {
			return err
		}
	}
	if !isFinite(iv.DiagnosisDelay) || iv.DiagnosisDelay < 0 {
		return fmt.Errorf("diagnosis_delay must be a finite value >= 0, got %v", iv.DiagnosisDelay)
	}
	return nil
}

func (d *DiseaseConfig) validate() error {
	params := []struct {
		name string
		p    WeibullParams
	}{
		{"incubation", d.Incubation},
		{"contagion", d.Contagion},
		{"severe_outcome", d.SevereOutcome},
		{"death_outcome", d.DeathOutcome},
		{"moderate_outcome", d.ModerateOutcome},
		{"no_symptoms_outcome", d.NoSymptomsOutcome},
	}
	for _, w := range params {
		if !isFinite(w.p.Shape) || !isFinite(w.p.Scale) || w.p.Shape <= 0 || w.p.Scale <= 0 {
			return fmt.Errorf("%s: shape and scale must be finite and > 0, got shape=%v scale=%v", w.name, w.p.Shape, w.p.Scale)
		}
	}
	if !isFinite(d.MeanContactInterval) || d.MeanContactInterval <= 0 {
		return fmt.Errorf("mean_contact_interval must be finite and > 0, got %v", d.MeanContactInterval)
	}
	return nil
}

func checkProbability(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
