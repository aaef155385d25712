// Package schedule provides learning-rate schedules for pretraining runs.
package schedule

import (
	"errors"
	"fmt"
	"math"
)

var errInvalidSchedule = errors.New("invalid schedule")

// PolynomialDecay warms the learning rate up linearly over WarmupSteps and
// then decays it polynomially to EndLR at TotalSteps.
//
// Steps are counted from 1. Every call to Step returns the rate for the
// current step and advances it, except once TotalSteps is reached, after
// which EndLR is returned forever.
type PolynomialDecay struct {
	startLR     float64
	endLR       float64
	power       float64
	warmupSteps int
	totalSteps  int
	current     int
}

// Record is the full serialisable state of a PolynomialDecay.
type Record struct {
	StartLR     float64 `json:"start_lr" yaml:"start_lr"`
	EndLR       float64 `json:"end_lr" yaml:"end_lr"`
	Power       float64 `json:"power" yaml:"power"`
	WarmupSteps int     `json:"warmup_steps" yaml:"warmup_steps"`
	TotalSteps  int     `json:"total_steps" yaml:"total_steps"`
	CurrentStep int     `json:"current_step" yaml:"current_step"`
}

// NewPolynomialDecay validates the parameters and returns a schedule at step 1.
func NewPolynomialDecay(startLR, endLR, power float64, totalSteps, warmupSteps int) (*PolynomialDecay, error) {
	switch {
	case totalSteps <= 0:
		return nil, fmt.Errorf("%w: total steps must be positive, got %d", errInvalidSchedule, totalSteps)
	case warmupSteps < 0 || warmupSteps >= totalSteps:
		return nil, fmt.Errorf("%w: warmup steps %d outside [0, %d)", errInvalidSchedule, warmupSteps, totalSteps)
	case power <= 0:
		return nil, fmt.Errorf("%w: power must be positive, got %v", errInvalidSchedule, power)
	}
	return &PolynomialDecay{
		startLR:     startLR,
		endLR:       endLR,
		power:       power,
		warmupSteps: warmupSteps,
		totalSteps:  totalSteps,
		current:     1,
	}, nil
}

// Step returns the learning rate for the current step and advances.
func (s *PolynomialDecay) Step() float64 {
	if s.current >= s.totalSteps {
		return s.endLR
	}

	if s.current <= s.warmupSteps {
		lr := float64(s.current) / float64(s.warmupSteps) * s.startLR
		s.current++
		return lr
	}

	progress := float64(s.current-s.warmupSteps) / float64(s.totalSteps-s.warmupSteps)
	lr := (s.startLR-s.endLR)*math.Pow(1-progress, s.power) + s.endLR
	s.current++
	return lr
}

// Current returns the step the next call to Step will use.
func (s *PolynomialDecay) Current() int { return s.current }

// Record snapshots the schedule.
func (s *PolynomialDecay) Record() Record {
	return Record{
		StartLR:     s.startLR,
		EndLR:       s.endLR,
		Power:       s.power,
		WarmupSteps: s.warmupSteps,
		TotalSteps:  s.totalSteps,
		CurrentStep: s.current,
	}
}

// Load restores a schedule from a record.
func Load(r Record) (*PolynomialDecay, error) {
	s, err := NewPolynomialDecay(r.StartLR, r.EndLR, r.Power, r.TotalSteps, r.WarmupSteps)
	if err != nil {
		return nil, err
	}
	if r.CurrentStep < 1 {
		return nil, fmt.Errorf("%w: current step must be at least 1, got %d", errInvalidSchedule, r.CurrentStep)
	}
	s.current = r.CurrentStep
	return s, nil
}
