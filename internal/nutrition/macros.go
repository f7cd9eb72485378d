package nutrition

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

const (
	kcalPerKgBodyMass = 7700
	minDailyKcal      = 1200
	fatPerKg          = 0.8
	minFatPerKg       = 0.6
	kcalPerGProtein   = 4
	kcalPerGCarbs     = 4
	kcalPerGFat       = 9
)

var proteinPerKg = map[GoalType]float64{
	GoalCut:      2.2,
	GoalMaintain: 2.0,
	GoalBulk:     1.8,
}

type MacroResult struct {
	BMR        float64 `json:"bmr"`
	TDEE       float64 `json:"tdee"`
	TargetKcal float64 `json:"target_kcal"`
	ProteinG   float64 `json:"protein_g"`
	FatG       float64 `json:"fat_g"`
	CarbsG     float64 `json:"carbs_g"`
}

func (r MacroResult) Goals() MacroGoals {
	return MacroGoals{Kcal: r.TargetKcal, Protein: r.ProteinG, Carbs: r.CarbsG, Fat: r.FatG}
}

// KcalDeltaPerDay converts a weekly body-mass change into a daily kcal delta
// using the ~7700 kcal per kg heuristic.
func KcalDeltaPerDay(rateKgPerWeek float64) float64 {
	return rateKgPerWeek * kcalPerKgBodyMass / 7
}

// ComputeMacros derives BMR, TDEE, a daily kcal target and the
// protein/fat/carb split for a profile. Only unknown enum values fail; the
// 1200 kcal floor and the fat floor keep extreme inputs from going negative,
// though carbs may still end up at 0.
func ComputeMacros(p Profile) (MacroResult, error) {
	mult, err := ActivityMultiplier(p.Activity)
	if err != nil {
		return MacroResult{}, err
	}
	perKg, ok := proteinPerKg[p.Goal]
	if !ok {
		return MacroResult{}, fmt.Errorf("%w: goal %q", ErrInvalidEnum, p.Goal)
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return MacroResult{}, fmt.Errorf("%w: sex %q", ErrInvalidEnum, p.Sex)
	}

	bmr := CalculateBMR(p)
	tdee := round(bmr * mult)
	target := math.Max(minDailyKcal, round(tdee+KcalDeltaPerDay(p.RateKgPerWeek)))

	protein := round(perKg * p.WeightKg)
	fat := round(fatPerKg * p.WeightKg)
	remaining := target - (protein*kcalPerGProtein + fat*kcalPerGFat)

	// Aggressive cuts: give up fat down to the floor, never protein.
	if remaining < 0 {
		minFat := round(minFatPerKg * p.WeightKg)
		if fat > minFat {
			drop := math.Min(fat-minFat, math.Ceil(math.Abs(remaining)/kcalPerGFat))
			fat -= drop
			remaining += drop * kcalPerGFat
		}
	}
	carbs := math.Max(0, round(remaining/kcalPerGCarbs))

	return MacroResult{
		BMR:        bmr,
		TDEE:       tdee,
		TargetKcal: target,
		ProteinG:   protein,
		FatG:       fat,
		CarbsG:     carbs,
	}, nil
}

// ValidateProfile applies the onboarding ranges and reports every violation
// at once.
func ValidateProfile(p Profile) error {
	var err error
	if p.Sex != SexMale && p.Sex != SexFemale {
		err = multierr.Append(err, fmt.Errorf("%w: sex %q", ErrInvalidEnum, p.Sex))
	}
	if _, ok := activityMultipliers[p.Activity]; !ok {
		err = multierr.Append(err, fmt.Errorf("%w: activity %q", ErrInvalidEnum, p.Activity))
	}
	if _, ok := proteinPerKg[p.Goal]; !ok {
		err = multierr.Append(err, fmt.Errorf("%w: goal %q", ErrInvalidEnum, p.Goal))
	}
	if p.Age < 14 || p.Age > 100 {
		err = multierr.Append(err, fmt.Errorf("age must be between 14 and 100"))
	}
	if p.HeightCm < 120 || p.HeightCm > 250 {
		err = multierr.Append(err, fmt.Errorf("height must be between 120 and 250 cm"))
	}
	if p.WeightKg < 35 || p.WeightKg > 300 {
		err = multierr.Append(err, fmt.Errorf("weight must be between 35 and 300 kg"))
	}
	if p.RateKgPerWeek < -1.5 || p.RateKgPerWeek > 1.0 {
		err = multierr.Append(err, fmt.Errorf("rate must be between -1.5 and 1.0 kg/week"))
	}
	return err
}
