// Package nutrition holds the body-metric, energy and macro calculations
// shared by the planner, the stores and the CLI. Everything here is pure.
package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidEnum = errors.New("invalid value")

type MacroGoals struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// FoodItem carries macros for one unit of the food (e.g. per 100g).
type FoodItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kcal         float64 `json:"kcal"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Unit         string  `json:"unit"`
	GramsPerUnit float64 `json:"grams_per_unit"`
}

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type GoalType string

const (
	GoalCut      GoalType = "cut"
	GoalMaintain GoalType = "maintain"
	GoalBulk     GoalType = "bulk"
)

// Profile is the onboarding input for BMR, TDEE and macro targets.
// RateKgPerWeek is negative to lose, zero to maintain, positive to gain.
type Profile struct {
	Sex           Sex           `json:"sex"`
	Age           int           `json:"age"`
	HeightCm      float64       `json:"height_cm"`
	WeightKg      float64       `json:"weight_kg"`
	Activity      ActivityLevel `json:"activity"`
	Goal          GoalType      `json:"goal"`
	RateKgPerWeek float64       `json:"rate_kg_per_week"`
}

func ParseSex(v string) (Sex, error) {
	s := Sex(strings.ToLower(strings.TrimSpace(v)))
	switch s {
	case SexMale, SexFemale:
		return s, nil
	}
	return "", fmt.Errorf("%w: sex %q (use male or female)", ErrInvalidEnum, v)
}

func ParseActivity(v string) (ActivityLevel, error) {
	a := ActivityLevel(strings.ToLower(strings.TrimSpace(v)))
	// accept the camelCase spelling used by older clients
	if a == "veryactive" {
		a = ActivityVeryActive
	}
	if _, ok := activityMultipliers[a]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: activity %q (use sedentary, light, moderate, active or very_active)", ErrInvalidEnum, v)
}

func ParseGoal(v string) (GoalType, error) {
	g := GoalType(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := proteinPerKg[g]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: goal %q (use cut, maintain or bulk)", ErrInvalidEnum, v)
}

// round matches half-up rounding so 82.5 -> 83 and -0.5 -> 0.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
