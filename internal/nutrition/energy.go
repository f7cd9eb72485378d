package nutrition

import "fmt"

// activityMultipliers is the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

type BMRInput struct {
	Sex      Sex
	WeightKg float64
	HeightCm float64
	Age      int
}

// BMRMifflin is the metric Mifflin-St Jeor equation, rounded to whole kcal.
func BMRMifflin(in BMRInput) float64 {
	base := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age)
	if in.Sex == SexMale {
		return round(base + 5)
	}
	return round(base - 161)
}

func CalculateBMR(p Profile) float64 {
	return BMRMifflin(BMRInput{Sex: p.Sex, WeightKg: p.WeightKg, HeightCm: p.HeightCm, Age: p.Age})
}

func ActivityMultiplier(level ActivityLevel) (float64, error) {
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: activity %q", ErrInvalidEnum, level)
	}
	return mult, nil
}

func CalculateTDEE(bmr float64, level ActivityLevel) (float64, error) {
	mult, err := ActivityMultiplier(level)
	if err != nil {
		return 0, err
	}
	return round(bmr * mult), nil
}
