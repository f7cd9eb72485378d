package nutrition

// CalculateBMI returns weight / height_m² rounded to one decimal.
// A non-positive height yields 0 instead of dividing by zero.
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	if heightM <= 0 {
		return 0
	}
	return round1(weightKg / (heightM * heightM))
}

func BMICategory(bmi float64) string {
	switch {
	case bmi == 0:
		return "Unknown"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
