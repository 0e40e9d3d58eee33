package nutrition

import "math"

// Body measurements read by ComputeMetrics. Optional fields are nil when the
// user has not provided them.
type Body struct {
	Height        float64
	Weight        float64
	Age           int
	Gender        string
	ActivityLevel string

	Wrist             *float64
	Waist             *float64
	Hip               *float64
	Neck              *float64
	BodyFatPercentage *float64
	BodyFrame         *string
	BodyType          *string
}

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Metrics is the read-model block shown next to a nutritional profile.
type Metrics struct {
	BMI                float64     `json:"bmi"`
	BMICategory        string      `json:"bmi_category"`
	BMR                int         `json:"bmr"`
	TDEE               int         `json:"tdee"`
	BodyFrame          string      `json:"body_frame"`
	BodyType           string      `json:"body_type"`
	BodyFatEstimate    *float64    `json:"body_fat_estimate"`
	WaistToHipRatio    *float64    `json:"waist_to_hip_ratio"`
	WaistToHipCategory *string     `json:"waist_to_hip_category"`
	IdealWeightRange   WeightRange `json:"ideal_weight_range"`
}

func ComputeMetrics(b Body) Metrics {
	bmi := BMI(b.Height, b.Weight)
	bmr := BMR(b.Weight, b.Height, b.Age, b.Gender)

	m := Metrics{
		BMI:              round1(bmi),
		BMICategory:      BMICategory(bmi),
		BMR:              bmr,
		TDEE:             TDEE(bmr, b.ActivityLevel),
		BodyFrame:        BodyFrame(b.Height, b.Wrist, b.Gender, b.BodyFrame),
		BodyType:         BodyType(bmi, b.BodyType),
		BodyFatEstimate:  BodyFat(b, bmi),
		IdealWeightRange: IdealWeightRange(b.Height),
	}

	if ratio, ok := WaistToHip(b.Waist, b.Hip); ok {
		r := round2(ratio)
		cat := WaistToHipCategory(ratio, b.Gender)
		m.WaistToHipRatio = &r
		m.WaistToHipCategory = &cat
	}

	return m
}

// BMI expects centimetres and kilograms.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return weightKg / (h * h)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// BodyFrame prefers the stored classification and otherwise estimates it from
// the height-to-wrist ratio. Without a wrist measurement the frame is medium.
func BodyFrame(heightCm float64, wristCm *float64, gender string, stored *string) string {
	if stored != nil && *stored != "" {
		return *stored
	}
	if wristCm == nil || *wristCm <= 0 {
		return "medium"
	}

	r := heightCm / *wristCm
	small, medium := 11.0, 10.1
	if gender == GenderMale {
		small, medium = 10.4, 9.6
	}

	switch {
	case r > small:
		return "small"
	case r >= medium:
		return "medium"
	default:
		return "large"
	}
}

func BodyType(bmi float64, stored *string) string {
	if stored != nil && *stored != "" {
		return *stored
	}
	switch {
	case bmi < 18.5:
		return "ectomorph"
	case bmi < 25.0:
		return "mesomorph"
	default:
		return "endomorph"
	}
}

// BodyFat returns the stored percentage when present, the US Navy estimate
// when the needed circumferences are known, and the Deurenberg BMI estimate
// otherwise.
func BodyFat(b Body, bmi float64) *float64 {
	if b.BodyFatPercentage != nil {
		v := *b.BodyFatPercentage
		return &v
	}

	if v, ok := navyBodyFat(b); ok {
		v = round1(v)
		return &v
	}

	if bmi <= 0 || b.Age <= 0 {
		return nil
	}
	sex := 0.0
	if b.Gender == GenderMale {
		sex = 1
	}
	v := round1(1.20*bmi + 0.23*float64(b.Age) - 10.8*sex - 5.4)
	return &v
}

func navyBodyFat(b Body) (float64, bool) {
	if b.Waist == nil || b.Neck == nil || b.Height <= 0 {
		return 0, false
	}

	if b.Gender == GenderMale {
		d := *b.Waist - *b.Neck
		if d <= 0 {
			return 0, false
		}
		return 495/(1.0324-0.19077*math.Log10(d)+0.15456*math.Log10(b.Height)) - 450, true
	}

	if b.Hip == nil {
		return 0, false
	}
	d := *b.Waist + *b.Hip - *b.Neck
	if d <= 0 {
		return 0, false
	}
	return 495/(1.29579-0.35004*math.Log10(d)+0.22100*math.Log10(b.Height)) - 450, true
}

func WaistToHip(waist, hip *float64) (float64, bool) {
	if waist == nil || hip == nil || *hip <= 0 {
		return 0, false
	}
	return *waist / *hip, true
}

func WaistToHipCategory(ratio float64, gender string) string {
	low, moderate := 0.80, 0.85
	if gender == GenderMale {
		low, moderate = 0.90, 1.0
	}
	switch {
	case ratio < low:
		return "low"
	case ratio < moderate:
		return "moderate"
	default:
		return "high"
	}
}

// IdealWeightRange is the weight span for a BMI of 18.5 to 24.9.
func IdealWeightRange(heightCm float64) WeightRange {
	h := heightCm / 100
	return WeightRange{
		Min: round1(18.5 * h * h),
		Max: round1(24.9 * h * h),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
