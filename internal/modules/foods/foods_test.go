package foods

import (
	"testing"

	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestPortion(t *testing.T) {
	oats := Food{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9}

	assert.Equal(t, Portion{Calories: 155.6, Protein: 6.8, Carbs: 26.5, Fat: 2.8}, oats.Portion(40))
	assert.Equal(t, Portion{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9}, oats.Portion(100))
	assert.Equal(t, Portion{}, oats.Portion(0))
}

func TestFoodRequestValidation(t *testing.T) {
	zero := 0.0
	errs := validation.Struct(&FoodRequest{Name: "Water", Calories: &zero})
	assert.Nil(t, errs)

	errs = validation.Struct(&FoodRequest{Protein: 120})
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The calories field is required.", errs["calories"])
	assert.Equal(t, "The protein field must not be greater than 100.", errs["protein"])
}
