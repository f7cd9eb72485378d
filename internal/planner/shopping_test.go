package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildShoppingListAggregatesByNameAndUnit(t *testing.T) {
	items := []PlannedItem{
		{Time: "08:00", QtyUnits: 1.5, Food: PlannedFood{Name: "Oats", Unit: "100g"}},
		{Time: "13:30", QtyUnits: 2, Food: PlannedFood{Name: "Rice", Unit: "100g"}},
		{Time: "17:30", QtyUnits: 1, Food: PlannedFood{Name: "Oats", Unit: "cup"}},
		{Time: "21:00", QtyUnits: 0.5, Food: PlannedFood{Name: "Oats", Unit: "100g"}},
	}
	assert.Equal(t, []ShoppingLine{
		{Name: "Oats", Unit: "100g", QtyUnits: 2},
		{Name: "Rice", Unit: "100g", QtyUnits: 2},
		{Name: "Oats", Unit: "cup", QtyUnits: 1},
	}, BuildShoppingList(items))

	assert.Empty(t, BuildShoppingList(nil))
}
