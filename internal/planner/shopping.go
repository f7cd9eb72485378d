package planner

type ShoppingLine struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	QtyUnits float64 `json:"qty_units"`
}

// BuildShoppingList sums quantities of items sharing (name, unit), keeping
// first-seen order.
func BuildShoppingList(items []PlannedItem) []ShoppingLine {
	type key struct{ name, unit string }
	index := make(map[key]int)
	lines := make([]ShoppingLine, 0, len(items))
	for _, it := range items {
		k := key{it.Food.Name, it.Food.Unit}
		if i, ok := index[k]; ok {
			lines[i].QtyUnits += it.QtyUnits
			continue
		}
		index[k] = len(lines)
		lines = append(lines, ShoppingLine{Name: it.Food.Name, Unit: it.Food.Unit, QtyUnits: it.QtyUnits})
	}
	return lines
}
