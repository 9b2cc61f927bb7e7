package plates

import (
	"strconv"
	"strings"
)

// Notation renders the plan as a compact loading string: the plates for one
// side in loading order, each weight repeated per plate, joined by "/", then
// the achieved total. Two 45s and a 10 on a 45 lb bar: "45/45/10 245lb".
func (p LoadPlan) Notation() string {
	var parts []string
	for _, pl := range p.PlatesPerSide {
		w := formatWeight(pl.PlateWeight)
		for i := 0; i < pl.CountPerSide; i++ {
			parts = append(parts, w)
		}
	}
	total := formatWeight(p.AchievedTotalWeight) + string(p.Unit)
	if len(parts) == 0 {
		return total
	}
	return strings.Join(parts, "/") + " " + total
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
