package entities

const (
	// DefaultTHAC0 is the attack baseline every character starts with
	DefaultTHAC0 = 19

	// MaxToHit caps the roll needed against any armor class
	MaxToHit = 20

	// SheetBestAC and SheetWorstAC bound the attack table on a character sheet
	SheetWorstAC = 9
	SheetBestAC  = -3
)

// AttackTable returns the roll needed to hit each armor class from startAC
// down to stopAC inclusive. Empty when startAC < stopAC.
func AttackTable(thac0, startAC, stopAC int) []int {
	if startAC < stopAC {
		return []int{}
	}

	table := make([]int, 0, startAC-stopAC+1)
	for ac := startAC; ac >= stopAC; ac-- {
		table = append(table, min(thac0-ac, MaxToHit))
	}
	return table
}

// AttackRow pairs an armor class with the roll needed to hit it
type AttackRow struct {
	ArmorClass int
	ToHit      int
}

// AttackRows is AttackTable labelled with armor classes
func AttackRows(thac0, startAC, stopAC int) []AttackRow {
	table := AttackTable(thac0, startAC, stopAC)
	rows := make([]AttackRow, len(table))
	for i, toHit := range table {
		rows[i] = AttackRow{ArmorClass: startAC - i, ToHit: toHit}
	}
	return rows
}
