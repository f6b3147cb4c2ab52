package domain

// Label is the severity tier of a UHI score.
type Label string

const (
	LabelLow      Label = "Low"
	LabelModerate Label = "Moderate"
	LabelHigh     Label = "High"
)

// Tier thresholds. A score equal to a threshold belongs to the higher tier.
const (
	HighThreshold     = 70.0
	ModerateThreshold = 45.0
)

// ClosingTip is appended to every tier's advice.
const ClosingTip = "Mapping tips: sample day & night, gather rooftop sensors, overlay land-cover/traffic data."

var tierTips = map[Label][]string{
	LabelHigh: {
		"Prioritise large-scale greening (parks, urban forests) and shade corridors.",
		"Implement cool-roof programs and reflective pavements in market / high-traffic zones.",
		"Deploy temporary cooling centers & shaded transit stops during heat waves.",
	},
	LabelModerate: {
		"Target pilot retrofits: cool roofs, tree-planting, and permeable pavements in hotspot neighborhoods.",
		"Encourage building designs with cross-ventilation and outdoor shade.",
	},
	LabelLow: {
		"Maintain urban canopy, protect open green areas, and monitor changes.",
		"Use pocket parks and community tree initiatives to keep UHI low.",
	},
}

// Classify maps a score to its tier.
func Classify(uhi float64) Label {
	switch {
	case uhi >= HighThreshold:
		return LabelHigh
	case uhi >= ModerateThreshold:
		return LabelModerate
	default:
		return LabelLow
	}
}

// Advise returns the tier for uhi and its ordered tips, ending with
// ClosingTip. The returned slice is owned by the caller.
func Advise(uhi float64) (Label, []string) {
	label := Classify(uhi)
	tips := tierTips[label]

	out := make([]string, 0, len(tips)+1)
	out = append(out, tips...)
	out = append(out, ClosingTip)
	return label, out
}
