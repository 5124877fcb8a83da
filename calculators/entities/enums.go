package entities

import "github.com/giygas/medcalc/validation"

type Sex int

const (
	Male Sex = iota
	Female
)

func (s Sex) String() string {
	if s == Female {
		return "Female"
	}
	return "Male"
}

// ParseSex accepts "Male"/"Female" and the single-letter forms.
func ParseSex(field, value string) (Sex, error) {
	return validation.ParseChoice(field, value, map[string]Sex{
		"Male":   Male,
		"M":      Male,
		"Female": Female,
		"F":      Female,
	})
}

// SurgeryType is the Caprini surgery category.
type SurgeryType int

const (
	SurgeryNone SurgeryType = iota
	SurgeryMinor
	SurgeryMajor
	SurgeryLaparoscopic
	SurgeryArthroscopic
	SurgeryElectiveArthroplasty
)

var surgeryTypeNames = map[SurgeryType]string{
	SurgeryNone:                 "none",
	SurgeryMinor:                "minor",
	SurgeryMajor:                "major",
	SurgeryLaparoscopic:         "laparoscopic",
	SurgeryArthroscopic:         "arthroscopic",
	SurgeryElectiveArthroplasty: "elective major lower extremity arthroplasty",
}

func (s SurgeryType) String() string { return surgeryTypeNames[s] }

// Points is the Caprini contribution of the surgery category.
func (s SurgeryType) Points() int {
	switch s {
	case SurgeryMinor:
		return 1
	case SurgeryMajor, SurgeryLaparoscopic, SurgeryArthroscopic:
		return 2
	case SurgeryElectiveArthroplasty:
		return 5
	default:
		return 0
	}
}

func ParseSurgeryType(field, value string) (SurgeryType, error) {
	return validation.ParseChoice(field, value, invert(surgeryTypeNames))
}

// Mobility is the Caprini mobility category.
type Mobility int

const (
	MobilityNormal Mobility = iota
	MobilityBedRest
	MobilityConfined
)

var mobilityNames = map[Mobility]string{
	MobilityNormal:   "normal",
	MobilityBedRest:  "on bed rest",
	MobilityConfined: "confined to bed >72 hours",
}

func (m Mobility) String() string { return mobilityNames[m] }

// Points equals the ordinal: normal 0, bed rest 1, confined 2.
func (m Mobility) Points() int { return int(m) }

func ParseMobility(field, value string) (Mobility, error) {
	return validation.ParseChoice(field, value, invert(mobilityNames))
}

// HistorySuspicion is the HEART history category.
type HistorySuspicion int

const (
	SlightlySuspicious HistorySuspicion = iota
	ModeratelySuspicious
	HighlySuspicious
)

var historyNames = map[HistorySuspicion]string{
	SlightlySuspicious:   "Slightly suspicious",
	ModeratelySuspicious: "Moderately suspicious",
	HighlySuspicious:     "Highly suspicious",
}

func (h HistorySuspicion) String() string { return historyNames[h] }
func (h HistorySuspicion) Points() int    { return int(h) }

func ParseHistorySuspicion(field, value string) (HistorySuspicion, error) {
	return validation.ParseChoice(field, value, invert(historyNames))
}

// ECGFinding is the HEART electrocardiogram category.
type ECGFinding int

const (
	ECGNormal ECGFinding = iota
	ECGNonSpecificRepolarization
	ECGSignificantSTDeviation
)

var ecgNames = map[ECGFinding]string{
	ECGNormal:                    "Normal",
	ECGNonSpecificRepolarization: "Non-specific repolarization disturbance",
	ECGSignificantSTDeviation:    "Significant ST deviation",
}

func (e ECGFinding) String() string { return ecgNames[e] }
func (e ECGFinding) Points() int    { return int(e) }

func ParseECGFinding(field, value string) (ECGFinding, error) {
	return validation.ParseChoice(field, value, invert(ecgNames))
}

// TroponinLevel is the HEART initial troponin category.
type TroponinLevel int

const (
	TroponinNormal TroponinLevel = iota
	TroponinUpToThreeTimes
	TroponinAboveThreeTimes
)

var troponinNames = map[TroponinLevel]string{
	TroponinNormal:          "less than or equal to normal limit",
	TroponinUpToThreeTimes:  "between the normal limit or up to three times the normal limit",
	TroponinAboveThreeTimes: "greater than three times normal limit",
}

func (t TroponinLevel) String() string { return troponinNames[t] }
func (t TroponinLevel) Points() int    { return int(t) }

func ParseTroponinLevel(field, value string) (TroponinLevel, error) {
	return validation.ParseChoice(field, value, invert(troponinNames))
}

func invert[K comparable](names map[K]string) map[string]K {
	out := make(map[string]K, len(names))
	for k, name := range names {
		out[name] = k
	}
	return out
}
