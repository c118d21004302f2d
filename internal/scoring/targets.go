package scoring

// targetTypes lists the Places API types of small service businesses
// (trades, contractors, professional and personal-care services).
var targetTypes = map[string]bool{
	"general_contractor": true,
	"electrician":        true,
	"plumber":            true,
	"roofing_contractor": true,
	"painter":            true,
	"moving_company":     true,
	"locksmith":          true,
	"hvac_contractor":    true,
	"accounting":         true,
	"lawyer":             true,
	"real_estate_agency": true,
	"insurance_agency":   true,
	"car_repair":         true,
	"car_wash":           true,
	"veterinary_care":    true,
	"dentist":            true,
	"physiotherapist":    true,
	"beauty_salon":       true,
	"hair_care":          true,
	"spa":                true,
	"laundry":            true,
	"storage":            true,
	"travel_agency":      true,
	"pet_store":          true,
	"cleaning_service":   true,
}

// IsTargetType reports whether a place type is in the target-trade allow-list.
func IsTargetType(placeType string) bool {
	return targetTypes[placeType]
}

// TargetTypes returns the allow-list in no particular order.
func TargetTypes() []string {
	out := make([]string, 0, len(targetTypes))
	for t := range targetTypes {
		out = append(out, t)
	}
	return out
}
