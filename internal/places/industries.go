package places

// Industry is a searchable trade with its localized labels and search terms.
type Industry struct {
	ID           string `json:"id"`
	LabelEt      string `json:"labelEt"`
	LabelEn      string `json:"labelEn"`
	SearchTermEt string `json:"searchTermEt"`
	SearchTermEn string `json:"searchTermEn"`
}

// City is a searchable Estonian town.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var industries = []Industry{
	{ID: "construction", LabelEt: "Ehitus / Remont", LabelEn: "Construction / Renovation", SearchTermEt: "ehitusfirma", SearchTermEn: "construction company"},
	{ID: "cleaning", LabelEt: "Puhastusteenused", LabelEn: "Cleaning Services", SearchTermEt: "puhastusfirma", SearchTermEn: "cleaning company"},
	{ID: "accounting", LabelEt: "Raamatupidamine", LabelEn: "Accounting", SearchTermEt: "raamatupidamine", SearchTermEn: "accounting firm"},
	{ID: "auto_repair", LabelEt: "Autoteenindus", LabelEn: "Auto Repair", SearchTermEt: "autoteenindus", SearchTermEn: "auto repair"},
	{ID: "beauty", LabelEt: "Ilusalong / Spa", LabelEn: "Beauty / Wellness", SearchTermEt: "ilusalong", SearchTermEn: "beauty salon"},
	{ID: "dental", LabelEt: "Hambaravi", LabelEn: "Dental / Medical", SearchTermEt: "hambaravi", SearchTermEn: "dental clinic"},
	{ID: "real_estate", LabelEt: "Kinnisvarabüroo", LabelEn: "Real Estate", SearchTermEt: "kinnisvarabüroo", SearchTermEn: "real estate agency"},
	{ID: "legal", LabelEt: "Õigusteenused", LabelEn: "Legal Services", SearchTermEt: "advokaadibüroo", SearchTermEn: "law firm"},
	{ID: "logistics", LabelEt: "Logistika / Transport", LabelEn: "Logistics / Transport", SearchTermEt: "veoteenus", SearchTermEn: "transport company"},
	{ID: "property_mgmt", LabelEt: "Kinnisvara haldus", LabelEn: "Property Management", SearchTermEt: "kinnisvara haldus", SearchTermEn: "property management"},
	{ID: "security", LabelEt: "Turvateenused", LabelEn: "Security Services", SearchTermEt: "turvafirma", SearchTermEn: "security company"},
	{ID: "it_services", LabelEt: "IT teenused", LabelEn: "IT Services", SearchTermEt: "IT teenused", SearchTermEn: "IT services"},
	{ID: "pet_services", LabelEt: "Loomateenused", LabelEn: "Pet Services", SearchTermEt: "loomakliinik", SearchTermEn: "veterinary clinic"},
	{ID: "printing", LabelEt: "Trükiteenused", LabelEn: "Printing / Signs", SearchTermEt: "trükikoda", SearchTermEn: "printing company"},
}

var cities = []City{
	{ID: "tallinn", Name: "Tallinn"},
	{ID: "tartu", Name: "Tartu"},
	{ID: "parnu", Name: "Pärnu"},
	{ID: "narva", Name: "Narva"},
	{ID: "kohtla_jarve", Name: "Kohtla-Järve"},
	{ID: "viljandi", Name: "Viljandi"},
	{ID: "rakvere", Name: "Rakvere"},
	{ID: "maardu", Name: "Maardu"},
	{ID: "kuressaare", Name: "Kuressaare"},
	{ID: "haapsalu", Name: "Haapsalu"},
	{ID: "johvi", Name: "Jõhvi"},
	{ID: "paide", Name: "Paide"},
	{ID: "keila", Name: "Keila"},
	{ID: "valga", Name: "Valga"},
	{ID: "voru", Name: "Võru"},
}

// Industries returns the searchable trades.
func Industries() []Industry {
	return append([]Industry(nil), industries...)
}

// Cities returns the searchable towns.
func Cities() []City {
	return append([]City(nil), cities...)
}

// FindIndustry looks up an industry by ID.
func FindIndustry(id string) (Industry, bool) {
	for _, ind := range industries {
		if ind.ID == id {
			return ind, true
		}
	}
	return Industry{}, false
}
