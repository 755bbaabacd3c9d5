package domain

// Representative is a legislator entry from the representatives dataset.
type Representative struct {
	Office         string
	Name           string
	District       string
	Party          string
	Counties       string
	Email          string
	Webpage        string
	LegislationURL string
	ImageID        string
	ImageURL       string
	Bills          []RepresentativeBill
}

// RepresentativeBill is the per-representative bill summary some datasets embed.
type RepresentativeBill struct {
	Number string
	Passed bool
}

// Dataset bundles both documents fetched for a single build.
type Dataset struct {
	Representatives []Representative
	Bills           []BillRecord
}
