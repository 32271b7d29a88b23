package domain

// DiseaseRecord holds the canned advice for a single disease. A record is only
// usable when all three fields are present; incomplete records are dropped at
// catalog load time.
type DiseaseRecord struct {
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

func (r DiseaseRecord) Complete() bool {
	return r.Description != "" && r.Treatment != "" && r.Prevention != ""
}

// Catalog maps a disease display name to its record. Built once per load and
// never mutated afterwards.
type Catalog map[string]DiseaseRecord
