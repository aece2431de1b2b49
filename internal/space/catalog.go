package space

import "github.com/shopspring/decimal"

// Space is a fixed catalog entry. The catalog is compiled in and read-only;
// nothing in the portal mutates it.
type Space struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	MaxPeople     int             `json:"maxPeople"`
	Floor         string          `json:"floor"`
	SuggestedUses []string        `json:"suggestedUses"`
	Cost          decimal.Decimal `json:"cost"`
	Free          bool            `json:"free"`
}

var catalog = []Space{
	{
		ID:            "1",
		Name:          "Spazio Open",
		Description:   "Ampio spazio aperto ideale per eventi e presentazioni",
		MaxPeople:     40,
		Floor:         "Seminterrato",
		SuggestedUses: []string{"Eventi", "Conferenze", "Workshop"},
		Free:          true,
	},
	{
		ID:            "2",
		Name:          "Spazio Presentazioni",
		Description:   "Sala attrezzata per presentazioni e meeting",
		MaxPeople:     24,
		Floor:         "Seminterrato",
		SuggestedUses: []string{"Presentazioni", "Meeting", "Formazione"},
	},
	{
		ID:            "3",
		Name:          "Stanza Colloqui",
		Description:   "Spazio intimo per colloqui e riunioni private",
		MaxPeople:     4,
		Floor:         "Seminterrato",
		SuggestedUses: []string{"Colloqui", "Riunioni private"},
	},
	{
		ID:            "4",
		Name:          "Stanza Mezzaluna",
		Description:   "Sala dalla forma particolare per attività creative",
		MaxPeople:     16,
		Floor:         "Primo Piano",
		SuggestedUses: []string{"Attività creative", "Laboratori", "Gruppi di lavoro"},
	},
	{
		ID:            "5",
		Name:          "Stanza Laboratori",
		Description:   "Spazio attrezzato per laboratori e attività pratiche",
		MaxPeople:     20,
		Floor:         "Primo Piano",
		SuggestedUses: []string{"Laboratori", "Attività pratiche", "Corsi"},
	},
	{
		ID:            "6",
		Name:          "Foresteria",
		Description:   "Alloggio con 3 stanze per ospiti",
		MaxPeople:     8,
		Floor:         "Secondo Piano",
		SuggestedUses: []string{"Pernottamento", "Ospitalità"},
	},
	{
		ID:            "7",
		Name:          "Giardino",
		Description:   "Spazio esterno per attività all'aperto",
		MaxPeople:     50,
		Floor:         "Esterno",
		SuggestedUses: []string{"Eventi estivi", "Attività ricreative", "Feste"},
	},
}

// All returns the catalog in its fixed order.
func All() []Space {
	out := make([]Space, len(catalog))
	copy(out, catalog)
	return out
}

// Exists reports whether a name matches a catalog space.
func Exists(name string) bool {
	for _, s := range catalog {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Names returns the catalog space names, in catalog order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, s := range catalog {
		out[i] = s.Name
	}
	return out
}
