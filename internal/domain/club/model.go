package club

// Club is the tenant owning formulas, rosters and matches.
type Club struct {
	ID   string
	Name string
	// AltNames holds extra spellings the club appears under on scorecards
	// ("Brookweald CC", "Brookweald 1st XI", ...).
	AltNames       []string
	ActiveSeasonID string
	// Play-Cricket site credentials for the match-detail fallback fetch.
	ProviderSiteID int64
	ProviderToken  string
}

// Names returns the primary name plus alternates, for team-name matching.
func (c Club) Names() []string {
	out := make([]string, 0, len(c.AltNames)+1)
	if c.Name != "" {
		out = append(out, c.Name)
	}
	out = append(out, c.AltNames...)
	return out
}
