// Package teams provides the canonical MLB team lookup. Every component that
// crosses a naming boundary resolves through one shared Lookup instead of
// carrying its own map: season-stat sources key teams by abbreviation or
// mascot name while the odds feed uses full names, and all three must map to
// the same team id.
package teams

// NamingScheme identifies which naming convention a data source uses for teams.
type NamingScheme int

const (
	// SchemeFull matches full club names, e.g. "Atlanta Braves".
	SchemeFull NamingScheme = iota
	// SchemeAbbrev matches three-letter abbreviations, e.g. "ATL".
	SchemeAbbrev
	// SchemeMascot matches mascot-only names, e.g. "Braves".
	SchemeMascot
)

type team struct {
	id     int
	full   string
	abbrev string
	mascot string
}

// One entry per MLB club; ids are stable 1..30.
var clubs = []team{
	{1, "Atlanta Braves", "ATL", "Braves"},
	{2, "Arizona Diamondbacks", "ARI", "Diamondbacks"},
	{3, "Baltimore Orioles", "BAL", "Orioles"},
	{4, "Boston Red Sox", "BOS", "Red Sox"},
	{5, "Chicago Cubs", "CHC", "Cubs"},
	{6, "Chicago White Sox", "CHW", "White Sox"},
	{7, "Cincinnati Reds", "CIN", "Reds"},
	{8, "Cleveland Guardians", "CLE", "Guardians"},
	{9, "Colorado Rockies", "COL", "Rockies"},
	{10, "Detroit Tigers", "DET", "Tigers"},
	{11, "Houston Astros", "HOU", "Astros"},
	{12, "Kansas City Royals", "KCR", "Royals"},
	{13, "Los Angeles Angels", "LAA", "Angels"},
	{14, "Los Angeles Dodgers", "LAD", "Dodgers"},
	{15, "Miami Marlins", "MIA", "Marlins"},
	{16, "Milwaukee Brewers", "MIL", "Brewers"},
	{17, "Minnesota Twins", "MIN", "Twins"},
	{18, "New York Mets", "NYM", "Mets"},
	{19, "New York Yankees", "NYY", "Yankees"},
	{20, "Oakland Athletics", "OAK", "Athletics"},
	{21, "Philadelphia Phillies", "PHI", "Phillies"},
	{22, "Pittsburgh Pirates", "PIT", "Pirates"},
	{23, "San Diego Padres", "SDP", "Padres"},
	{24, "Seattle Mariners", "SEA", "Mariners"},
	{25, "San Francisco Giants", "SFG", "Giants"},
	{26, "St. Louis Cardinals", "STL", "Cardinals"},
	{27, "Tampa Bay Rays", "TBR", "Rays"},
	{28, "Texas Rangers", "TEX", "Rangers"},
	{29, "Toronto Blue Jays", "TOR", "Blue Jays"},
	{30, "Washington Nationals", "WSN", "Nationals"},
}

// Lookup resolves team-identifying strings to canonical team ids and back.
// It is immutable after construction and safe for concurrent use.
type Lookup struct {
	byFull   map[string]int
	byAbbrev map[string]int
	byMascot map[string]int
	fullByID map[int]string
}

// NewLookup builds the canonical lookup covering all 30 clubs.
func NewLookup() *Lookup {
	l := &Lookup{
		byFull:   make(map[string]int, len(clubs)),
		byAbbrev: make(map[string]int, len(clubs)),
		byMascot: make(map[string]int, len(clubs)),
		fullByID: make(map[int]string, len(clubs)),
	}
	for _, c := range clubs {
		l.byFull[c.full] = c.id
		l.byAbbrev[c.abbrev] = c.id
		l.byMascot[c.mascot] = c.id
		l.fullByID[c.id] = c.full
	}
	return l
}

// Resolve maps a team-identifying string under the given scheme to its id.
func (l *Lookup) Resolve(scheme NamingScheme, name string) (int, bool) {
	var id int
	var ok bool
	switch scheme {
	case SchemeFull:
		id, ok = l.byFull[name]
	case SchemeAbbrev:
		id, ok = l.byAbbrev[name]
	case SchemeMascot:
		id, ok = l.byMascot[name]
	}
	return id, ok
}

// IDForName resolves a name under any scheme, trying full names first.
func (l *Lookup) IDForName(name string) (int, bool) {
	if id, ok := l.byFull[name]; ok {
		return id, true
	}
	if id, ok := l.byAbbrev[name]; ok {
		return id, true
	}
	if id, ok := l.byMascot[name]; ok {
		return id, true
	}
	return 0, false
}

// FullName returns the full club name for a team id.
func (l *Lookup) FullName(id int) (string, bool) {
	name, ok := l.fullByID[id]
	return name, ok
}

// Size returns the number of clubs in the lookup.
func (l *Lookup) Size() int {
	return len(clubs)
}
