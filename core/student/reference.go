package student

// Campus is one UC campus a student can target.
type Campus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Reference data served by the catalog endpoints. Static for now; a real
// articulation feed would replace these.
var (
	Colleges = []string{
		"De Anza College",
		"Foothill College",
		"Mission College",
		"West Valley College",
		"Ohlone College",
		"San Jose City College",
		"Evergreen Valley College",
		"Las Positas College",
	}

	Majors = []string{
		"Computer Science",
		"Biology",
		"Psychology",
		"Economics",
		"Mathematics",
		"Electrical Engineering",
		"Business Administration",
		"Political Science",
	}

	Campuses = []Campus{
		{ID: "ucb", Name: "UC Berkeley", Available: true},
		{ID: "ucla", Name: "UC Los Angeles", Available: true},
		{ID: "ucsd", Name: "UC San Diego", Available: true},
		{ID: "ucd", Name: "UC Davis", Available: true},
		{ID: "uci", Name: "UC Irvine", Available: true},
		{ID: "ucsb", Name: "UC Santa Barbara", Available: true},
		{ID: "ucsc", Name: "UC Santa Cruz", Available: true},
		{ID: "ucr", Name: "UC Riverside", Available: true},
		{ID: "ucm", Name: "UC Merced", Available: true},
	}
)

// DefaultCampusName is used when a stored campus ID no longer resolves.
const DefaultCampusName = "UC Santa Cruz"

func ValidCollege(name string) bool {
	for _, c := range Colleges {
		if c == name {
			return true
		}
	}
	return false
}

func ValidMajor(name string) bool {
	for _, m := range Majors {
		if m == name {
			return true
		}
	}
	return false
}

func CampusByID(id string) (Campus, bool) {
	for _, c := range Campuses {
		if c.ID == id {
			return c, true
		}
	}
	return Campus{}, false
}

// CampusName resolves a campus ID to its display name, falling back to the
// default campus when the ID is unknown or empty.
func CampusName(id string) string {
	if c, ok := CampusByID(id); ok {
		return c.Name
	}
	return DefaultCampusName
}
