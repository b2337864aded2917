package eligibility

import (
	"fmt"
	"strings"
)

// RequirementSpec is one major-preparation requirement. Fragments are the
// lowercase substrings matched against a course's code and name; matching is
// deliberately loose, so close names count and the occasional false positive
// is tolerated.
type RequirementSpec struct {
	Name      string
	Codes     []string
	Fragments []string
}

// MajorRequirements is the articulation table for one major.
type MajorRequirements struct {
	Major     string
	Courses   []RequirementSpec
	MinGPA    float64
	MinUnits  float64
	MaxUnits  float64
	Notes     []string
	SourceURL string
}

// Transfer thresholds used by the classifier, common to all majors. The
// per-major MinGPA is advisory (surfaced in notes and prompts only).
const (
	MinTransferGPA     = 3.0
	ConditionalGPA     = 2.5
	MinTransferUnits   = 60
	DefaultCatalogName = "Computer Science"
)

var catalog = map[string]MajorRequirements{
	"Computer Science": {
		Major: "Computer Science",
		Courses: []RequirementSpec{
			{
				Name:      "Calculus I",
				Codes:     []string{"MATH 1A", "MATH 3A", "MATH 181"},
				Fragments: []string{"math 1a", "math 3a", "math 181", "calculus i", "calc 1"},
			},
			{
				Name:      "Calculus II",
				Codes:     []string{"MATH 1B", "MATH 3B", "MATH 182"},
				Fragments: []string{"math 1b", "math 3b", "math 182", "calculus ii", "calc 2"},
			},
			{
				Name:      "Intro to Programming",
				Codes:     []string{"CIS 22A", "CS 1A", "COMSC 110"},
				Fragments: []string{"cis 22a", "cs 1a", "comsc 110", "intro to programming", "introduction to programming", "programming fundamentals"},
			},
			{
				Name:      "Data Structures",
				Codes:     []string{"CIS 22B", "CS 1B", "COMSC 165"},
				Fragments: []string{"cis 22b", "cs 1b", "comsc 165", "data structures"},
			},
			{
				Name:      "Discrete Mathematics",
				Codes:     []string{"CS 18", "CIS 18", "MATH 55"},
				Fragments: []string{"cs 18", "cis 18", "math 55", "discrete math"},
			},
			{
				Name:      "Linear Algebra",
				Codes:     []string{"MATH 21", "MATH 6"},
				Fragments: []string{"math 21", "math 6", "linear algebra"},
			},
			{
				Name:      "Physics - Mechanics",
				Codes:     []string{"PHYS 4A", "PHYS 1A"},
				Fragments: []string{"phys 4a", "phys 1a", "physics", "mechanics"},
			},
		},
		MinGPA:   3.0,
		MinUnits: 60,
		MaxUnits: 70,
		Notes: []string{
			"Computer Science admission is selective; a GPA above the minimum is strongly recommended.",
			"All major preparation courses must be completed with a C or better.",
		},
		SourceURL: "https://admissions.ucsc.edu/transfer/requirements",
	},
	"Biology": {
		Major: "Biology",
		Courses: []RequirementSpec{
			{
				Name:      "General Chemistry I",
				Codes:     []string{"CHEM 1A"},
				Fragments: []string{"chem 1a", "general chemistry"},
			},
			{
				Name:      "General Chemistry II",
				Codes:     []string{"CHEM 1B"},
				Fragments: []string{"chem 1b", "chemistry ii"},
			},
			{
				Name:      "Intro Biology I",
				Codes:     []string{"BIOL 6A"},
				Fragments: []string{"biol 6a", "biology"},
			},
			{
				Name:      "Intro Biology II",
				Codes:     []string{"BIOL 6B"},
				Fragments: []string{"biol 6b"},
			},
			{
				Name:      "Calculus I",
				Codes:     []string{"MATH 1A"},
				Fragments: []string{"math 1a", "calculus i", "calc 1"},
			},
		},
		MinGPA:   2.8,
		MinUnits: 60,
		MaxUnits: 70,
		Notes: []string{
			"Chemistry and biology sequences must include laboratory components.",
		},
		SourceURL: "https://admissions.ucsc.edu/transfer/requirements",
	},
	"Psychology": {
		Major: "Psychology",
		Courses: []RequirementSpec{
			{
				Name:      "Intro to Psychology",
				Codes:     []string{"PSYC 1"},
				Fragments: []string{"psyc 1", "psych 1", "psychology"},
			},
			{
				Name:      "Statistics",
				Codes:     []string{"MATH 10", "PSYC 15"},
				Fragments: []string{"math 10", "psyc 15", "statistics"},
			},
			{
				Name:      "Research Methods",
				Codes:     []string{"PSYC 7"},
				Fragments: []string{"psyc 7", "research methods"},
			},
		},
		MinGPA:   2.5,
		MinUnits: 60,
		MaxUnits: 70,
		Notes: []string{
			"Research Methods is recommended before transfer but may be completed after.",
		},
		SourceURL: "https://admissions.ucsc.edu/transfer/requirements",
	},
}

// RequirementsFor returns the articulation table for the major, defaulting
// to Computer Science when the major has no table of its own.
func RequirementsFor(major string) MajorRequirements {
	if mr, ok := catalog[major]; ok {
		return mr
	}
	return catalog[DefaultCatalogName]
}

// PromptText renders the table as plain text for the remote advisor prompt.
func (mr MajorRequirements) PromptText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Major preparation for %s:\n", mr.Major)
	for _, req := range mr.Courses {
		fmt.Fprintf(&b, "- %s (%s)\n", req.Name, strings.Join(req.Codes, ", "))
	}
	fmt.Fprintf(&b, "Minimum transfer GPA: %.1f\n", mr.MinGPA)
	fmt.Fprintf(&b, "Minimum transferable units: %.0f (maximum %.0f)\n", mr.MinUnits, mr.MaxUnits)
	for _, n := range mr.Notes {
		fmt.Fprintf(&b, "Note: %s\n", n)
	}
	return b.String()
}

// GeneralEdArea is one IGETC area, in catalog order.
type GeneralEdArea struct {
	Area string
	Name string
}

var GeneralEdAreas = []GeneralEdArea{
	{Area: "1A", Name: "English Composition"},
	{Area: "1B", Name: "Critical Thinking"},
	{Area: "2", Name: "Mathematical Concepts"},
	{Area: "3A", Name: "Arts"},
	{Area: "3B", Name: "Humanities"},
	{Area: "4", Name: "Social and Behavioral Sciences"},
	{Area: "5A", Name: "Physical Science"},
	{Area: "5B", Name: "Biological Science"},
	{Area: "5C", Name: "Laboratory Science"},
	{Area: "6A", Name: "Language Other Than English"},
}
