package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core"
)

var ErrNotFound = errors.New("student not found")

// Grades lists the letter grades accepted on a transcript entry, in
// descending order of points. "P" (pass) carries no grade points.
var Grades = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D", "F", "P"}

func ValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// Defaults applied to extracted courses when the source text omits a field.
const (
	DefaultUnits = 3
	DefaultGrade = "B"
	DefaultTerm  = "Fall 2024"
)

// Course is a single transcript entry. The JSON field names are the wire
// format shared with the frontend and the stored document.
type Course struct {
	ID    string  `json:"id"`
	Code  string  `json:"courseCode"`
	Name  string  `json:"courseName"`
	Units float64 `json:"units"`
	Grade string  `json:"grade"`
	Term  string  `json:"semester"`
}

// Profile holds the student's identity and transfer intentions. UID, Name
// and Email come from the identity provider; the rest is self-reported.
type Profile struct {
	UID              string `json:"uid"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Major            string `json:"major,omitempty"`
	CommunityCollege string `json:"communityCollege,omitempty"`
	TargetCampus     string `json:"targetUC,omitempty"`
	PhotoURL         string `json:"photoURL,omitempty"`
}

// Complete reports whether the profile step of the flow is done.
func (p Profile) Complete() bool {
	return p.Name != "" && p.Major != "" && p.CommunityCollege != ""
}

// StudentDoc is the full document persisted per student, one doc per UID.
type StudentDoc struct {
	Profile
	Transcript []Course `json:"transcript,omitempty"`
	Verdict    *Verdict `json:"dataVerified,omitempty"`
}

// Eligibility statuses, from strongest to weakest.
type Status string

const (
	StatusLikelyEligible Status = "likely_eligible"
	StatusConditional    Status = "conditional"
	StatusNotYetEligible Status = "not_yet_eligible"
)

func (s Status) Valid() bool {
	switch s {
	case StatusLikelyEligible, StatusConditional, StatusNotYetEligible:
		return true
	}
	return false
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Summary aggregates the transcript. GPA is kept as a 2-decimal string so
// stored and displayed values never disagree on rounding.
type Summary struct {
	GPA          string  `json:"gpa"`
	TotalUnits   float64 `json:"total_units"`
	Major        string  `json:"major"`
	TargetCampus string  `json:"target_uc"`
}

type CompletedRequirement struct {
	Name          string   `json:"name"`
	Codes         []string `json:"codes"`
	MatchedCourse string   `json:"matched_course"`
}

type MissingRequirement struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

type RequirementResults struct {
	Completed []CompletedRequirement `json:"completed"`
	Missing   []MissingRequirement   `json:"missing"`
}

type Risk struct {
	Category string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// AreaStatus is one general-education (IGETC) area in a verdict.
type AreaStatus struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Sources struct {
	Transfer string `json:"ucsc_transfer"`
	Assist   string `json:"assist_org"`
}

const (
	DefaultTransferSourceURL = "https://admissions.ucsc.edu/transfer/requirements"
	DefaultAssistSourceURL   = "https://assist.org"
)

func DefaultSources() Sources {
	return Sources{Transfer: DefaultTransferSourceURL, Assist: DefaultAssistSourceURL}
}

// Verdict is the outcome of a verification run, stored under the student
// doc's dataVerified key.
type Verdict struct {
	Status       Status                `json:"eligibility_status"`
	Summary      Summary               `json:"summary"`
	Requirements RequirementResults    `json:"major_requirements"`
	Risks        []Risk                `json:"risks"`
	GeneralEd    map[string]AreaStatus `json:"igetc_status"`
	Notes        []string              `json:"notes"`
	Sources      Sources               `json:"sources"`
	VerifiedAt   string                `json:"verifiedAt,omitempty"`
}

// Repository is the document-store contract for student docs. Implementations
// return ErrNotFound when no doc exists for the UID.
type Repository interface {
	// EnsureStudent creates the doc for the session on first sign-in and
	// refreshes the identity fields on later ones. Returns the current doc.
	EnsureStudent(ctx context.Context, sess core.Session) (StudentDoc, error)
	GetStudent(ctx context.Context, uid string) (StudentDoc, error)
	// MergeProfile shallow-merges the given fields into the doc; fields not
	// present in the map are left untouched.
	MergeProfile(ctx context.Context, uid string, fields map[string]interface{}) error
	AppendCourse(ctx context.Context, uid string, course Course) error
	RemoveCourse(ctx context.Context, uid, courseID string) error
	SaveVerdict(ctx context.Context, uid string, verdict Verdict) error
}

// Extractor pulls course entries out of raw transcript text. Extracted
// courses have no IDs; identity is assigned when they are recorded.
type Extractor interface {
	ExtractCourses(ctx context.Context, text string) ([]Course, error)
}
