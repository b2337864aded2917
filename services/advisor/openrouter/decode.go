package openrouteradvisor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core/student"
)

var errNoJSON = errors.New("no JSON found in advisor response")

// stripFences drops the markdown code fences models sometimes wrap around
// their output despite instructions.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// firstJSON returns the widest substring delimited by open/close, which is
// where the JSON lives when the model pads its answer with prose.
func firstJSON(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// flexString tolerates the model returning a number where a string is
// expected, and vice versa.
type flexString string

func (fs *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*fs = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*fs = flexString(str)
		return nil
	}
	*fs = flexString(s)
	return nil
}

// flexNumber tolerates quoted numbers; junk decodes to zero.
type flexNumber float64

func (fn *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*fn = 0
		return nil
	}
	*fn = flexNumber(f)
	return nil
}

type (
	summaryPayload struct {
		GPA        flexString `json:"gpa"`
		TotalUnits flexNumber `json:"total_units"`
		Major      flexString `json:"major"`
		TargetUC   flexString `json:"target_uc"`
	}

	verdictPayload struct {
		Status       flexString                    `json:"eligibility_status"`
		Summary      *summaryPayload               `json:"summary"`
		Requirements *student.RequirementResults   `json:"major_requirements"`
		Risks        []student.Risk                `json:"risks"`
		GeneralEd    map[string]student.AreaStatus `json:"igetc_status"`
		Notes        []string                      `json:"notes"`
		Sources      *student.Sources              `json:"sources"`
	}

	coursePayload struct {
		Code  flexString `json:"courseCode"`
		Name  flexString `json:"courseName"`
		Units flexNumber `json:"units"`
		Grade flexString `json:"grade"`
		Term  flexString `json:"semester"`
	}
)

// decodeVerdict turns raw model output into a Verdict, defaulting every
// field the model omitted. Only the complete absence of parsable JSON is an
// error.
func decodeVerdict(content, major, targetCampus string) (student.Verdict, error) {
	raw, ok := firstJSON(stripFences(content), '{', '}')
	if !ok {
		return student.Verdict{}, errNoJSON
	}
	var p verdictPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return student.Verdict{}, errors.Wrap(err, "parsing advisor JSON")
	}

	v := student.Verdict{
		Status: student.Status(p.Status),
		Summary: student.Summary{
			GPA:          "0.00",
			Major:        major,
			TargetCampus: targetCampus,
		},
		Requirements: student.RequirementResults{
			Completed: []student.CompletedRequirement{},
			Missing:   []student.MissingRequirement{},
		},
		Risks:     []student.Risk{},
		GeneralEd: map[string]student.AreaStatus{},
		Notes:     []string{},
		Sources:   student.DefaultSources(),
	}
	if !v.Status.Valid() {
		v.Status = student.StatusConditional
	}
	if p.Summary != nil {
		if p.Summary.GPA != "" {
			v.Summary.GPA = string(p.Summary.GPA)
		}
		v.Summary.TotalUnits = float64(p.Summary.TotalUnits)
		if p.Summary.Major != "" {
			v.Summary.Major = string(p.Summary.Major)
		}
		if p.Summary.TargetUC != "" {
			v.Summary.TargetCampus = string(p.Summary.TargetUC)
		}
	}
	if p.Requirements != nil {
		if p.Requirements.Completed != nil {
			v.Requirements.Completed = p.Requirements.Completed
		}
		if p.Requirements.Missing != nil {
			v.Requirements.Missing = p.Requirements.Missing
		}
	}
	if p.Risks != nil {
		v.Risks = p.Risks
	}
	if p.GeneralEd != nil {
		v.GeneralEd = p.GeneralEd
	}
	if p.Notes != nil {
		v.Notes = p.Notes
	}
	if p.Sources != nil {
		v.Sources = *p.Sources
	}
	return v, nil
}

// decodeCourses turns raw model output into course entries, verbatim; field
// defaults are applied where the courses get recorded.
func decodeCourses(content string) ([]student.Course, error) {
	raw, ok := firstJSON(stripFences(content), '[', ']')
	if !ok {
		return nil, errNoJSON
	}
	var payload []coursePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.Wrap(err, "parsing advisor JSON")
	}
	courses := make([]student.Course, 0, len(payload))
	for _, p := range payload {
		courses = append(courses, student.Course{
			Code:  string(p.Code),
			Name:  string(p.Name),
			Units: float64(p.Units),
			Grade: string(p.Grade),
			Term:  string(p.Term),
		})
	}
	return courses, nil
}
