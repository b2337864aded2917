package eligibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stepm01/cruzHacks/core/student"
)

// gradePoints maps letter grades to points on the 4.0 scale. "P" carries no
// points but its units still count toward the unit total, which drags the
// GPA down; the tradeoff is accepted until pass/no-pass units are excluded
// from the divisor.
var gradePoints = map[string]float64{
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D":  1.0,
	"F":  0,
	"P":  0,
}

// Aggregate computes the GPA (as a 2-decimal string) and total units over
// the transcript. Unknown grades contribute zero points.
func Aggregate(courses []student.Course) (gpa string, totalUnits float64) {
	var points float64
	for _, c := range courses {
		totalUnits += c.Units
		points += gradePoints[c.Grade] * c.Units
	}
	if totalUnits == 0 {
		return "0.00", 0
	}
	return strconv.FormatFloat(points/totalUnits, 'f', 2, 64), totalUnits
}

// MatchRequirements checks the transcript against the major's articulation
// table. Each requirement lands in exactly one bucket; result order follows
// the table.
func MatchRequirements(courses []student.Course, major string) student.RequirementResults {
	table := RequirementsFor(major)
	res := student.RequirementResults{
		Completed: make([]student.CompletedRequirement, 0, len(table.Courses)),
		Missing:   make([]student.MissingRequirement, 0),
	}
	for _, req := range table.Courses {
		if course, ok := matchCourse(req, courses); ok {
			res.Completed = append(res.Completed, student.CompletedRequirement{
				Name:          req.Name,
				Codes:         req.Codes,
				MatchedCourse: course.Code + " - " + course.Name,
			})
		} else {
			res.Missing = append(res.Missing, student.MissingRequirement{
				Name:  req.Name,
				Codes: req.Codes,
			})
		}
	}
	return res
}

func matchCourse(req RequirementSpec, courses []student.Course) (student.Course, bool) {
	for _, c := range courses {
		code := strings.ToLower(c.Code)
		name := strings.ToLower(c.Name)
		for _, frag := range req.Fragments {
			if strings.Contains(code, frag) || strings.Contains(name, frag) {
				return c, true
			}
		}
	}
	return student.Course{}, false
}

// Classify derives the risk list and overall status from the rounded GPA,
// the unit total and the number of missing requirements. Using the rounded
// GPA keeps the status consistent with the number the student sees.
func Classify(gpa string, totalUnits float64, missing int) ([]student.Risk, student.Status) {
	gpaVal, _ := strconv.ParseFloat(gpa, 64)

	risks := make([]student.Risk, 0, 3)
	if gpaVal < MinTransferGPA {
		risks = append(risks, student.Risk{
			Category: "GPA",
			Severity: student.SeverityHigh,
			Message:  fmt.Sprintf("GPA %s is below the %.1f minimum required for transfer", gpa, MinTransferGPA),
		})
	}
	if totalUnits < MinTransferUnits {
		risks = append(risks, student.Risk{
			Category: "Units",
			Severity: student.SeverityHigh,
			Message:  fmt.Sprintf("%s units completed; at least %d are required to transfer", formatUnits(totalUnits), MinTransferUnits),
		})
	}
	if missing > 0 {
		risks = append(risks, student.Risk{
			Category: "Major Prep",
			Severity: student.SeverityHigh,
			Message:  fmt.Sprintf("%d required major preparation course(s) still missing", missing),
		})
	}

	var status student.Status
	switch {
	case missing == 0 && gpaVal >= MinTransferGPA && totalUnits >= MinTransferUnits:
		status = student.StatusLikelyEligible
	case gpaVal >= ConditionalGPA && totalUnits >= MinTransferUnits:
		status = student.StatusConditional
	default:
		status = student.StatusNotYetEligible
	}
	return risks, status
}

func formatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}

// Evaluate runs the whole local pipeline: aggregate, match, classify. It is
// deterministic and never fails, which makes it the fallback when the remote
// advisor is unreachable. The general-ed map is left empty; only the remote
// advisor can judge IGETC areas.
func Evaluate(courses []student.Course, major, targetCampus string) student.Verdict {
	gpa, totalUnits := Aggregate(courses)
	reqs := MatchRequirements(courses, major)
	risks, status := Classify(gpa, totalUnits, len(reqs.Missing))
	table := RequirementsFor(major)

	notes := make([]string, len(table.Notes))
	copy(notes, table.Notes)

	return student.Verdict{
		Status: status,
		Summary: student.Summary{
			GPA:          gpa,
			TotalUnits:   totalUnits,
			Major:        major,
			TargetCampus: targetCampus,
		},
		Requirements: reqs,
		Risks:        risks,
		GeneralEd:    map[string]student.AreaStatus{},
		Notes:        notes,
		Sources:      student.DefaultSources(),
	}
}
