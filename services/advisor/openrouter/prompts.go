package openrouteradvisor

import (
	"fmt"
	"strings"

	"github.com/stepm01/cruzHacks/core/eligibility"
	"github.com/stepm01/cruzHacks/core/student"
)

func verifyPrompt(courses []student.Course, major, targetCampus string) string {
	lines := make([]string, 0, len(courses))
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("%s - %s (%g units, Grade: %s)", c.Code, c.Name, c.Units, c.Grade))
	}

	return fmt.Sprintf(`You are a UC transfer advisor. Analyze these courses for transfer to %s as a %s major.

STUDENT'S COURSES:
%s

MAJOR REQUIREMENTS FOR %s:
%s
IGETC AREAS TO ASSESS:
%s
IMPORTANT - INTELLIGENT MATCHING:
- Match courses flexibly! "Calculus 2" = "Calculus II" = "Calc II" = "MATH 1B" = "MATH 3B"
- "Intro Programming" = "Introduction to Programming" = "CIS 22A" = "CS 1A"
- Look at BOTH course code AND course name for matching!

Calculate GPA using: A=4.0, A-=3.7, B+=3.3, B=3.0, B-=2.7, C+=2.3, C=2.0, C-=1.7, D=1.0, F=0
Formula: Sum(grade_points * units) / total_units

Return ONLY this JSON structure (no markdown, no backticks, just raw JSON):
{
  "eligibility_status": "likely_eligible",
  "summary": { "gpa": "3.50", "total_units": 30, "major": "%s", "target_uc": "%s" },
  "major_requirements": {
    "completed": [{"name": "Calculus I", "codes": ["MATH 1A"], "matched_course": "MATH 1A - Calculus I"}],
    "missing": [{"name": "Linear Algebra", "codes": ["MATH 21", "MATH 6"]}]
  },
  "risks": [{"type": "Units", "severity": "high", "message": "Need 60 units minimum"}],
  "igetc_status": {
    "1A": {"name": "English Composition", "completed": true},
    "2": {"name": "Mathematical Concepts", "completed": true}
  },
  "notes": ["Keep up the good work"],
  "sources": {"ucsc_transfer": "%s", "assist_org": "%s"}
}`,
		targetCampus, major,
		strings.Join(lines, "\n"),
		strings.ToUpper(major),
		eligibility.RequirementsFor(major).PromptText(),
		generalEdText(),
		major, targetCampus,
		student.DefaultTransferSourceURL, student.DefaultAssistSourceURL,
	)
}

func generalEdText() string {
	areas := make([]string, 0, len(eligibility.GeneralEdAreas))
	for _, a := range eligibility.GeneralEdAreas {
		areas = append(areas, fmt.Sprintf("%s: %s", a.Area, a.Name))
	}
	return strings.Join(areas, "\n") + "\n"
}

func extractPrompt(text string) string {
	return "Extract courses from this transcript as JSON array. " +
		"Each course: {courseCode, courseName, units (number), grade, semester}. " +
		"Return ONLY JSON array:\n\n" + text
}
