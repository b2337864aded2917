package verification

import "github.com/stepm01/cruzHacks/core/student"

// Step is one stage of the transfer-check flow. Completion is derived from
// the stored doc, never tracked separately, so a fresh sign-in lands the
// student on the first unfinished step.
type Step struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// Steps derives the flow state from the student doc.
func Steps(doc student.StudentDoc) []Step {
	return []Step{
		{ID: 1, Label: "Complete your profile", Completed: doc.Complete()},
		{ID: 2, Label: "Choose your UC", Completed: doc.TargetCampus != ""},
		{ID: 3, Label: "Build your transcript", Completed: len(doc.Transcript) > 0},
		{ID: 4, Label: "Verify your eligibility", Completed: doc.Verdict != nil},
	}
}

// NextStep returns the first unfinished step, or the last step when all are
// done.
func NextStep(doc student.StudentDoc) Step {
	steps := Steps(doc)
	for _, s := range steps {
		if !s.Completed {
			return s
		}
	}
	return steps[len(steps)-1]
}
