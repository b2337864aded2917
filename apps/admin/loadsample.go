package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stepm01/cruzHacks/core/student"
)

// sampleTranscript is the demo transcript used for walkthroughs.
func sampleTranscript() []student.Course {
	return []student.Course{
		{Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A", Term: "Fall 2023"},
		{Code: "MATH 1B", Name: "Calculus II", Units: 5, Grade: "A-", Term: "Spring 2024"},
		{Code: "CIS 22A", Name: "Intro to Programming", Units: 4.5, Grade: "B+", Term: "Fall 2023"},
		{Code: "CIS 22B", Name: "Data Structures", Units: 4.5, Grade: "B", Term: "Spring 2024"},
		{Code: "EWRT 1A", Name: "English Composition", Units: 5, Grade: "A", Term: "Fall 2023"},
		{Code: "PHYS 4A", Name: "Physics - Mechanics", Units: 5, Grade: "B+", Term: "Fall 2024"},
	}
}

func (cli *commandLine) loadSample(uid string) error {
	ctx := context.Background()
	courses := sampleTranscript()
	for _, c := range courses {
		c.ID = uuid.New().String()
		if err := cli.repo.AppendCourse(ctx, uid, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(cli.out, "loaded %d sample courses for %s\n", len(courses), uid)
	return err
}
