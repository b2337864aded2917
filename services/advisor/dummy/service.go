// Package dummyadvisor is a configurable advisor double for tests.
package dummyadvisor

import (
	"context"

	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
)

type Service struct {
	Verdict    student.Verdict
	Courses    []student.Course
	VerifyErr  error
	ExtractErr error

	VerifyCalls  int
	ExtractCalls int
}

var (
	_ verification.Provider = (*Service)(nil)
	_ student.Extractor     = (*Service)(nil)
)

func (svc *Service) Verify(ctx context.Context, courses []student.Course, major, targetCampus string) (student.Verdict, error) {
	svc.VerifyCalls++
	if svc.VerifyErr != nil {
		return student.Verdict{}, svc.VerifyErr
	}
	return svc.Verdict, nil
}

func (svc *Service) ExtractCourses(ctx context.Context, text string) ([]student.Course, error) {
	svc.ExtractCalls++
	if svc.ExtractErr != nil {
		return nil, svc.ExtractErr
	}
	return svc.Courses, nil
}
