package student_test

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
	dummyadvisor "github.com/stepm01/cruzHacks/services/advisor/dummy"
	logsvc "github.com/stepm01/cruzHacks/services/logger"
	dummydoc "github.com/stepm01/cruzHacks/storage/document/dummy"
)

var testSess = core.Session{UID: "uid-1", Name: "Sam Student", Email: "sam@test.edu"}

func setup() (*student.Service, *dummydoc.Store, *dummyadvisor.Service) {
	repo := dummydoc.NewStore()
	advisor := new(dummyadvisor.Service)
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	return student.NewService(repo, advisor, logger), repo, advisor
}

func TestService_EnsureStudent(t *testing.T) {
	svc, repo, _ := setup()
	ctx := context.Background()

	doc, err := svc.EnsureStudent(ctx, testSess)
	require.NoError(t, err)
	assert.Equal(t, testSess.UID, doc.UID)
	assert.Equal(t, testSess.Name, doc.Name)
	assert.Equal(t, testSess.Email, doc.Email)
	assert.Empty(t, doc.Transcript)
	assert.Nil(t, doc.Verdict)

	// a later sign-in keeps self-reported fields and refreshes identity
	require.NoError(t, repo.MergeProfile(ctx, testSess.UID, map[string]interface{}{"major": "Biology"}))
	doc, err = svc.EnsureStudent(ctx, core.Session{UID: testSess.UID, Name: "Samantha Student", Email: testSess.Email})
	require.NoError(t, err)
	assert.Equal(t, "Samantha Student", doc.Name)
	assert.Equal(t, "Biology", doc.Major)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()
	_, err := svc.EnsureStudent(ctx, testSess)
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(ctx, testSess, student.ProfileUpdate{
		Major:            "Computer Science",
		CommunityCollege: "De Anza College",
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", profile.Major)
	assert.Equal(t, "De Anza College", profile.CommunityCollege)
	assert.Equal(t, testSess.Name, profile.Name) // untouched

	// empty fields never clear stored values
	profile, err = svc.UpdateProfile(ctx, testSess, student.ProfileUpdate{Name: "Sam S."})
	require.NoError(t, err)
	assert.Equal(t, "Sam S.", profile.Name)
	assert.Equal(t, "Computer Science", profile.Major)
}

func TestService_SelectCampus(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()
	_, err := svc.EnsureStudent(ctx, testSess)
	require.NoError(t, err)

	require.NoError(t, svc.SelectCampus(ctx, testSess, "ucsc"))
	doc, err := svc.Get(ctx, testSess)
	require.NoError(t, err)
	assert.Equal(t, "ucsc", doc.TargetCampus)

	err = svc.SelectCampus(ctx, testSess, "stanford")
	require.Error(t, err)
	assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
}

func TestService_AddCourse(t *testing.T) {
	svc, repo, _ := setup()
	ctx := context.Background()
	_, err := svc.EnsureStudent(ctx, testSess)
	require.NoError(t, err)

	course, err := svc.AddCourse(ctx, testSess, student.NewCourse{
		Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.Equal(t, student.DefaultTerm, course.Term)

	transcript, err := svc.Transcript(ctx, testSess)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, course, transcript[0])

	t.Run("persist failure still returns the course", func(t *testing.T) {
		repo.Err = errors.New("store down")
		defer func() { repo.Err = nil }()

		course, err := svc.AddCourse(ctx, testSess, student.NewCourse{
			Code: "MATH 1B", Name: "Calculus II", Units: 5, Grade: "A-", Term: "Spring 2024",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, course.ID)

		transcript, err := svc.Transcript(ctx, testSess)
		require.NoError(t, err)
		assert.Len(t, transcript, 1) // not stored
	})
}

func TestService_RemoveCourse(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()
	_, err := svc.EnsureStudent(ctx, testSess)
	require.NoError(t, err)

	course, err := svc.AddCourse(ctx, testSess, student.NewCourse{
		Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCourse(ctx, testSess, course.ID))
	transcript, err := svc.Transcript(ctx, testSess)
	require.NoError(t, err)
	assert.Empty(t, transcript)

	// removing an unknown ID is a no-op
	require.NoError(t, svc.RemoveCourse(ctx, testSess, "nope"))
}

func TestService_UploadTranscript(t *testing.T) {
	ctx := context.Background()
	longText := strings.Repeat("MATH 1A Calculus I 5 units A\n", 3)

	t.Run("short text is rejected without an advisor call", func(t *testing.T) {
		svc, _, advisor := setup()
		_, err := svc.UploadTranscript(ctx, testSess, "too short")
		require.EqualError(t, errors.Cause(err), "file too short")
		assert.Zero(t, advisor.ExtractCalls)
	})

	t.Run("extraction failure surfaces", func(t *testing.T) {
		svc, _, advisor := setup()
		advisor.ExtractErr = errors.New("advisor down")
		_, err := svc.UploadTranscript(ctx, testSess, longText)
		require.Error(t, err)
		assert.Equal(t, 1, advisor.ExtractCalls)
	})

	t.Run("no courses found", func(t *testing.T) {
		svc, _, advisor := setup()
		advisor.Courses = []student.Course{}
		_, err := svc.UploadTranscript(ctx, testSess, longText)
		require.EqualError(t, errors.Cause(err), "no courses found in file")
	})

	t.Run("extracted courses get IDs and defaults", func(t *testing.T) {
		svc, _, advisor := setup()
		_, err := svc.EnsureStudent(ctx, testSess)
		require.NoError(t, err)
		advisor.Courses = []student.Course{
			{Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A", Term: "Fall 2023"},
			{Code: "EWRT 1A", Name: "English Composition"}, // all optional fields missing
		}

		courses, err := svc.UploadTranscript(ctx, testSess, longText)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.NotEmpty(t, courses[0].ID)
		assert.NotEmpty(t, courses[1].ID)
		assert.NotEqual(t, courses[0].ID, courses[1].ID)
		assert.Equal(t, float64(5), courses[0].Units)
		assert.Equal(t, float64(student.DefaultUnits), courses[1].Units)
		assert.Equal(t, student.DefaultGrade, courses[1].Grade)
		assert.Equal(t, student.DefaultTerm, courses[1].Term)

		transcript, err := svc.Transcript(ctx, testSess)
		require.NoError(t, err)
		assert.Len(t, transcript, 2)
	})
}

func TestNewCourse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		course  student.NewCourse
		wantErr bool
	}{
		{name: "valid", course: student.NewCourse{Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A"}},
		{name: "valid pass grade", course: student.NewCourse{Code: "KIN 1", Name: "Soccer", Units: 1, Grade: "P"}},
		{name: "missing code", course: student.NewCourse{Name: "Calculus I", Units: 5, Grade: "A"}, wantErr: true},
		{name: "missing name", course: student.NewCourse{Code: "MATH 1A", Units: 5, Grade: "A"}, wantErr: true},
		{name: "zero units", course: student.NewCourse{Code: "MATH 1A", Name: "Calculus I", Grade: "A"}, wantErr: true},
		{name: "too many units", course: student.NewCourse{Code: "MATH 1A", Name: "Calculus I", Units: 11, Grade: "A"}, wantErr: true},
		{name: "unknown grade", course: student.NewCourse{Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "E"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.course.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
