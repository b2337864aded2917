package verification_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/eligibility"
	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
	dummyadvisor "github.com/stepm01/cruzHacks/services/advisor/dummy"
	emailsvc "github.com/stepm01/cruzHacks/services/email"
	logsvc "github.com/stepm01/cruzHacks/services/logger"
	dummydoc "github.com/stepm01/cruzHacks/storage/document/dummy"
)

var testSess = core.Session{UID: "uid-1", Name: "Sam Student", Email: "sam@test.edu"}

func seedStudent(t *testing.T, repo *dummydoc.Store, campus string, courses ...student.Course) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.EnsureStudent(ctx, testSess)
	require.NoError(t, err)
	require.NoError(t, repo.MergeProfile(ctx, testSess.UID, map[string]interface{}{
		"major":    "Computer Science",
		"targetUC": campus,
	}))
	for _, c := range courses {
		require.NoError(t, repo.AppendCourse(ctx, testSess.UID, c))
	}
}

func sampleCourses() []student.Course {
	return []student.Course{
		{ID: "1", Code: "MATH 1A", Name: "Calculus I", Units: 5, Grade: "A", Term: "Fall 2023"},
		{ID: "2", Code: "CIS 22A", Name: "Intro to Programming", Units: 4.5, Grade: "B+", Term: "Fall 2023"},
	}
}

func newService(provider verification.Provider, repo *dummydoc.Store) *verification.Service {
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	return verification.NewService(provider, repo, emailsvc.NewConsoleServiceMock(), logger)
}

func TestService_Run_preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown student", func(t *testing.T) {
		repo := dummydoc.NewStore()
		_, err := newService(nil, repo).Run(ctx, testSess)
		assert.Equal(t, student.ErrNotFound, errors.Cause(err))
	})

	t.Run("no target campus", func(t *testing.T) {
		repo := dummydoc.NewStore()
		seedStudent(t, repo, "", sampleCourses()...)
		_, err := newService(nil, repo).Run(ctx, testSess)
		require.EqualError(t, errors.Cause(err), "select a target campus first")
	})

	t.Run("empty transcript", func(t *testing.T) {
		repo := dummydoc.NewStore()
		seedStudent(t, repo, "ucsc")
		_, err := newService(nil, repo).Run(ctx, testSess)
		require.EqualError(t, errors.Cause(err), "add courses to your transcript first")
	})
}

func TestService_Run_localEvaluation(t *testing.T) {
	ctx := context.Background()
	repo := dummydoc.NewStore()
	seedStudent(t, repo, "ucsc", sampleCourses()...)

	res, err := newService(nil, repo).Run(ctx, testSess)
	require.NoError(t, err)
	assert.Equal(t, verification.SourceLocal, res.Source)
	assert.Empty(t, res.Warning)
	require.NotEmpty(t, res.Verdict.VerifiedAt)

	want := eligibility.Evaluate(sampleCourses(), "Computer Science", "UC Santa Cruz")
	want.VerifiedAt = res.Verdict.VerifiedAt
	assert.Equal(t, want, res.Verdict)

	// persisted
	doc, err := repo.GetStudent(ctx, testSess.UID)
	require.NoError(t, err)
	require.NotNil(t, doc.Verdict)
	assert.Equal(t, res.Verdict.VerifiedAt, doc.Verdict.VerifiedAt)
}

func TestService_Run_advisor(t *testing.T) {
	ctx := context.Background()

	t.Run("advisor verdict wins", func(t *testing.T) {
		repo := dummydoc.NewStore()
		seedStudent(t, repo, "ucsc", sampleCourses()...)
		advisor := &dummyadvisor.Service{Verdict: student.Verdict{
			Status:  student.StatusConditional,
			Summary: student.Summary{GPA: "3.64", Major: "Computer Science", TargetCampus: "UC Santa Cruz"},
		}}

		res, err := newService(advisor, repo).Run(ctx, testSess)
		require.NoError(t, err)
		assert.Equal(t, verification.SourceAdvisor, res.Source)
		assert.Equal(t, 1, advisor.VerifyCalls)
		assert.Equal(t, "3.64", res.Verdict.Summary.GPA)
		assert.NotEmpty(t, res.Verdict.VerifiedAt)
	})

	t.Run("advisor failure falls back to local evaluation", func(t *testing.T) {
		repo := dummydoc.NewStore()
		seedStudent(t, repo, "ucsc", sampleCourses()...)
		advisor := &dummyadvisor.Service{VerifyErr: errors.New("advisor: HTTP 500")}

		res, err := newService(advisor, repo).Run(ctx, testSess)
		require.NoError(t, err)
		assert.Equal(t, verification.SourceLocal, res.Source)
		assert.Equal(t, "advisor: HTTP 500", res.Warning)
		assert.Equal(t, 1, advisor.VerifyCalls) // exactly one attempt

		want := eligibility.Evaluate(sampleCourses(), "Computer Science", "UC Santa Cruz")
		want.VerifiedAt = res.Verdict.VerifiedAt
		assert.Equal(t, want, res.Verdict)
	})

	t.Run("verdict persist failure does not fail the run", func(t *testing.T) {
		repo := dummydoc.NewStore()
		seedStudent(t, repo, "ucsc", sampleCourses()...)
		repo.Err = errors.New("store down")

		res, err := newService(nil, repo).Run(ctx, testSess)
		require.NoError(t, err)
		assert.Equal(t, verification.SourceLocal, res.Source)
		assert.NotEmpty(t, res.Verdict.VerifiedAt)
	})
}

func TestService_Run_sendsSummaryMail(t *testing.T) {
	ctx := context.Background()
	repo := dummydoc.NewStore()
	seedStudent(t, repo, "ucsc", sampleCourses()...)

	before := len(emailsvc.SentMessages)
	_, err := newService(nil, repo).Run(ctx, testSess)
	require.NoError(t, err)

	require.Len(t, emailsvc.SentMessages, before+1)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	require.Len(t, msg.To, 1)
	assert.Equal(t, testSess.Email, msg.To[0].Address)
	assert.Equal(t, "Your transfer verification results", msg.Subject)
	assert.Contains(t, msg.Body, "UC Santa Cruz")
}

func TestSteps(t *testing.T) {
	doc := student.StudentDoc{}
	steps := verification.Steps(doc)
	require.Len(t, steps, 4)
	for _, s := range steps {
		assert.False(t, s.Completed)
	}
	assert.Equal(t, 1, verification.NextStep(doc).ID)

	doc.Profile = student.Profile{Name: "Sam", Major: "Computer Science", CommunityCollege: "De Anza College"}
	assert.Equal(t, 2, verification.NextStep(doc).ID)

	doc.TargetCampus = "ucsc"
	assert.Equal(t, 3, verification.NextStep(doc).ID)

	doc.Transcript = sampleCourses()
	assert.Equal(t, 4, verification.NextStep(doc).ID)

	doc.Verdict = &student.Verdict{Status: student.StatusConditional}
	steps = verification.Steps(doc)
	for _, s := range steps {
		assert.True(t, s.Completed)
	}
	assert.Equal(t, 4, verification.NextStep(doc).ID)
}
