package verification

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/eligibility"
	"github.com/stepm01/cruzHacks/core/student"
)

// Provider produces a verdict from a transcript, typically by consulting a
// remote advisor. Any error makes the caller fall back to the local
// evaluator; providers should not retry internally.
type Provider interface {
	Verify(ctx context.Context, courses []student.Course, major, targetCampus string) (student.Verdict, error)
}

// Sources identify which path produced a verdict.
const (
	SourceAdvisor = "advisor"
	SourceLocal   = "local"
)

// Result is a verification outcome plus how it was obtained. Warning is set
// when the advisor was tried and failed.
type Result struct {
	Verdict student.Verdict `json:"verdict"`
	Source  string          `json:"source"`
	Warning string          `json:"warning,omitempty"`
}

// Service runs verifications: one advisor attempt at most, local evaluation
// otherwise, then persists and notifies. A nil provider means the deployment
// runs on local evaluation only.
type Service struct {
	provider Provider
	repo     student.Repository
	mailSvc  core.EmailService
	logger   core.Logger
}

func NewService(provider Provider, repo student.Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{provider: provider, repo: repo, mailSvc: mailSvc, logger: logger}
}

// Run verifies the student's transcript. Exactly one advisor attempt is
// made; on any provider error the local evaluator takes over, so Run only
// fails when the student doc cannot be read or the flow preconditions are
// not met.
func (svc *Service) Run(ctx context.Context, sess core.Session) (Result, error) {
	doc, err := svc.repo.GetStudent(ctx, sess.UID)
	if err != nil {
		return Result{}, errors.Wrap(err, "loading student doc")
	}
	if doc.TargetCampus == "" {
		return Result{}, core.NewValidationError(errors.New("select a target campus first"))
	}
	if len(doc.Transcript) == 0 {
		return Result{}, core.NewValidationError(errors.New("add courses to your transcript first"))
	}

	campus := student.CampusName(doc.TargetCampus)
	res := Result{Source: SourceLocal}
	if svc.provider != nil {
		verdict, vErr := svc.provider.Verify(ctx, doc.Transcript, doc.Major, campus)
		if vErr != nil {
			svc.logger.Warn("advisor verification failed, using local evaluation", vErr)
			res.Warning = vErr.Error()
		} else {
			res.Verdict = verdict
			res.Source = SourceAdvisor
		}
	}
	if res.Source == SourceLocal {
		res.Verdict = eligibility.Evaluate(doc.Transcript, doc.Major, campus)
	}
	res.Verdict.VerifiedAt = time.Now().UTC().Format(time.RFC3339)

	if err := svc.repo.SaveVerdict(ctx, sess.UID, res.Verdict); err != nil {
		svc.logger.Error("saving verdict", err, sess)
	}
	svc.sendSummaryMail(sess, res.Verdict)
	return res, nil
}

func (svc *Service) sendSummaryMail(sess core.Session, verdict student.Verdict) {
	if sess.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour transfer verification for %s (%s) is done.\n\n"+
			"Status: %s\nGPA: %s\nUnits: %s\nMajor prep still missing: %d\n\n"+
			"Sign in to see the full breakdown.\n",
		sess.Name, verdict.Summary.TargetCampus, verdict.Summary.Major,
		verdict.Status, verdict.Summary.GPA, formatUnits(verdict.Summary.TotalUnits),
		len(verdict.Requirements.Missing),
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: sess.Name, Address: sess.Email}},
		Subject: "Your transfer verification results",
		Body:    body,
	})
}

func formatUnits(units float64) string {
	return fmt.Sprintf("%g", units)
}
