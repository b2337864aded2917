package student

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core"
)

// MinUploadLen is the minimum length of transcript text worth extracting.
const MinUploadLen = 20

// Service owns the student doc: profile, transcript and saved results.
// Persistence failures on mutations are logged and swallowed so a flaky
// store never blocks the flow; reads surface their errors.
type Service struct {
	repo      Repository
	extractor Extractor
	logger    core.Logger
}

func NewService(repo Repository, extractor Extractor, logger core.Logger) *Service {
	return &Service{repo: repo, extractor: extractor, logger: logger}
}

// EnsureStudent bootstraps the doc on sign-in and returns its current state.
func (svc *Service) EnsureStudent(ctx context.Context, sess core.Session) (StudentDoc, error) {
	doc, err := svc.repo.EnsureStudent(ctx, sess)
	if err != nil {
		return StudentDoc{}, errors.Wrap(err, "ensuring student doc")
	}
	return doc, nil
}

func (svc *Service) Get(ctx context.Context, sess core.Session) (StudentDoc, error) {
	return svc.repo.GetStudent(ctx, sess.UID)
}

// UpdateProfile merges the non-empty fields into the stored profile and
// returns the profile as currently stored.
func (svc *Service) UpdateProfile(ctx context.Context, sess core.Session, up ProfileUpdate) (Profile, error) {
	fields := make(map[string]interface{})
	if up.Name != "" {
		fields["name"] = up.Name
	}
	if up.Major != "" {
		fields["major"] = up.Major
	}
	if up.CommunityCollege != "" {
		fields["communityCollege"] = up.CommunityCollege
	}
	if len(fields) > 0 {
		if err := svc.repo.MergeProfile(ctx, sess.UID, fields); err != nil {
			svc.logger.Error("merging profile fields", err)
		}
	}
	doc, err := svc.repo.GetStudent(ctx, sess.UID)
	if err != nil {
		return Profile{}, err
	}
	return doc.Profile, nil
}

func (svc *Service) SelectCampus(ctx context.Context, sess core.Session, campusID string) error {
	if _, ok := CampusByID(campusID); !ok {
		return core.NewValidationError(errors.New("unknown campus"))
	}
	if err := svc.repo.MergeProfile(ctx, sess.UID, map[string]interface{}{"targetUC": campusID}); err != nil {
		svc.logger.Error("saving target campus", err)
	}
	return nil
}

func (svc *Service) Transcript(ctx context.Context, sess core.Session) ([]Course, error) {
	doc, err := svc.repo.GetStudent(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	if doc.Transcript == nil {
		return []Course{}, nil
	}
	return doc.Transcript, nil
}

// AddCourse records one transcript entry. The course is returned with its
// assigned ID even when persisting it failed.
func (svc *Service) AddCourse(ctx context.Context, sess core.Session, nc NewCourse) (Course, error) {
	course := Course{
		ID:    uuid.New().String(),
		Code:  nc.Code,
		Name:  nc.Name,
		Units: nc.Units,
		Grade: nc.Grade,
		Term:  nc.Term,
	}
	if course.Term == "" {
		course.Term = DefaultTerm
	}
	if err := svc.repo.AppendCourse(ctx, sess.UID, course); err != nil {
		svc.logger.Error("appending course", err)
	}
	return course, nil
}

func (svc *Service) RemoveCourse(ctx context.Context, sess core.Session, courseID string) error {
	if err := svc.repo.RemoveCourse(ctx, sess.UID, courseID); err != nil {
		svc.logger.Error("removing course", err)
	}
	return nil
}

// UploadTranscript extracts courses from raw transcript text and records
// them. Extraction failures surface; the caller keeps whatever was already
// on the transcript.
func (svc *Service) UploadTranscript(ctx context.Context, sess core.Session, text string) ([]Course, error) {
	if len(text) < MinUploadLen {
		return nil, core.NewValidationError(errors.New("file too short"))
	}
	extracted, err := svc.extractor.ExtractCourses(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "extracting courses")
	}
	if len(extracted) == 0 {
		return nil, core.NewValidationError(errors.New("no courses found in file"))
	}

	courses := make([]Course, 0, len(extracted))
	for _, c := range extracted {
		c.ID = uuid.New().String()
		if c.Units <= 0 {
			c.Units = DefaultUnits
		}
		if !ValidGrade(c.Grade) {
			c.Grade = DefaultGrade
		}
		if c.Term == "" {
			c.Term = DefaultTerm
		}
		if err := svc.repo.AppendCourse(ctx, sess.UID, c); err != nil {
			svc.logger.Error("appending extracted course", err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// SavedVerdict returns the last verification outcome, if any.
func (svc *Service) SavedVerdict(ctx context.Context, sess core.Session) (*Verdict, error) {
	doc, err := svc.repo.GetStudent(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	return doc.Verdict, nil
}
