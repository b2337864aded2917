package document

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
)

const (
	// shallow-merges the given fields into the stored doc; last writer wins
	upsertDocSQL = `
		INSERT INTO student_doc (uid, doc)
		VALUES ($1, $2::jsonb)
		ON CONFLICT (uid) DO UPDATE
		SET doc = student_doc.doc || EXCLUDED.doc, updated_at = now()`

	getDocSQL        = `SELECT doc FROM student_doc WHERE uid = $1`
	lockDocSQL       = getDocSQL + ` FOR UPDATE`
	setTranscriptSQL = `
		UPDATE student_doc
		SET doc = jsonb_set(doc, '{transcript}', $2::jsonb), updated_at = now()
		WHERE uid = $1`
)

// Store implements student.Repository on Postgres JSONB.
type Store struct {
	db *sqlx.DB
}

var _ student.Repository = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureStudent(ctx context.Context, sess core.Session) (student.StudentDoc, error) {
	fields := map[string]interface{}{
		"uid":   sess.UID,
		"name":  sess.Name,
		"email": sess.Email,
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return student.StudentDoc{}, errors.Wrap(err, "encoding identity fields")
	}

	var raw []byte
	err = s.db.GetContext(ctx, &raw, upsertDocSQL+" RETURNING doc", sess.UID, string(data))
	if err != nil {
		return student.StudentDoc{}, errors.Wrap(err, "upserting student doc")
	}
	var doc student.StudentDoc
	if err = json.Unmarshal(raw, &doc); err != nil {
		return student.StudentDoc{}, errors.Wrap(err, "decoding student doc")
	}
	return doc, nil
}

func (s *Store) GetStudent(ctx context.Context, uid string) (student.StudentDoc, error) {
	var raw []byte
	if err := s.db.GetContext(ctx, &raw, getDocSQL, uid); err != nil {
		if err == sql.ErrNoRows {
			return student.StudentDoc{}, student.ErrNotFound
		}
		return student.StudentDoc{}, errors.Wrap(err, "getting student doc")
	}
	var doc student.StudentDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return student.StudentDoc{}, errors.Wrap(err, "decoding student doc")
	}
	return doc, nil
}

func (s *Store) MergeProfile(ctx context.Context, uid string, fields map[string]interface{}) error {
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["uid"] = uid

	data, err := json.Marshal(merged)
	if err != nil {
		return errors.Wrap(err, "encoding profile fields")
	}
	if _, err = s.db.ExecContext(ctx, upsertDocSQL, uid, string(data)); err != nil {
		return errors.Wrap(err, "merging profile fields")
	}
	return nil
}

func (s *Store) AppendCourse(ctx context.Context, uid string, course student.Course) error {
	return s.updateTranscript(ctx, uid, func(transcript []student.Course) []student.Course {
		for _, c := range transcript {
			if c.ID == course.ID {
				return transcript // already recorded
			}
		}
		return append(transcript, course)
	})
}

func (s *Store) RemoveCourse(ctx context.Context, uid, courseID string) error {
	return s.updateTranscript(ctx, uid, func(transcript []student.Course) []student.Course {
		kept := make([]student.Course, 0, len(transcript))
		for _, c := range transcript {
			if c.ID != courseID {
				kept = append(kept, c)
			}
		}
		return kept
	})
}

func (s *Store) SaveVerdict(ctx context.Context, uid string, verdict student.Verdict) error {
	data, err := json.Marshal(map[string]interface{}{
		"uid":          uid,
		"dataVerified": verdict,
	})
	if err != nil {
		return errors.Wrap(err, "encoding verdict")
	}
	if _, err = s.db.ExecContext(ctx, upsertDocSQL, uid, string(data)); err != nil {
		return errors.Wrap(err, "saving verdict")
	}
	return nil
}

// updateTranscript rewrites the transcript array under a row lock. The doc
// is created first when missing so a transcript write never depends on the
// profile having been saved.
func (s *Store) updateTranscript(ctx context.Context, uid string, mutate func([]student.Course) []student.Course) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	err = tx.GetContext(ctx, &raw, lockDocSQL, uid)
	if err == sql.ErrNoRows {
		seed, mErr := json.Marshal(map[string]interface{}{"uid": uid})
		if mErr != nil {
			return errors.Wrap(mErr, "encoding student doc")
		}
		if _, err = tx.ExecContext(ctx, upsertDocSQL, uid, string(seed)); err != nil {
			return errors.Wrap(err, "creating student doc")
		}
		if err = tx.GetContext(ctx, &raw, lockDocSQL, uid); err != nil {
			return errors.Wrap(err, "getting student doc")
		}
	} else if err != nil {
		return errors.Wrap(err, "getting student doc")
	}

	var doc student.StudentDoc
	if err = json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "decoding student doc")
	}

	transcript := mutate(doc.Transcript)
	if transcript == nil {
		transcript = []student.Course{}
	}
	data, err := json.Marshal(transcript)
	if err != nil {
		return errors.Wrap(err, "encoding transcript")
	}
	if _, err = tx.ExecContext(ctx, setTranscriptSQL, uid, string(data)); err != nil {
		return errors.Wrap(err, "updating transcript")
	}
	return errors.Wrap(tx.Commit(), "committing transcript update")
}
