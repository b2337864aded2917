// Package dummydoc is an in-memory student doc store used in tests and
// local development without Postgres.
package dummydoc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]student.StudentDoc

	// Err, when set, is returned by every mutation. Lets tests exercise the
	// log-and-continue persistence policy.
	Err error
}

var _ student.Repository = (*Store)(nil)

func NewStore() *Store {
	return &Store{docs: make(map[string]student.StudentDoc)}
}

func (s *Store) EnsureStudent(ctx context.Context, sess core.Session) (student.StudentDoc, error) {
	if s.Err != nil {
		return student.StudentDoc{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[sess.UID]
	if !ok {
		doc = student.StudentDoc{Profile: student.Profile{UID: sess.UID}}
	}
	doc.UID = sess.UID
	doc.Name = sess.Name
	doc.Email = sess.Email
	s.docs[sess.UID] = doc
	return clone(doc), nil
}

func (s *Store) GetStudent(ctx context.Context, uid string) (student.StudentDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uid]
	if !ok {
		return student.StudentDoc{}, student.ErrNotFound
	}
	return clone(doc), nil
}

func (s *Store) MergeProfile(ctx context.Context, uid string, fields map[string]interface{}) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uid]
	doc.UID = uid
	for k, v := range fields {
		val, _ := v.(string)
		switch k {
		case "name":
			doc.Name = val
		case "email":
			doc.Email = val
		case "major":
			doc.Major = val
		case "communityCollege":
			doc.CommunityCollege = val
		case "targetUC":
			doc.TargetCampus = val
		case "photoURL":
			doc.PhotoURL = val
		}
	}
	s.docs[uid] = doc
	return nil
}

func (s *Store) AppendCourse(ctx context.Context, uid string, course student.Course) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uid]
	doc.UID = uid
	for _, c := range doc.Transcript {
		if c.ID == course.ID {
			return nil
		}
	}
	doc.Transcript = append(doc.Transcript, course)
	s.docs[uid] = doc
	return nil
}

func (s *Store) RemoveCourse(ctx context.Context, uid, courseID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uid]
	kept := doc.Transcript[:0]
	for _, c := range doc.Transcript {
		if c.ID != courseID {
			kept = append(kept, c)
		}
	}
	doc.Transcript = kept
	s.docs[uid] = doc
	return nil
}

func (s *Store) SaveVerdict(ctx context.Context, uid string, verdict student.Verdict) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uid]
	doc.UID = uid
	doc.Verdict = &verdict
	s.docs[uid] = doc
	return nil
}

// clone deep-copies via JSON so callers never share slices with the store.
func clone(doc student.StudentDoc) student.StudentDoc {
	b, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var cp student.StudentDoc
	if err := json.Unmarshal(b, &cp); err != nil {
		return doc
	}
	return cp
}
