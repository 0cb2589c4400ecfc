package console

import (
	"errors"
	"time"
)

// ErrEmptySelection is returned by Save when no question is selected
var ErrEmptySelection = errors.New("selection is empty")

// AuthoringSession edits the question list of one exam. It loads the exam,
// seeds the selection from the saved question ids and saves by replacing the
// full list server-side.
type AuthoringSession struct {
	client    *Client
	examID    uint
	exam      *Exam
	selection *SelectionSet
}

// NewAuthoringSession fetches the exam and seeds the selection from its
// stored question list
func NewAuthoringSession(client *Client, examID uint) (*AuthoringSession, error) {
	exam, err := client.GetExam(examID)
	if err != nil {
		return nil, err
	}

	selection := NewSelectionSet()
	selection.Initialize(exam.Questions)

	return &AuthoringSession{
		client:    client,
		examID:    examID,
		exam:      exam,
		selection: selection,
	}, nil
}

// Exam returns the exam as last fetched from the server
func (s *AuthoringSession) Exam() *Exam {
	return s.exam
}

// Quota returns the maximum number of selectable questions
func (s *AuthoringSession) Quota() int {
	return s.exam.TotalQuestions
}

// Add selects a question. Adding past the exam's question quota returns
// ErrQuotaExceeded; re-adding a selected question succeeds and changes
// nothing.
func (s *AuthoringSession) Add(questionID uint) error {
	return s.selection.Add(questionID, s.exam.TotalQuestions)
}

// Remove deselects a question if present
func (s *AuthoringSession) Remove(questionID uint) {
	s.selection.Remove(questionID)
}

// Size returns the number of selected questions
func (s *AuthoringSession) Size() int {
	return s.selection.Size()
}

// Contains reports whether a question is selected
func (s *AuthoringSession) Contains(questionID uint) bool {
	return s.selection.Contains(questionID)
}

// Selected returns the selected question ids in insertion order
func (s *AuthoringSession) Selected() []uint {
	return s.selection.IDs()
}

// Save replaces the exam's question list with the current selection. Saving
// an empty selection is rejected locally. After a successful save the exam
// is re-fetched and the selection re-seeded from the server's state.
func (s *AuthoringSession) Save() error {
	if s.selection.Size() == 0 {
		return ErrEmptySelection
	}

	update := examToUpdate(s.exam)
	update.Questions = s.selection.IDs()

	if _, err := s.client.UpdateExam(s.examID, update); err != nil {
		return err
	}

	exam, err := s.client.GetExam(s.examID)
	if err != nil {
		return err
	}
	s.exam = exam
	s.selection.Initialize(exam.Questions)
	return nil
}

// examToUpdate spreads the exam's current fields into a full-replace payload
func examToUpdate(exam *Exam) ExamUpdate {
	update := ExamUpdate{
		Title:           exam.Title,
		Description:     exam.Description,
		QuestionType:    exam.QuestionType,
		TotalQuestions:  exam.TotalQuestions,
		TotalMarks:      exam.TotalMarks,
		PassingMarks:    exam.PassingMarks,
		PositiveMarks:   exam.PositiveMarks,
		NegativeMarks:   exam.NegativeMarks,
		DurationHours:   exam.DurationHours,
		DurationMinutes: exam.DurationMinutes,
		DurationSeconds: exam.DurationSeconds,
		Questions:       exam.Questions,
		ExamStatus:      exam.ExamStatus,
	}
	if exam.Validity != nil {
		update.Validity = exam.Validity.Format(time.RFC3339)
	}
	return update
}
