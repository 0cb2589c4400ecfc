package console

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GradingReviewer marks one student's written-answer attempt. Loading seeds
// every entry's mark to zero regardless of any mark already stored, so
// reopening a checked attempt starts the marking over.
type GradingReviewer struct {
	client    *Client
	studentID uint
	examID    uint
	attempt   *Attempt
	entries   []MarkEntry
}

// NewGradingReviewer loads the attempt and seeds zeroed mark entries for
// every submitted answer
func NewGradingReviewer(client *Client, studentID, examID uint) (*GradingReviewer, error) {
	attempt, err := client.GetAttempt(studentID, examID)
	if err != nil {
		return nil, err
	}

	entries := make([]MarkEntry, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		entries = append(entries, MarkEntry{
			Question: answer.Question,
			Answer:   answer.Answer,
			Mark:     0,
		})
	}

	return &GradingReviewer{
		client:    client,
		studentID: studentID,
		examID:    examID,
		attempt:   attempt,
		entries:   entries,
	}, nil
}

// Attempt returns the attempt being reviewed
func (r *GradingReviewer) Attempt() *Attempt {
	return r.attempt
}

// Entries returns the current mark entries in submission order
func (r *GradingReviewer) Entries() []MarkEntry {
	out := make([]MarkEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// SetMark records a mark for one question. Repeated calls overwrite; the
// last mark set is the one submitted.
func (r *GradingReviewer) SetMark(questionID uint, mark float64) error {
	if mark < 0 {
		return errors.New("mark cannot be negative")
	}
	for i := range r.entries {
		if r.entries[i].Question == questionID {
			r.entries[i].Mark = mark
			return nil
		}
	}
	return fmt.Errorf("question %d is not part of this attempt", questionID)
}

// Submit sends the complete mark array in a single call. Partial submission
// is not supported; unmarked questions go out with their zero mark.
func (r *GradingReviewer) Submit() error {
	return r.client.UpdateCQMarks(r.studentID, r.examID, r.entries)
}

// DecodeAnswer splits a raw answer into its typed-text or image-list form.
// Exactly one of the returns is populated.
func DecodeAnswer(raw json.RawMessage) (text string, images []string, err error) {
	if len(raw) == 0 {
		return "", nil, nil
	}
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil, nil
	}
	if err := json.Unmarshal(raw, &images); err == nil {
		return "", images, nil
	}
	return "", nil, errors.New("answer is neither text nor an image list")
}
