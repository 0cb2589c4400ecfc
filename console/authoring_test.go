package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExamServer keeps one exam in memory and serves the content endpoints
// the authoring session uses
type fakeExamServer struct {
	exam    Exam
	updates []ExamUpdate
}

func (f *fakeExamServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/course-contents/"):
			writeEnvelope(w, http.StatusOK, true, "Content fetched successfully!", f.exam)
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/update"):
			var update ExamUpdate
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body!", nil)
				return
			}
			f.updates = append(f.updates, update)
			f.exam.Questions = update.Questions
			writeEnvelope(w, http.StatusOK, true, "Exam updated successfully!", f.exam)
		default:
			writeEnvelope(w, http.StatusNotFound, false, "Not found!", nil)
		}
	})
}

func newAuthoringFixture(t *testing.T, exam Exam) (*fakeExamServer, *AuthoringSession) {
	t.Helper()

	fake := &fakeExamServer{exam: exam}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	session, err := NewAuthoringSession(NewClient(server.URL, "token"), exam.ID)
	require.NoError(t, err)
	return fake, session
}

func TestAuthoringSessionSeedsFromServer(t *testing.T) {
	_, session := newAuthoringFixture(t, Exam{
		ID:             10,
		Title:          "Midterm",
		QuestionType:   "MCQ",
		TotalQuestions: 5,
		Questions:      []uint{3, 8},
	})

	assert.Equal(t, 2, session.Size())
	assert.True(t, session.Contains(3))
	assert.True(t, session.Contains(8))
	assert.Equal(t, 5, session.Quota())
}

func TestAuthoringSessionQuotaCountsSeededQuestions(t *testing.T) {
	_, session := newAuthoringFixture(t, Exam{
		ID:             10,
		QuestionType:   "MCQ",
		TotalQuestions: 3,
		Questions:      []uint{1, 2},
	})

	require.NoError(t, session.Add(3))
	assert.ErrorIs(t, session.Add(4), ErrQuotaExceeded)
}

func TestAuthoringSessionSaveReplacesQuestionList(t *testing.T) {
	fake, session := newAuthoringFixture(t, Exam{
		ID:             10,
		Title:          "Midterm",
		QuestionType:   "MCQ",
		TotalQuestions: 5,
		Questions:      []uint{3, 8},
	})

	session.Remove(8)
	require.NoError(t, session.Add(11))
	require.NoError(t, session.Save())

	// Save sends the whole list, not a diff
	require.Len(t, fake.updates, 1)
	assert.Equal(t, []uint{3, 11}, fake.updates[0].Questions)
	assert.Equal(t, "Midterm", fake.updates[0].Title)
	assert.Equal(t, "MCQ", fake.updates[0].QuestionType)
}

func TestAuthoringSessionSaveRefetchesState(t *testing.T) {
	_, session := newAuthoringFixture(t, Exam{
		ID:             10,
		QuestionType:   "MCQ",
		TotalQuestions: 5,
		Questions:      []uint{1},
	})

	require.NoError(t, session.Add(2))
	require.NoError(t, session.Save())

	assert.Equal(t, []uint{1, 2}, session.Exam().Questions)
	assert.Equal(t, []uint{1, 2}, session.Selected())
}

func TestAuthoringSessionRejectsEmptySave(t *testing.T) {
	fake, session := newAuthoringFixture(t, Exam{
		ID:             10,
		QuestionType:   "MCQ",
		TotalQuestions: 5,
		Questions:      []uint{1},
	})

	session.Remove(1)
	assert.ErrorIs(t, session.Save(), ErrEmptySelection)
	assert.Empty(t, fake.updates)
}

func TestAuthoringSessionSaveRoundTrip(t *testing.T) {
	fake, session := newAuthoringFixture(t, Exam{
		ID:             10,
		QuestionType:   "MCQ",
		TotalQuestions: 10,
		Questions:      []uint{5, 6, 7},
	})

	require.NoError(t, session.Save())

	// Saving an untouched selection writes back exactly what was loaded
	require.Len(t, fake.updates, 1)
	assert.Equal(t, []uint{5, 6, 7}, fake.updates[0].Questions)
}
