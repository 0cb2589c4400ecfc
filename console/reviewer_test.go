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

func newReviewerFixture(t *testing.T, attempt Attempt) (*GradingReviewer, *[][]MarkEntry) {
	t.Helper()

	submissions := &[][]MarkEntry{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/exam-attempts/"):
			writeEnvelope(w, http.StatusOK, true, "Attempt fetched successfully!", attempt)
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/update-cq-mark"):
			var body struct {
				Marks []MarkEntry `json:"marks"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*submissions = append(*submissions, body.Marks)
			writeEnvelope(w, http.StatusOK, true, "Marks updated successfully!", nil)
		default:
			writeEnvelope(w, http.StatusNotFound, false, "Not found!", nil)
		}
	}))
	t.Cleanup(server.Close)

	reviewer, err := NewGradingReviewer(NewClient(server.URL, "token"), attempt.UserID, attempt.ContentID)
	require.NoError(t, err)
	return reviewer, submissions
}

func rawString(t *testing.T, s string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	return raw
}

func TestReviewerSeedsMarksToZero(t *testing.T) {
	reviewer, _ := newReviewerFixture(t, Attempt{
		UserID:    4,
		ContentID: 9,
		IsChecked: true,
		Answers: []MarkEntry{
			{Question: 1, Answer: rawString(t, "first"), Mark: 3},
			{Question: 2, Answer: rawString(t, "second"), Mark: 5},
		},
	})

	// Marks stored from an earlier review do not survive a reload
	for _, entry := range reviewer.Entries() {
		assert.Zero(t, entry.Mark)
	}
	assert.Len(t, reviewer.Entries(), 2)
}

func TestReviewerSetMarkLastWriteWins(t *testing.T) {
	reviewer, submissions := newReviewerFixture(t, Attempt{
		UserID:    4,
		ContentID: 9,
		Answers: []MarkEntry{
			{Question: 1, Answer: rawString(t, "a")},
			{Question: 2, Answer: rawString(t, "b")},
		},
	})

	require.NoError(t, reviewer.SetMark(1, 2))
	require.NoError(t, reviewer.SetMark(1, 4))
	require.NoError(t, reviewer.SetMark(2, 3))
	require.NoError(t, reviewer.Submit())

	require.Len(t, *submissions, 1)
	sent := (*submissions)[0]
	require.Len(t, sent, 2)
	assert.Equal(t, float64(4), sent[0].Mark)
	assert.Equal(t, float64(3), sent[1].Mark)
}

func TestReviewerSubmitSendsEveryEntry(t *testing.T) {
	reviewer, submissions := newReviewerFixture(t, Attempt{
		UserID:    4,
		ContentID: 9,
		Answers: []MarkEntry{
			{Question: 1, Answer: rawString(t, "a")},
			{Question: 2, Answer: rawString(t, "b")},
			{Question: 3, Answer: rawString(t, "c")},
		},
	})

	// Only one question marked; the rest go out with zero
	require.NoError(t, reviewer.SetMark(2, 5))
	require.NoError(t, reviewer.Submit())

	require.Len(t, *submissions, 1)
	sent := (*submissions)[0]
	require.Len(t, sent, 3)
	assert.Equal(t, float64(0), sent[0].Mark)
	assert.Equal(t, float64(5), sent[1].Mark)
	assert.Equal(t, float64(0), sent[2].Mark)
}

func TestReviewerSetMarkRejectsUnknownQuestion(t *testing.T) {
	reviewer, _ := newReviewerFixture(t, Attempt{
		UserID:    4,
		ContentID: 9,
		Answers:   []MarkEntry{{Question: 1, Answer: rawString(t, "a")}},
	})

	assert.Error(t, reviewer.SetMark(42, 3))
	assert.Error(t, reviewer.SetMark(1, -1))
}

func TestDecodeAnswerForms(t *testing.T) {
	text, images, err := DecodeAnswer(json.RawMessage(`"typed answer"`))
	require.NoError(t, err)
	assert.Equal(t, "typed answer", text)
	assert.Nil(t, images)

	text, images, err = DecodeAnswer(json.RawMessage(`["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`))
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, images)

	_, _, err = DecodeAnswer(json.RawMessage(`{"bad":1}`))
	assert.Error(t, err)
}
