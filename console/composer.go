package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QuestionForm is the manual question entry form. For MCQ the author picks an
// option by index; the submitted answer is the string value of the option at
// that index, not the index itself.
type QuestionForm struct {
	Type          string
	Title         string
	Explanation   string
	Options       []string
	CorrectOption string
	Answer        string
	Answers       []string
	Tags          []uint
}

func (f *QuestionForm) validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errors.New("question title is required")
	}

	switch f.Type {
	case "MCQ":
		if len(f.Options) != 4 {
			return errors.New("MCQ requires exactly 4 options")
		}
		idx, err := strconv.Atoi(f.CorrectOption)
		if err != nil || idx < 0 || idx > 3 {
			return errors.New("correct option must be an index between 0 and 3")
		}
		if strings.TrimSpace(f.Options[idx]) == "" {
			return errors.New("the chosen correct option is empty")
		}
		for i, opt := range f.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("option %d is empty", i+1)
			}
		}
	case "CQ":
		if strings.TrimSpace(f.Answer) == "" {
			return errors.New("answer is required")
		}
	case "GAPS":
		if len(f.Answers) == 0 {
			return errors.New("at least one acceptable answer is required")
		}
		for _, a := range f.Answers {
			if strings.TrimSpace(a) == "" {
				return errors.New("acceptable answers cannot be empty")
			}
		}
	default:
		return fmt.Errorf("unknown question type %q", f.Type)
	}

	return nil
}

func (f *QuestionForm) toRequest() NewQuestion {
	req := NewQuestion{
		Type:        f.Type,
		Title:       f.Title,
		Explanation: f.Explanation,
		Tags:        f.Tags,
	}

	switch f.Type {
	case "MCQ":
		idx, _ := strconv.Atoi(f.CorrectOption)
		req.Options = f.Options
		req.Answer = f.Options[idx]
	case "CQ":
		req.Answer = f.Answer
	case "GAPS":
		req.Answers = f.Answers
	}

	return req
}

// Compose validates the form locally and creates the question. Nothing is
// sent when validation fails.
func Compose(client *Client, form QuestionForm) (*Question, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	return client.CreateQuestion(form.toRequest())
}

// ComposeAndAttach creates the question and then attaches it to the exam in a
// second call that replaces the exam's question list with the session's
// selection plus the new question. When the attach fails the created question
// is returned alongside the error; it stays in the bank unattached and is not
// rolled back.
func ComposeAndAttach(session *AuthoringSession, form QuestionForm) (*Question, error) {
	question, err := Compose(session.client, form)
	if err != nil {
		return nil, err
	}

	if err := session.Add(question.ID); err != nil {
		return question, err
	}
	if err := session.Save(); err != nil {
		return question, err
	}

	return question, nil
}
