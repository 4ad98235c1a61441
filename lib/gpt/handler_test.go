package gpthandler

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ai-interviewer-backend/models"
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type llmCall struct {
	promt       string
	text        string
	temperature float64
}

type fakeLLM struct {
	answers []string
	err     error
	calls   []llmCall
}

func (f *fakeLLM) Generate(_ context.Context, promt, text string, temperature float64) (string, error) {
	f.calls = append(f.calls, llmCall{promt: promt, text: text, temperature: temperature})
	if f.err != nil {
		return "", f.err
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakeLLM) Name() dbmodels.AiName {
	return "fake"
}

type fakeLogStore struct {
	recs []dbmodels.AiLog
}

func (f *fakeLogStore) Save(rec dbmodels.AiLog) (string, error) {
	f.recs = append(f.recs, rec)
	return "id", nil
}

func (f *fakeLogStore) DeleteOlderThan(time.Time) (int64, error) {
	return 0, nil
}

func TestParseResume(t *testing.T) {
	ctx := context.Background()

	t.Run(`fenced json is extracted with zero temperature`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{"Here is the result:\n```json\n{\n  \"skills\": [\"Python\", \"AWS\"]\n}\n```"}}
		logs := &fakeLogStore{}
		parsed, err := New(llm, logs).ParseResume(ctx, "John Doe, john@x.com, Python, AWS")
		require.Nil(t, err)
		require.JSONEq(t, `{"skills":["Python","AWS"]}`, string(parsed))
		require.Len(t, llm.calls, 1)
		require.Equal(t, float64(0), llm.calls[0].temperature)
		require.Contains(t, llm.calls[0].text, "John Doe, john@x.com, Python, AWS")
		require.Len(t, logs.recs, 1)
		require.Equal(t, dbmodels.AiParseResumeType, logs.recs[0].ReqestType)
	})

	t.Run(`non json answer kept as string`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{"  Name: John Doe  "}}
		parsed, err := New(llm, nil).ParseResume(ctx, "John Doe")
		require.Nil(t, err)
		var value string
		require.Nil(t, json.Unmarshal(parsed, &value))
		require.Equal(t, "Name: John Doe", value)
	})

	t.Run(`empty answer is ParsingError`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{" \n "}}
		parsed, err := New(llm, nil).ParseResume(ctx, "John Doe")
		require.Nil(t, parsed)
		require.True(t, errors.Is(err, models.ErrParsing))
	})

	t.Run(`llm failure is ParsingError`, func(t *testing.T) {
		llm := &fakeLLM{err: errors.New("503")}
		_, err := New(llm, nil).ParseResume(ctx, "John Doe")
		require.True(t, errors.Is(err, models.ErrParsing))
	})
}

func TestQuestions(t *testing.T) {
	ctx := context.Background()
	parsed := json.RawMessage(`{"skills":["Python","AWS"]}`)

	t.Run(`first question uses profile only`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{"\"Tell me about your AWS projects.\"\n"}}
		question, err := New(llm, nil).FirstQuestion(ctx, parsed)
		require.Nil(t, err)
		require.Equal(t, "Tell me about your AWS projects.", question)
		require.Equal(t, 0.7, llm.calls[0].temperature)
		require.Contains(t, llm.calls[0].text, `"Python"`)
	})

	t.Run(`next question includes last answer`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{"Which AWS services did you use?"}}
		question, err := New(llm, nil).NextQuestion(ctx, parsed, "I have 3 years experience")
		require.Nil(t, err)
		require.Equal(t, "Which AWS services did you use?", question)
		require.True(t, strings.Contains(llm.calls[0].text, "I have 3 years experience"))
	})

	t.Run(`empty question is QuestionServiceError`, func(t *testing.T) {
		llm := &fakeLLM{answers: []string{"   "}}
		_, err := New(llm, nil).FirstQuestion(ctx, parsed)
		require.True(t, errors.Is(err, models.ErrQuestionService))
	})

	t.Run(`llm failure is QuestionServiceError`, func(t *testing.T) {
		llm := &fakeLLM{err: context.DeadlineExceeded}
		_, err := New(llm, nil).NextQuestion(ctx, parsed, "answer")
		require.True(t, errors.Is(err, models.ErrQuestionService))
	})
}

func TestParseHelpers(t *testing.T) {
	t.Run(`ExtractJSON`, func(t *testing.T) {
		require.Equal(t, `{"a":1}`, ExtractJSON("```json\n{\"a\":1}\n```"))
		require.Equal(t, `{"a":{"b":2}}`, ExtractJSON(`Sure! {"a":{"b":2}} Hope it helps`))
		require.Equal(t, `[1,2]`, ExtractJSON(`list: [1,2]`))
		require.Equal(t, `no json here`, ExtractJSON(`no json here`))
	})

	t.Run(`ResumeForPromt`, func(t *testing.T) {
		require.Equal(t, "plain profile", ResumeForPromt(json.RawMessage(`"plain profile"`)))
		require.Equal(t, "{\n  \"a\": 1\n}", ResumeForPromt(json.RawMessage(`{"a":1}`)))
		require.Equal(t, "", ResumeForPromt(nil))
	})
}
