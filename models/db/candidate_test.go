package dbmodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResumeData(t *testing.T) {
	src := ResumeData{
		ContactInfo: ContactInfo{
			Name:     "John Doe",
			Email:    "john@x.com",
			Phone:    "123",
			Position: "Developer",
		},
		ParsedResume: json.RawMessage(`{"skills":["Python","AWS"],"education":[{"school":"MIT","years":{"from":2010,"to":2014}}]}`),
		RawText:      "John Doe\nPython, AWS",
	}

	t.Run(`round trip through jsonb value`, func(t *testing.T) {
		value, err := src.Value()
		require.NoError(t, err)

		var fromString ResumeData
		require.NoError(t, fromString.Scan(value))
		require.Equal(t, src.ContactInfo, fromString.ContactInfo)
		require.Equal(t, src.RawText, fromString.RawText)
		require.JSONEq(t, string(src.ParsedResume), string(fromString.ParsedResume))

		var fromBytes ResumeData
		require.NoError(t, fromBytes.Scan([]byte(value.(string))))
		require.JSONEq(t, string(src.ParsedResume), string(fromBytes.ParsedResume))
	})
	t.Run(`scan nil`, func(t *testing.T) {
		var data ResumeData
		require.NoError(t, data.Scan(nil))
		require.Empty(t, data.RawText)
	})
	t.Run(`scan unsupported type`, func(t *testing.T) {
		var data ResumeData
		require.Error(t, data.Scan(42))
	})
	t.Run(`skills`, func(t *testing.T) {
		require.Equal(t, []string{"Python", "AWS"}, src.Skills())
		require.Nil(t, ResumeData{ParsedResume: json.RawMessage(`"text"`)}.Skills())
	})
}
