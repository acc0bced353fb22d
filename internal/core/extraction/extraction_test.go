package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLM struct {
	response string
	err      error
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestExtract(t *testing.T) {
	kg := `{
		"entities": [
			{"name": "Alice", "label": "Person"},
			{"name": "Login", "label": ""}
		],
		"relations": [
			{"from": "Alice", "type": "worked on", "to": "Login", "explanation": "Alice built the login feature"}
		]
	}`
	e := NewExtractor(&mockLLM{response: "```json\n" + kg + "\n```"}, "%s")

	entities, relations, err := e.Extract(context.Background(), "Alice worked on the login feature.")
	require.NoError(t, err)

	require.Len(t, entities, 2)
	assert.Equal(t, "Person", entities[0].Label)
	assert.Equal(t, "Login", entities[1].Label, "empty label defaults to the name")

	require.Len(t, relations, 1)
	assert.Equal(t, "worked_on", relations[0].Type, "relation type normalized once at extraction")
}

func TestExtract_UnparseableOutput(t *testing.T) {
	e := NewExtractor(&mockLLM{response: "I could not find any entities."}, "%s")

	_, _, err := e.Extract(context.Background(), "text")
	var exErr *Error
	require.ErrorAs(t, err, &exErr)
}

func TestExtract_IncompleteRelation(t *testing.T) {
	e := NewExtractor(&mockLLM{response: `{"entities": [], "relations": [{"from": "Alice", "type": "", "to": "Login"}]}`}, "%s")

	_, _, err := e.Extract(context.Background(), "text")
	var exErr *Error
	require.ErrorAs(t, err, &exErr)
}

func TestExtract_ProviderError(t *testing.T) {
	e := NewExtractor(&mockLLM{err: errors.New("rate limited")}, "%s")

	_, _, err := e.Extract(context.Background(), "text")
	require.Error(t, err)
	var exErr *Error
	assert.False(t, errors.As(err, &exErr), "provider failures are not extraction errors")
}

func TestNormalizeRelationType(t *testing.T) {
	assert.Equal(t, "WORKED_ON", NormalizeRelationType("WORKED  ON"))
	assert.Equal(t, "co_authored", NormalizeRelationType("co-authored"))
	assert.Equal(t, "a_b", NormalizeRelationType("a / b"))
	assert.Equal(t, "x", NormalizeRelationType("`x`"))
	assert.Equal(t, "", NormalizeRelationType("   "))
}
