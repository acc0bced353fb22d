package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema("")
	assert.NoError(t, err)
	assert.Equal(t, FixedLabelSchema, s)

	s, err = ParseSchema("fixed")
	assert.NoError(t, err)
	assert.Equal(t, FixedLabelSchema, s)

	s, err = ParseSchema("per_entity")
	assert.NoError(t, err)
	assert.Equal(t, PerEntityLabelSchema, s)

	_, err = ParseSchema("freeform")
	assert.Error(t, err)
}

func TestSafeIdentifier(t *testing.T) {
	assert.True(t, SafeIdentifier("WORKED_ON"))
	assert.True(t, SafeIdentifier("relates_to_2"))

	assert.False(t, SafeIdentifier(""))
	assert.False(t, SafeIdentifier("2nd"))
	assert.False(t, SafeIdentifier("WORKED ON"))
	assert.False(t, SafeIdentifier("a-b"))
	assert.False(t, SafeIdentifier("x]->(y) DETACH DELETE y //"))
	assert.False(t, SafeIdentifier("`x`"))
}
