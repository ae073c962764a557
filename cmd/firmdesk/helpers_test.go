package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetFlags(t *testing.T) {
	fields, err := parseSetFlags([]string{"status=FIELDWORK", "year=2026", "note=a=b"})
	require.NoError(t, err)

	assert.Equal(t, "FIELDWORK", fields["status"])
	assert.Equal(t, 2026, fields["year"])
	// Only the first "=" splits; the rest is the value.
	assert.Equal(t, "a=b", fields["note"])
}

func TestParseSetFlags_Errors(t *testing.T) {
	_, err := parseSetFlags(nil)
	assert.Error(t, err)

	_, err = parseSetFlags([]string{"no-equals"})
	assert.Error(t, err)

	_, err = parseSetFlags([]string{"=value"})
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.Error(t, err, "parseID(%q)", bad)
	}
}
