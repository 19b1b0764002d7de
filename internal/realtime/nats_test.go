package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobIDFromSubject(t *testing.T) {
	id, err := parseJobIDFromSubject("studio.job.42.status")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = parseJobIDFromSubject("studio.job.status")
	assert.Error(t, err, "too few parts")

	_, err = parseJobIDFromSubject("studio.job.abc.status")
	assert.Error(t, err, "non-numeric id")

	_, err = parseJobIDFromSubject("studio.job.42.status.extra")
	assert.Error(t, err, "too many parts")
}
