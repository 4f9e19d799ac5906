package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDatabaseName(t *testing.T) {
	assert.Equal(t, "claims", NewNeo4jService(nil, "claims").GetDatabaseName())
}

func TestWrapQueryError(t *testing.T) {
	err := wrapQueryError("read", errors.New("syntax error"))
	assert.False(t, errors.Is(err, ErrConnectivity))
	assert.Contains(t, err.Error(), "failed to execute read query")
}
