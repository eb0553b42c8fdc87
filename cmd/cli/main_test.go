package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRunHashKey(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHashKey([]string{"s3cret"}, &out))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestRunHashKey_RequiresOneArgument(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runHashKey(nil, &out))
	assert.Error(t, runHashKey([]string{"a", "b"}, &out))
	assert.Empty(t, out.String())
}
