package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/tagscrape/bcrypt"
	main "github.com/fwojciec/tagscrape/cmd/tagscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout}

	require.NoError(t, (&main.HashPasswordCmd{Password: "secret"}).Run(deps))

	hash := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	auth := bcrypt.NewAuthenticator(map[string]string{"admin": hash})
	assert.NoError(t, auth.Authenticate(context.Background(), "admin", "secret"))
}
