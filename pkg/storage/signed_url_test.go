package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("job-1", "schedules/file.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	grant, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "job-1", grant.JobID)
	require.Equal(t, "schedules/file.csv", grant.Path)
	require.True(t, expiresAt.Equal(grant.ExpiresAt))
}

func TestSignedURLSignerExpired(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	signer := NewSignedURLSigner("secret", time.Minute)
	signer.now = func() time.Time { return now }

	token, _, err := signer.Generate("job-1", "schedules/file.csv")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = signer.Parse(token, false)
	require.True(t, errors.Is(err, ErrTokenExpired))

	grant, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "job-1", grant.JobID)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("job-1", "a.csv")
	require.NoError(t, err)

	forged := strings.Replace(token, "job-1", "job-2", 1)
	_, err = signer.Parse(forged, false)
	require.True(t, errors.Is(err, ErrInvalidToken))

	_, err = NewSignedURLSigner("other", time.Hour).Parse(token, false)
	require.True(t, errors.Is(err, ErrInvalidToken))

	_, err = signer.Parse("not-a-token", false)
	require.True(t, errors.Is(err, ErrInvalidToken))
}
