package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSMTPPasswordLifecycle(t *testing.T) {
	keyring.MockInit()
	const user, host = "me@example.com", "smtp.example.com"
	assert.Equal(t, "jobdigest:smtp:me@example.com@smtp.example.com", SMTPKeyringAccount(user, host))

	_, err := GetSMTPPassword(user, host)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SetSMTPPassword(user, host, "hunter2"))
	pw, err := GetSMTPPassword(user, host)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	// stored under the trimmed account name
	pw, err = keyring.Get(KeyringService, "jobdigest:smtp:me@example.com@smtp.example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
	pw, err = GetSMTPPassword(" me@example.com ", " smtp.example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	require.NoError(t, DeleteSMTPPassword(user, host))
	_, err = GetSMTPPassword(user, host)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSMTPPassword_Guards(t *testing.T) {
	keyring.MockInit()
	assert.Equal(t, "", SMTPKeyringAccount("  ", "smtp.example.com"))
	assert.ErrorIs(t, SetSMTPPassword(" ", "smtp.example.com", "pw"), ErrNoUser)
	assert.Error(t, SetSMTPPassword("me@example.com", "smtp.example.com", " "))
	assert.ErrorIs(t, DeleteSMTPPassword("", "smtp.example.com"), ErrNoUser)

	_, err := GetSMTPPassword("", "smtp.example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
