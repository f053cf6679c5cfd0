package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobdigest"
)

var (
	ErrNotFound = errors.New("SMTP password not found (set it in keychain or via SMTP_PASS)")
	ErrNoUser   = errors.New("SMTP username is empty")
)

// SMTPKeyringAccount names the keychain entry for a relay login. It is empty
// when username is.
func SMTPKeyringAccount(username, host string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return ""
	}
	return fmt.Sprintf("jobdigest:smtp:%s@%s", username, strings.TrimSpace(host))
}

func account(username, host string) (string, error) {
	if acct := SMTPKeyringAccount(username, host); acct != "" {
		return acct, nil
	}
	return "", ErrNoUser
}

func GetSMTPPassword(username, host string) (string, error) {
	acct, err := account(username, host)
	if err != nil {
		return "", ErrNotFound
	}
	pw, err := keyring.Get(KeyringService, acct)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", ErrNotFound
	}
	return pw, nil
}

func SetSMTPPassword(username, host, password string) error {
	acct, err := account(username, host)
	if err != nil {
		return err
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, acct, password)
}

func DeleteSMTPPassword(username, host string) error {
	acct, err := account(username, host)
	if err != nil {
		return err
	}
	return keyring.Delete(KeyringService, acct)
}
