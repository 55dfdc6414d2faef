package firebase

import (
	"strings"

	"firebase.google.com/go/v4/auth"

	"immomarket/pkg/errors"
)

// Fixed provider-code to message table. Codes outside the table fall back to
// a generic message rather than leaking provider internals to users.
var authErrorMessages = map[string]string{
	"EMAIL_EXISTS":                "This email address is already in use",
	"EMAIL_NOT_FOUND":             "No account found with this email address",
	"INVALID_EMAIL":               "Invalid email address",
	"INVALID_PASSWORD":            "Incorrect password",
	"INVALID_LOGIN_CREDENTIALS":   "Incorrect email or password",
	"WEAK_PASSWORD":               "Password must be at least 6 characters",
	"USER_DISABLED":               "This account has been disabled",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many attempts. Please try again later",
}

const genericAuthMessage = "Something went wrong. Please try again"

func translateAuthCode(code string) *errors.AppError {
	// REST errors sometimes carry a suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	code = strings.TrimSpace(strings.SplitN(code, ":", 2)[0])

	if message, ok := authErrorMessages[code]; ok {
		return errors.BadRequest(message, nil)
	}
	return errors.BadRequest(genericAuthMessage, nil)
}

func translateAuthError(err error) *errors.AppError {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return errors.BadRequest(authErrorMessages["EMAIL_EXISTS"], err)
	case auth.IsUserNotFound(err):
		return errors.NotFound("User", err)
	default:
		return errors.Internal(genericAuthMessage, err)
	}
}
