package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"

	"immomarket/pkg/errors"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

type FirebaseAuthClient struct {
	client *auth.Client
	apiKey string
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", translateAuthError(err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).
		Password(newPassword)

	_, err := f.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return translateAuthError(err)
	}

	return nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		return translateAuthError(err)
	}
	return nil
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
}

type restError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithEmailPassword exchanges credentials for an ID token via the
// Identity Toolkit REST API. The Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	payload := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var result signInResponse
	if err := f.postIdentityToolkit("accounts:signInWithPassword", payload, &result); err != nil {
		return "", err
	}

	return result.IDToken, nil
}

// SendPasswordResetEmail triggers the provider's reset email flow.
func (f *FirebaseAuthClient) SendPasswordResetEmail(email string) error {
	payload := map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}

	return f.postIdentityToolkit("accounts:sendOobCode", payload, nil)
}

func (f *FirebaseAuthClient) postIdentityToolkit(endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("Failed to encode auth request", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitURL, endpoint, f.apiKey)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Internal("Failed to reach authentication provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var restErr restError
		if err := json.NewDecoder(resp.Body).Decode(&restErr); err != nil {
			return errors.Internal("Authentication provider returned an unreadable error", err)
		}
		return translateAuthCode(restErr.Error.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Internal("Failed to decode auth response", err)
		}
	}

	return nil
}
