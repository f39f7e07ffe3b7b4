package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// authEnvelope is the token payload returned by login and refresh.
type authEnvelope struct {
	TokenType    string `json:"tokenType"`
	AccessToken  string `json:"accessToken"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
	RefreshToken string `json:"refreshToken"`
}

// decodeAuthEnvelope parses an auth envelope; any missing field is bad-data.
func decodeAuthEnvelope(body []byte) (*authEnvelope, *Problem) {
	var env authEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, badData(err.Error())
	}
	if env.TokenType == "" || env.AccessToken == "" || env.RefreshToken == "" || env.ExpiresIn <= 0 {
		return nil, badData("auth envelope missing required fields")
	}
	return &env, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// Login exchanges credentials for a token pair, persists it through the
// token store, and returns the resulting session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, *Problem) {
	resp, err := c.plainRequest(ctx, http.MethodPost, "Users/login", loginRequest{Email: email, Password: password})
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}

	env, prob := decodeAuthEnvelope(resp.Body)
	if prob != nil {
		return nil, prob
	}
	if err := c.tokens.SaveTokens(ctx, env.AccessToken, env.RefreshToken); err != nil {
		return nil, &Problem{Kind: KindUnknown, Detail: err.Error()}
	}

	return &models.Session{
		AccessToken:  env.AccessToken,
		RefreshToken: env.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(env.ExpiresIn) * time.Second),
	}, nil
}

// Register creates a new account. The caller still has to log in afterwards.
func (c *HTTPClient) Register(ctx context.Context, email, password, displayName string) *Problem {
	resp, err := c.plainRequest(ctx, http.MethodPost, "Users/register", registerRequest{Email: email, Password: password, DisplayName: displayName})
	return problem(resp, err)
}

// DisplayName fetches the authenticated user's display name.
func (c *HTTPClient) DisplayName(ctx context.Context) (string, *Problem) {
	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, "Users/display-name", nil, nil)
	if prob := problem(resp, err); prob != nil {
		return "", prob
	}

	var out struct {
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", badData(err.Error())
	}
	if out.DisplayName == "" {
		return "", badData("display name missing")
	}
	return out.DisplayName, nil
}

// UpdateUser updates the authenticated user's profile.
func (c *HTTPClient) UpdateUser(ctx context.Context, draft models.UserDraft) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPost, "Users/update", nil, draft)
	return problem(resp, err)
}
