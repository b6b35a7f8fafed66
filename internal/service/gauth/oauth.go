package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthClient manages the installed-app OAuth flow shared by the YouTube and
// Sheets clients. The token is cached on disk; when it is missing the
// operator runs the browser authorization once and pastes the code back.
type OAuthClient struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	logger    *zap.Logger
}

func NewOAuthClient(credentialsFile, tokenFile string, logger *zap.Logger, scopes ...string) (*OAuthClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credBytes, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	oc := &OAuthClient{
		config:    config,
		tokenFile: tokenFile,
		logger:    logger,
	}

	token, err := loadToken(tokenFile)
	if err != nil {
		logger.Warn("No existing token found, need to authorize",
			zap.String("file", tokenFile))
		return oc, nil
	}

	oc.token = token
	logger.Info("Google OAuth client initialized", zap.Bool("authenticated", true))
	return oc, nil
}

// Authorize runs the interactive authorization code exchange and persists
// the resulting token.
func (oc *OAuthClient) Authorize(ctx context.Context) error {
	if oc == nil {
		return fmt.Errorf("oauth client not initialized")
	}

	authURL := oc.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	oc.logger.Info("Authorization required")
	fmt.Println("\n=== Google API Authorization ===")
	fmt.Println("Go to the following link in your browser:")
	fmt.Println(authURL)
	fmt.Println("\nAfter authorization, enter the code here:")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("unable to read authorization code: %w", err)
	}

	token, err := oc.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("unable to retrieve token: %w", err)
	}

	if err := saveToken(oc.tokenFile, token); err != nil {
		return fmt.Errorf("unable to save token: %w", err)
	}

	oc.token = token
	oc.logger.Info("Google OAuth authorization complete",
		zap.String("token_file", oc.tokenFile))
	return nil
}

func (oc *OAuthClient) IsAuthorized() bool {
	return oc != nil && oc.token != nil
}

// HTTPClient returns an authorized HTTP client, or nil before authorization.
func (oc *OAuthClient) HTTPClient(ctx context.Context) *http.Client {
	if !oc.IsAuthorized() {
		return nil
	}
	return oc.config.Client(ctx, oc.token)
}

func loadToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

func saveToken(file string, token *oauth2.Token) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
