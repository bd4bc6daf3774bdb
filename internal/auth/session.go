package auth

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const sessionFileName = "session.yml"

// Session is the persisted sign-in state: who the user is and the bearer
// token the backend expects on every call. Tokens come from the hosted
// sign-in flow; gridcal never sees the user's password.
type Session struct {
	Email       string `yaml:"email"`
	AccessToken string `yaml:"access_token"`
}

// Token implements the API client's token source. A nil session has no
// token, which the client turns into a not-authenticated failure.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

// LoadSession reads the saved session. A missing file is not an error; it
// returns nil, meaning the user is signed out.
func LoadSession() (*Session, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(configDir, sessionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

// Save persists the session with user-only permissions.
func (s *Session) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, sessionFileName), data, 0600)
}

// ClearSession signs the user out by removing the session file.
func ClearSession() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(configDir, sessionFileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// PromptSession interactively collects an email and access token. The token
// is read with hidden input and stripped of stray whitespace from pasting.
func PromptSession() (*Session, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("  gridcal login")
	fmt.Println("  ─────────────")
	fmt.Println()
	fmt.Println("  Sign in to the calendar backend in your browser, then paste")
	fmt.Println("  the access token shown on the callback page.")
	fmt.Println()

	fmt.Print("  Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	fmt.Print("  Access token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	fmt.Println()

	var cleaned strings.Builder
	for _, r := range string(tokenBytes) {
		if !unicode.IsSpace(r) {
			cleaned.WriteRune(r)
		}
	}
	token := cleaned.String()
	if token == "" {
		return nil, fmt.Errorf("no access token entered")
	}

	return &Session{Email: email, AccessToken: token}, nil
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gridcal"), nil
}
