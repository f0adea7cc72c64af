package gateway

import (
	"fmt"
	"os"
	"strings"
)

// CredentialProvider supplies the provider API key. Sourcing is injected so
// the core never reads files or the environment ambiently.
type CredentialProvider interface {
	APIKey() (string, error)
}

// FileCredential reads the key from a file, trimmed. An unreadable or empty
// file is an error.
type FileCredential struct {
	Path string
}

// APIKey returns the trimmed file contents.
func (f FileCredential) APIKey() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("key file %s not readable: %w", f.Path, err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", f.Path)
	}
	return key, nil
}

// EnvCredential reads the key from the first non-empty environment variable
// in Vars.
type EnvCredential struct {
	Vars []string
}

// APIKey returns the first non-empty variable's value.
func (e EnvCredential) APIKey() (string, error) {
	for _, name := range e.Vars {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf("API key is missing; provide a key file or set one of %s", strings.Join(e.Vars, ", "))
}

// StaticCredential holds a key verbatim, mainly for tests.
type StaticCredential string

// APIKey returns the stored key.
func (s StaticCredential) APIKey() (string, error) {
	if s == "" {
		return "", fmt.Errorf("API key is empty")
	}
	return string(s), nil
}

// ResolveCredential prefers an explicit key file and falls back to the
// environment variables.
func ResolveCredential(keyFile string, envVars ...string) CredentialProvider {
	if keyFile != "" {
		return FileCredential{Path: keyFile}
	}
	return EnvCredential{Vars: envVars}
}
