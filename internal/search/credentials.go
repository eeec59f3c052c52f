package search

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"gifpal/internal/errors"
	"gifpal/internal/log"
)

// Environment variables and credentials-file keys for the provider
// API keys.
const (
	GiphyKeyVar = "GIPHY_API_KEY"
	TenorKeyVar = "TENOR_API_KEY"
)

// Credentials holds the API keys for the search providers.
type Credentials struct {
	GiphyKey string
	TenorKey string
}

// DefaultCredentialsPath returns the standard location of the
// credentials file, next to the config file.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".config", "gifpal", "credentials.env"), nil
}

// LoadCredentials reads API keys from a KEY=value credentials file,
// then lets process environment variables override them. A missing
// file is not an error; the environment may still provide the keys.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			switch key {
			case GiphyKeyVar:
				creds.GiphyKey = value
			case TenorKeyVar:
				creds.TenorKey = value
			}
		}
		if err := scanner.Err(); err != nil {
			return creds, errors.Wrapf(err, "failed to read credentials file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return creds, errors.Wrapf(err, "failed to open credentials file %s", path)
	} else {
		log.Debugf("No credentials file at %s, using environment only", path)
	}

	if v := os.Getenv(GiphyKeyVar); v != "" {
		creds.GiphyKey = v
	}
	if v := os.Getenv(TenorKeyVar); v != "" {
		creds.TenorKey = v
	}
	return creds, nil
}
