// Package errors provides standardized error handling for the gifpal
// application. It defines common error types, constants, and helper
// functions for consistent error creation, wrapping, and handling.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	InvalidGif
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Search error kinds
	MissingCredentials
	ProviderFailure
	MalformedResponse
	// Download error kinds
	DownloadFailed
	SaveFailed
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound  = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidGif    = NewFileError("not a valid GIF file", "", InvalidGif, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to GIF files and paths
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// SearchError represents errors from a GIF search provider
type SearchError struct {
	ApplicationError
	provider string
}

// NewSearchError creates a new search error
func NewSearchError(msg string, provider string, kind ErrorKind, err error) *SearchError {
	return &SearchError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		provider: provider,
	}
}

// Error returns the search error message
func (e *SearchError) Error() string {
	if e.provider != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.provider, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.provider)
	}
	return e.ApplicationError.Error()
}

// Provider returns the provider name associated with the error
func (e *SearchError) Provider() string {
	return e.provider
}

// DownloadError represents errors while fetching or saving a GIF
type DownloadError struct {
	ApplicationError
	url string
}

// NewDownloadError creates a new download error
func NewDownloadError(msg string, url string, kind ErrorKind, err error) *DownloadError {
	return &DownloadError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		url: url,
	}
}

// Error returns the download error message
func (e *DownloadError) Error() string {
	if e.url != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.url, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.url)
	}
	return e.ApplicationError.Error()
}

// URL returns the URL associated with the error
func (e *DownloadError) URL() string {
	return e.url
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsInvalidGif checks if the error marks a file that is not a decodable GIF
func IsInvalidGif(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == InvalidGif
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsMissingCredentials checks if the error is a missing API key error
func IsMissingCredentials(err error) bool {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Kind() == MissingCredentials
	}
	return false
}

// IsSearchError checks if the error came from a search provider
func IsSearchError(err error) bool {
	var searchErr *SearchError
	return errors.As(err, &searchErr)
}

// IsDownloadError checks if the error came from a GIF download
func IsDownloadError(err error) bool {
	var dlErr *DownloadError
	return errors.As(err, &dlErr)
}
