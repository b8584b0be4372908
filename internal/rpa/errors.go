package rpa

import "errors"

// Errors returned once every attempt of a step has failed.
var (
	// ErrLoginFailed means the dashboard could not be reached or the
	// credentials were refused on every attempt.
	ErrLoginFailed = errors.New("login failed")
	// ErrDownloadFailed means no spreadsheet arrived in the download
	// directory on any attempt.
	ErrDownloadFailed = errors.New("spreadsheet download failed")
	// ErrRegisterPage means the registration page could not be opened.
	ErrRegisterPage = errors.New("registration page unavailable")
)
