// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/app_mock.go -package=mock

// CredentialLoader decrypts the passwords of a run.
type CredentialLoader interface {
	Load() (credentials.Secrets, error)
}

// Robot drives the dashboard. Implemented by [rpa.Runner].
type Robot interface {
	Login(ctx context.Context, user string, password credentials.Secret) (browser.Driver, error)
	Download(ctx context.Context, drv browser.Driver) (string, error)
	Register(ctx context.Context, drv browser.Driver, employees []models.Employee) (models.RegisterSummary, error)
	Logout(ctx context.Context, drv browser.Driver)
}

// SheetReader turns the downloaded spreadsheet into records.
type SheetReader interface {
	Read(path string) ([]models.Employee, error)
}

// Notifier mails the status report.
type Notifier interface {
	Configured() bool
	Send(ctx context.Context, summary models.RunSummary, password credentials.Secret) error
}
