// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
)

// StructuredConfig is the top-level configuration container for the
// registration robot. It aggregates all sub-configurations and is populated
// by merging values from command-line flags, environment variables and the
// INI configuration file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - ini: section (on groups) or key (on scalars) in config.ini.
type StructuredConfig struct {
	// App holds the dashboard addresses and local file locations.
	App App `envPrefix:"RPA_" ini:"GERAL"`

	// Credentials holds the robot's login and the master key settings.
	// The encrypted tokens themselves are read through [credentials.Store].
	Credentials Credentials `envPrefix:"RPA_" ini:"CREDENCIAS_APP"`

	// Email holds the status report delivery settings.
	Email Email `envPrefix:"RPA_EMAIL_" ini:"EMAIL"`

	// Browser holds the Chrome launch settings.
	Browser Browser `envPrefix:"RPA_BROWSER_" ini:"NAVEGADOR"`

	// Retry holds attempt counts and pauses for every retried step.
	Retry Retry `envPrefix:"RPA_RETRY_" ini:"RETENTATIVAS"`

	// Storage holds the optional run journal settings.
	Storage Storage `envPrefix:"RPA_JOURNAL_" ini:"HISTORICO"`

	// INIFilePath is the path to config.ini.
	// Populated via the CONFIG environment variable or the -c / -config flag,
	// defaults to [DefaultINIFile].
	INIFilePath string `env:"CONFIG" ini:"-"`
}

// App holds the dashboard addresses and local paths used during a run.
type App struct {
	// LoginURL is the dashboard login page.
	// Env: RPA_LOGIN_URL, INI: [GERAL] url_login
	LoginURL string `env:"LOGIN_URL" ini:"url_login"`

	// DashboardURL is opened directly to recover from a failed download.
	// Env: RPA_DASHBOARD_URL, INI: [GERAL] url_dashboard
	DashboardURL string `env:"DASHBOARD_URL" ini:"url_dashboard"`

	// DownloadDir receives the spreadsheet. It is created when missing and
	// every *.xlsx in it is deleted before each download attempt.
	// Env: RPA_DOWNLOAD_DIR, INI: [GERAL] diretorio_download
	DownloadDir string `env:"DOWNLOAD_DIR" ini:"diretorio_download"`

	// LogFile is truncated at the start of every run.
	// Env: RPA_LOG_FILE, INI: [GERAL] arquivo_log
	LogFile string `env:"LOG_FILE" ini:"arquivo_log"`
}

// Credentials holds the non-secret half of the robot's identity.
type Credentials struct {
	// Username is typed into the dashboard login form and is the account
	// name under which the master key is kept in the OS keyring.
	// Env: RPA_USERNAME, INI: [CREDENCIAS_APP] usuario
	Username string `env:"USERNAME" ini:"usuario"`

	// MasterKey is the passphrase the encryption key is derived from.
	// It is only ever read from the environment.
	// Env: RPA_MASTER_KEY
	MasterKey credentials.Secret `env:"MASTER_KEY" ini:"-"`

	// UseKeyring enables the OS keyring lookup of the master key.
	// Env: RPA_KEYRING, INI: [CREDENCIAS_APP] usar_keyring
	UseKeyring bool `env:"KEYRING" ini:"usar_keyring"`
}

// Email holds the SMTP settings of the status report. The report is skipped
// when From, To or Server is empty.
type Email struct {
	// From is the sender address and the SMTP login.
	// Env: RPA_EMAIL_FROM, INI: [EMAIL] email_remetente
	From string `env:"FROM" ini:"email_remetente"`

	// To is the report recipient.
	// Env: RPA_EMAIL_TO, INI: [EMAIL] email_destinatario
	To string `env:"TO" ini:"email_destinatario"`

	// Server is the SMTP host.
	// Env: RPA_EMAIL_SERVER, INI: [EMAIL] servidor_smtp
	Server string `env:"SERVER" ini:"servidor_smtp"`

	// Port is the SMTP submission port, 587 when unset.
	// Env: RPA_EMAIL_PORT, INI: [EMAIL] porta_smtp
	Port int `env:"PORT" ini:"porta_smtp"`
}

// Browser holds the Chrome launch settings.
type Browser struct {
	// Headless runs Chrome without a window.
	// Env: RPA_BROWSER_HEADLESS, INI: [NAVEGADOR] headless
	Headless bool `env:"HEADLESS" ini:"headless"`

	// ExecPath overrides Chrome discovery.
	// Env: RPA_BROWSER_EXEC_PATH, INI: [NAVEGADOR] caminho_chrome
	ExecPath string `env:"EXEC_PATH" ini:"caminho_chrome"`

	// DefaultWait bounds every wait for an element to become clickable.
	// Env: RPA_BROWSER_DEFAULT_WAIT, INI: [NAVEGADOR] espera_padrao
	DefaultWait time.Duration `env:"DEFAULT_WAIT" ini:"espera_padrao"`
}

// Retry holds the attempt counts and pauses of the retried steps.
type Retry struct {
	// Env: RPA_RETRY_LOGIN_ATTEMPTS, INI: [RETENTATIVAS] tentativas_login
	LoginAttempts int `env:"LOGIN_ATTEMPTS" ini:"tentativas_login"`
	// Env: RPA_RETRY_LOGIN_PAUSE, INI: [RETENTATIVAS] pausa_login
	LoginPause time.Duration `env:"LOGIN_PAUSE" ini:"pausa_login"`

	// Env: RPA_RETRY_DOWNLOAD_ATTEMPTS, INI: [RETENTATIVAS] tentativas_download
	DownloadAttempts int `env:"DOWNLOAD_ATTEMPTS" ini:"tentativas_download"`
	// DownloadPoll is the interval between two looks at the download dir.
	// Env: RPA_RETRY_DOWNLOAD_POLL, INI: [RETENTATIVAS] intervalo_download
	DownloadPoll time.Duration `env:"DOWNLOAD_POLL" ini:"intervalo_download"`
	// DownloadTimeout bounds the wait for the file of one attempt.
	// Env: RPA_RETRY_DOWNLOAD_TIMEOUT, INI: [RETENTATIVAS] timeout_download
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" ini:"timeout_download"`
	// Env: RPA_RETRY_DOWNLOAD_RECOVERY_PAUSE, INI: [RETENTATIVAS] pausa_recuperacao_download
	DownloadRecoveryPause time.Duration `env:"DOWNLOAD_RECOVERY_PAUSE" ini:"pausa_recuperacao_download"`
	// DownloadRecoveryWait bounds the wait for the download button after the
	// dashboard has been reopened.
	// Env: RPA_RETRY_DOWNLOAD_RECOVERY_WAIT, INI: [RETENTATIVAS] espera_recuperacao_download
	DownloadRecoveryWait time.Duration `env:"DOWNLOAD_RECOVERY_WAIT" ini:"espera_recuperacao_download"`

	// Env: RPA_RETRY_RECORD_ATTEMPTS, INI: [RETENTATIVAS] tentativas_cadastro
	RecordAttempts int `env:"RECORD_ATTEMPTS" ini:"tentativas_cadastro"`
	// SubmitPause lets the form script clear the fields after a submit.
	// Env: RPA_RETRY_SUBMIT_PAUSE, INI: [RETENTATIVAS] pausa_envio
	SubmitPause time.Duration `env:"SUBMIT_PAUSE" ini:"pausa_envio"`
	// Env: RPA_RETRY_REFRESH_PAUSE, INI: [RETENTATIVAS] pausa_recarga
	RefreshPause time.Duration `env:"REFRESH_PAUSE" ini:"pausa_recarga"`
}

// Storage holds the run journal settings.
type Storage struct {
	// DSN is the SQLite database file of the run journal. The journal is
	// disabled when empty.
	// Env: RPA_JOURNAL_DSN, INI: [HISTORICO] dsn
	DSN string `env:"DSN" ini:"dsn"`
}

// GetStructuredConfig loads, merges, and validates the robot configuration
// from all available sources in the following priority order (first source
// wins for non-zero fields):
//  1. Command-line flags parsed from args
//  2. Environment variables
//  3. INI file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// The parsed INI file is also returned as a [credentials.Source] so that the
// encrypted tokens can be read without mapping them into the config.
func GetStructuredConfig(args []string) (*StructuredConfig, credentials.Source, error) {
	b := newConfigBuilder().
		withFlags(args).
		withEnv().
		withINI()

	cfg, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, b.source, nil
}
