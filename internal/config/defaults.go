package config

import (
	"runtime"
	"time"
)

// DefaultINIFile is read when neither CONFIG nor -config is given.
const DefaultINIFile = "config.ini"

// DefaultDashboardURL is the dashboard reopened to recover from a failed
// download when [App.DashboardURL] is not configured.
const DefaultDashboardURL = "https://desafio-rpa-946177071851.us-central1.run.app/challenger/dashboard"

func defaultDownloadDir() string {
	if runtime.GOOS == "windows" {
		return `C:\RPA`
	}
	return "./downloads"
}

// defaults fills every field left zero by flags, environment and file.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			DashboardURL: DefaultDashboardURL,
			DownloadDir:  defaultDownloadDir(),
			LogFile:      "log_rpa_cadastro.log",
		},
		Email: Email{
			Port: 587,
		},
		Browser: Browser{
			DefaultWait: 10 * time.Second,
		},
		Retry: Retry{
			LoginAttempts:         3,
			LoginPause:            3 * time.Second,
			DownloadAttempts:      3,
			DownloadPoll:          time.Second,
			DownloadTimeout:       30 * time.Second,
			DownloadRecoveryPause: 2 * time.Second,
			DownloadRecoveryWait:  15 * time.Second,
			RecordAttempts:        3,
			SubmitPause:           500 * time.Millisecond,
			RefreshPause:          2 * time.Second,
		},
		INIFilePath: DefaultINIFile,
	}
}
