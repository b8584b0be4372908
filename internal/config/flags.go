package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
)

// URLValue holds an absolute http(s) address given on the command line.
// It implements the flag.Value interface.
type URLValue struct {
	URL *url.URL
}

// ParseFlags parses the robot's command-line flags from args (without the
// program name).
//
// Flags:
//
//	-c/-config path to config.ini
//	-login-url dashboard login page
//	-dashboard-url dashboard page used to recover from a failed download
//	-user dashboard login
//	-download-dir spreadsheet download directory
//	-log-file log file path
//	-headless run Chrome without a window
//	-keyring read the master key from the OS keyring
//	-journal SQLite run journal path
//	-email-to status report recipient
func ParseFlags(args []string) (*StructuredConfig, error) {
	var loginURL, dashboardURL URLValue
	var iniConfigPath string
	var username string
	var downloadDir string
	var logFile string
	var headless bool
	var useKeyring bool
	var journalDSN string
	var emailTo string

	fs := flag.NewFlagSet("rpa", flag.ContinueOnError)
	fs.Var(&loginURL, "login-url", "Dashboard login page URL")
	fs.Var(&dashboardURL, "dashboard-url", "Dashboard page URL")
	fs.StringVar(&iniConfigPath, "c", "", "INI config file path")
	fs.StringVar(&iniConfigPath, "config", "", "INI config file path (alias)")
	fs.StringVar(&username, "user", "", "Dashboard login")
	fs.StringVar(&downloadDir, "download-dir", "", "Spreadsheet download directory")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.BoolVar(&headless, "headless", false, "Run Chrome without a window")
	fs.BoolVar(&useKeyring, "keyring", false, "Read the master key from the OS keyring")
	fs.StringVar(&journalDSN, "journal", "", "SQLite run journal path")
	fs.StringVar(&emailTo, "email-to", "", "Status report recipient")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LoginURL:     loginURL.String(),
			DashboardURL: dashboardURL.String(),
			DownloadDir:  downloadDir,
			LogFile:      logFile,
		},
		Credentials: Credentials{
			Username:   username,
			UseKeyring: useKeyring,
		},
		Email: Email{
			To: emailTo,
		},
		Browser: Browser{
			Headless: headless,
		},
		Storage: Storage{
			DSN: journalDSN,
		},
		INIFilePath: iniConfigPath,
	}, nil
}

// String returns the address, or an empty string when none was set.
func (u *URLValue) String() string {
	if u == nil || u.URL == nil {
		return ""
	}

	return u.URL.String()
}

// Set parses s and accepts only absolute http and https URLs.
func (u *URLValue) Set(s string) error {
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("need an http or https URL")
	}

	if parsed.Host == "" {
		return errors.New("URL has no host")
	}

	u.URL = parsed
	return nil
}
