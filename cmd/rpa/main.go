package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-rpa-cadastro/internal/app"
	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/notify"
	"github.com/MKhiriev/go-rpa-cadastro/internal/rpa"
	"github.com/MKhiriev/go-rpa-cadastro/internal/sheet"
	"github.com/MKhiriev/go-rpa-cadastro/internal/store"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

const role = "rpa-cadastro"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	printBuildInfo()

	boot := logger.NewLogger(role)
	cfg, source, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		boot.Error().Err(err).Msg("error getting configs")
		return 2
	}

	log, err := logger.NewRunLogger(role, cfg.App.LogFile)
	if err != nil {
		boot.Error().Err(err).Msg("error opening log file")
		return 2
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal, err := store.NewJournal(ctx, cfg.Storage, log)
	if err != nil {
		log.Warn().Err(err).Msg("run journal could not be opened, continuing without it")
		journal = store.NopJournal()
	}
	defer journal.Close()

	creds := credentials.NewStore(source, masterKeyChain(cfg, source, log), crypto.NewKeyChainService(), log)

	launcher := browser.NewChromeLauncher(browser.ChromeConfig{
		Headless:    cfg.Browser.Headless,
		ExecPath:    cfg.Browser.ExecPath,
		DownloadDir: cfg.App.DownloadDir,
		DefaultWait: cfg.Browser.DefaultWait,
	})
	robot := rpa.NewRunner(launcher, cfg.App, cfg.Retry, cfg.Browser.DefaultWait, log)

	a := app.NewApp(
		cfg,
		creds,
		robot,
		sheet.NewReader(log),
		notify.NewNotifier(cfg.Email, log),
		journal,
		log,
	)

	if err = a.Run(ctx); err != nil {
		return 1
	}
	return 0
}

// masterKeyChain looks the passphrase up in the environment, then the OS
// keyring when enabled, then the legacy config file field.
func masterKeyChain(cfg *config.StructuredConfig, source credentials.Source, log *logger.Logger) *credentials.MasterKeyChain {
	providers := []credentials.MasterKeyProvider{
		credentials.EnvMasterKey(cfg.Credentials.MasterKey.Reveal()),
	}
	if cfg.Credentials.UseKeyring {
		providers = append(providers, credentials.KeyringMasterKey{User: cfg.Credentials.Username})
	}
	providers = append(providers, credentials.SourceMasterKey{Source: source, Logger: log})

	return credentials.NewMasterKeyChain(log, providers...)
}

func printBuildInfo() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
