package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/provision"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("rpa-provision")

	fs := flag.NewFlagSet("provision", flag.ContinueOnError)
	useKeyring := fs.Bool("keyring", false, "also store the master passphrase in the OS keyring")
	user := fs.String("user", "", "keyring account, the robot's dashboard login (required with -keyring)")
	version := fs.Bool("version", false, "print build information and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if *version {
		fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}
	if *useKeyring && *user == "" {
		log.Error().Msg("-keyring requires -user")
		os.Exit(2)
	}

	snippet, err := provision.Run(
		provision.NewGenerator(crypto.NewKeyChainService()),
		provision.Options{Keyring: *useKeyring, User: *user},
	)
	if errors.Is(err, provision.ErrUserQuit) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("provisioning failed")
	}

	fmt.Println("Copie para o config.ini:")
	fmt.Println()
	fmt.Print(snippet)
}
