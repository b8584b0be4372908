// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify e-mails the status report of a run.
//
// The report is rendered from the embedded templates and sent over SMTP
// with STARTTLS when the server offers it. It carries counts, the already
// redacted error of a failed run and the name of the log file; never a
// secret.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

var ErrSendFailed = errors.New("status e-mail not sent")

// Notifier sends status reports through one SMTP server.
type Notifier struct {
	cfg    config.Email
	logger *logger.Logger
}

func NewNotifier(cfg config.Email, log *logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, logger: log}
}

// Configured reports whether sender, recipient and server are all set.
func (n *Notifier) Configured() bool {
	return n.cfg.From != "" && n.cfg.To != "" && n.cfg.Server != ""
}

// Send renders the report for summary and mails it. password is the SMTP
// password of the sender; PLAIN auth is skipped when it is empty. An
// unconfigured notifier only logs a warning.
func (n *Notifier) Send(ctx context.Context, summary models.RunSummary, password credentials.Secret) error {
	if !n.Configured() {
		n.logger.Warn().Msg("status e-mail not sent: sender, recipient or SMTP server not configured")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	msg, err := Render(summary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	to := recipients(n.cfg.To)
	addr := net.JoinHostPort(n.cfg.Server, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if !password.IsZero() {
		auth = smtp.PlainAuth("", n.cfg.From, password.Reveal(), n.cfg.Server)
	}

	n.logger.Info().
		Str("server", addr).
		Strs("to", to).
		Bool("success", summary.Success).
		Msg("sending status e-mail")

	if err = smtp.SendMail(addr, auth, n.cfg.From, to, msg.encode(n.cfg.From, to)); err != nil {
		n.logger.Error().Err(err).Msg("could not send status e-mail")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	n.logger.Info().Msg("status e-mail sent")
	return nil
}

func recipients(list string) []string {
	var to []string
	for _, r := range strings.Split(list, ",") {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	return to
}
