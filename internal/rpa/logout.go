package rpa

import (
	"context"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
)

// Logout clicks "Sair" and waits for the login form. It is best effort:
// failures are only logged, the session may already be gone.
func (r *Runner) Logout(ctx context.Context, drv browser.Driver) {
	r.logger.Info().Msg("logging out")
	drv.LeaveFrame()

	err := drv.WaitClickable(ctx, selLogout, r.wait)
	if err == nil {
		err = drv.Click(ctx, selLogout)
	}
	if err == nil {
		err = drv.WaitClickable(ctx, selUsername, r.wait)
	}

	if err != nil {
		r.logger.Warn().Err(err).Msg("logout problem, the session may already be closed")
		return
	}
	r.logger.Info().Msg("logged out")
}
