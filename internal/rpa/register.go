package rpa

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

// Register opens the registration page once and submits one form per
// employee. A record missing its name, email or role is skipped and counted
// as a failure. A record whose attempts are all exhausted is counted as a
// failure and the pass moves on to the next one.
//
// Only a registration page that cannot be opened, or ctx ending, stops the
// pass early; the summary then holds the records processed so far.
func (r *Runner) Register(ctx context.Context, drv browser.Driver, employees []models.Employee) (models.RegisterSummary, error) {
	var summary models.RegisterSummary
	total := len(employees)
	r.logger.Info().Int("records", total).Msg("starting registration")

	if err := r.openRegisterPage(ctx, drv); err != nil {
		r.logger.Error().Err(err).Msg("could not open registration page, aborting")
		return summary, fmt.Errorf("%w: %w", ErrRegisterPage, err)
	}
	r.logger.Info().Msg("registration page loaded")

	for i, e := range employees {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		r.logger.Info().Int("record", i+1).Int("of", total).Msg("processing record")
		result := r.registerOne(ctx, drv, i+1, e)
		summary.Results = append(summary.Results, result)
		if result.Status == models.RecordRegistered {
			summary.Successes++
		} else {
			summary.Failures++
		}
	}

	r.logger.Info().
		Int("successes", summary.Successes).
		Int("failures", summary.Failures).
		Msg("registration finished")
	return summary, nil
}

func (r *Runner) openRegisterPage(ctx context.Context, drv browser.Driver) error {
	if err := drv.WaitClickable(ctx, selOpenForm, r.wait); err != nil {
		return err
	}
	return drv.Click(ctx, selOpenForm)
}

func (r *Runner) registerOne(ctx context.Context, drv browser.Driver, index int, e models.Employee) models.RecordResult {
	result := models.RecordResult{Row: e.Row, Email: e.Email}
	log := r.logger.With().Int("record", index).Str("email", e.Email).Logger()

	if err := r.validate.Validate(ctx, e); err != nil {
		log.Warn().Err(err).Msg("record skipped: name, email or role is missing")
		result.Status = models.RecordSkipped
		result.Error = "missing name, email or role"
		return result
	}

	total := r.retry.RecordAttempts
	err := retry.Do(ctx, attempts(total, r.retry.RefreshPause), func(ctx context.Context) error {
		result.Attempts++
		log.Info().Int("attempt", result.Attempts).Int("of", total).Str("name", e.FullName()).Msg("registration attempt")

		err := r.submitForm(ctx, drv, e)
		drv.LeaveFrame()
		if err == nil {
			return nil
		}

		log.Error().Err(err).Int("attempt", result.Attempts).Msg("registration attempt failed")
		if result.Attempts < total {
			log.Warn().Msg("reloading registration page before retrying the same record")
			if reloadErr := drv.Reload(ctx); reloadErr != nil {
				log.Warn().Err(reloadErr).Msg("reload failed")
			}
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		log.Error().Int("attempts", result.Attempts).Msg("record failed permanently")
		result.Status = models.RecordFailed
		result.Error = err.Error()
		return result
	}

	log.Info().Msg("record registered")
	result.Status = models.RecordRegistered
	return result
}

// submitForm enters the form frame, types every field and submits. The
// frame is entered anew on each attempt because a reload leaves it.
func (r *Runner) submitForm(ctx context.Context, drv browser.Driver, e models.Employee) error {
	if err := drv.EnterFrame(ctx, registerFrameID, r.wait); err != nil {
		return err
	}
	if err := drv.WaitClickable(ctx, selName, r.wait); err != nil {
		return err
	}

	fields := []struct {
		sel   browser.Selector
		value string
	}{
		{selName, e.Name},
		{selSurname, e.Surname},
		{selEmail, e.Email},
		{selRole, e.Role},
		{selCompany, e.Company},
		{selAddress, e.Address},
		{selPhone, e.Phone},
	}
	for _, f := range fields {
		if err := drv.Type(ctx, f.sel, f.value); err != nil {
			return err
		}
	}

	if err := drv.Click(ctx, selSubmit); err != nil {
		return err
	}

	// the form script clears the fields after a submit
	return pause(ctx, r.retry.SubmitPause)
}
