package rpa

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-rpa-cadastro/internal/browser"
	"github.com/MKhiriev/go-rpa-cadastro/internal/config"
	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/mock"
	"github.com/MKhiriev/go-rpa-cadastro/models"
)

const (
	testLoginURL     = "https://rpa.example/login"
	testDashboardURL = "https://rpa.example/dashboard"
	testWait         = 50 * time.Millisecond
)

var errBrowser = errors.New("element not interactable")

func testRetry() config.Retry {
	return config.Retry{
		LoginAttempts:         3,
		LoginPause:            time.Millisecond,
		DownloadAttempts:      3,
		DownloadPoll:          time.Millisecond,
		DownloadTimeout:       20 * time.Millisecond,
		DownloadRecoveryPause: time.Millisecond,
		DownloadRecoveryWait:  testWait,
		RecordAttempts:        3,
		SubmitPause:           time.Millisecond,
		RefreshPause:          time.Millisecond,
	}
}

func newTestRunner(t *testing.T, launcher browser.Launcher) *Runner {
	t.Helper()
	app := config.App{
		LoginURL:     testLoginURL,
		DashboardURL: testDashboardURL,
		DownloadDir:  t.TempDir(),
	}
	return NewRunner(launcher, app, testRetry(), testWait, logger.Nop())
}

func TestAttempts(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "three tries", n: 3, want: 3},
		{name: "single try", n: 1, want: 1},
		{name: "zero is clamped to one", n: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := attempts(tt.n, 0)
			tries := 1
			for {
				if _, stop := b.Next(); stop {
					break
				}
				tries++
			}
			assert.Equal(t, tt.want, tries)
		})
	}
}

func TestPause_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pause(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

// ─────────────────────────────────────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────────────────────────────────────

func expectSignIn(drv *mock.MockDriver, password string, final error) {
	gomock.InOrder(
		drv.EXPECT().Navigate(gomock.Any(), testLoginURL).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selUsername, testWait).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selUsername, "robot").Return(nil),
		drv.EXPECT().Type(gomock.Any(), selPassword, password).Return(nil),
		drv.EXPECT().Click(gomock.Any(), selLogin).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(final),
	)
}

func TestRunner_Login_FirstAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := mock.NewMockLauncher(ctrl)
	drv := mock.NewMockDriver(ctrl)

	launcher.EXPECT().Launch(gomock.Any()).Return(drv, nil).Times(1)
	expectSignIn(drv, "SENHA_APP", nil)

	r := newTestRunner(t, launcher)
	got, err := r.Login(context.Background(), "robot", credentials.Secret("SENHA_APP"))
	require.NoError(t, err)
	assert.Same(t, drv, got)
}

func TestRunner_Login_RetriesWithFreshBrowser(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := mock.NewMockLauncher(ctrl)
	first := mock.NewMockDriver(ctrl)
	second := mock.NewMockDriver(ctrl)

	gomock.InOrder(
		launcher.EXPECT().Launch(gomock.Any()).Return(first, nil),
		launcher.EXPECT().Launch(gomock.Any()).Return(second, nil),
	)
	expectSignIn(first, "pw", errBrowser)
	first.EXPECT().Close().Return(nil)
	expectSignIn(second, "pw", nil)

	r := newTestRunner(t, launcher)
	got, err := r.Login(context.Background(), "robot", credentials.Secret("pw"))
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRunner_Login_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := mock.NewMockLauncher(ctrl)

	launcher.EXPECT().Launch(gomock.Any()).Return(nil, errBrowser).Times(3)

	r := newTestRunner(t, launcher)
	got, err := r.Login(context.Background(), "robot", credentials.Secret("pw"))
	require.ErrorIs(t, err, ErrLoginFailed)
	require.ErrorIs(t, err, errBrowser)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRunner_Login_ErrorNeverCarriesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := mock.NewMockLauncher(ctrl)
	drv := mock.NewMockDriver(ctrl)

	launcher.EXPECT().Launch(gomock.Any()).Return(drv, nil).Times(3)
	drv.EXPECT().Navigate(gomock.Any(), testLoginURL).Return(nil).Times(3)
	drv.EXPECT().WaitClickable(gomock.Any(), selUsername, testWait).Return(nil).Times(3)
	drv.EXPECT().Type(gomock.Any(), selUsername, "robot").Return(nil).Times(3)
	drv.EXPECT().Type(gomock.Any(), selPassword, "hunter2").Return(errBrowser).Times(3)
	drv.EXPECT().Close().Return(nil).Times(3)

	r := newTestRunner(t, launcher)
	_, err := r.Login(context.Background(), "robot", credentials.Secret("hunter2"))
	require.ErrorIs(t, err, ErrLoginFailed)
	assert.NotContains(t, err.Error(), "hunter2")
}

// ─────────────────────────────────────────────────────────────────────────────
// Download
// ─────────────────────────────────────────────────────────────────────────────

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("xlsx"), 0o600))
}

func TestRunner_Download_RemovesStaleFilesAndReturnsNewOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	stale := filepath.Join(r.app.DownloadDir, "old.xlsx")
	writeFile(t, stale)
	fresh := filepath.Join(r.app.DownloadDir, "challenge.xlsx")

	drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil)
	drv.EXPECT().Click(gomock.Any(), selDownload).DoAndReturn(func(context.Context, browser.Selector) error {
		assert.NoFileExists(t, stale)
		writeFile(t, fresh)
		return nil
	})

	got, err := r.Download(context.Background(), drv)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestRunner_Download_RecoversOnRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))
	fresh := filepath.Join(r.app.DownloadDir, "challenge.xlsx")

	gomock.InOrder(
		drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil),
		// the click does not produce a file: the attempt times out
		drv.EXPECT().Click(gomock.Any(), selDownload).Return(nil),

		drv.EXPECT().Navigate(gomock.Any(), testDashboardURL).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil),
		drv.EXPECT().Click(gomock.Any(), selDownload).DoAndReturn(func(context.Context, browser.Selector) error {
			writeFile(t, fresh)
			return nil
		}),
	)

	got, err := r.Download(context.Background(), drv)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestRunner_Download_RecoveryFailureCountsAsAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(errBrowser).Times(1)
	drv.EXPECT().Navigate(gomock.Any(), testDashboardURL).Return(errBrowser).Times(2)

	_, err := r.Download(context.Background(), drv)
	require.ErrorIs(t, err, ErrDownloadFailed)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRunner_Download_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	drv.EXPECT().Navigate(gomock.Any(), testDashboardURL).Return(nil).Times(2)
	drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil).Times(5)
	drv.EXPECT().Click(gomock.Any(), selDownload).Return(nil).Times(3)

	got, err := r.Download(context.Background(), drv)
	require.ErrorIs(t, err, ErrDownloadFailed)
	require.ErrorIs(t, err, errDownloadTimeout)
	assert.Empty(t, got)
}

func TestRunner_Download_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	drv.EXPECT().WaitClickable(gomock.Any(), selDownload, testWait).Return(nil)
	drv.EXPECT().Click(gomock.Any(), selDownload).DoAndReturn(func(context.Context, browser.Selector) error {
		cancel()
		return nil
	})

	_, err := r.Download(ctx, drv)
	require.ErrorIs(t, err, ErrDownloadFailed)
	require.ErrorIs(t, err, context.Canceled)
}

// ─────────────────────────────────────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────────────────────────────────────

func employee(row int, name, email, role string) models.Employee {
	return models.Employee{
		Row:     row,
		Name:    name,
		Surname: "Silva",
		Email:   email,
		Role:    role,
		Company: "ACME",
		Address: "Rua A, 1",
		Phone:   "11999990000",
	}
}

// expectForm records one complete, successful form submission for e.
func expectForm(drv *mock.MockDriver, e models.Employee) {
	expectFormThen(drv, e, func() {})
}

// expectFormThen is expectForm with a hook run when the frame is left.
func expectFormThen(drv *mock.MockDriver, e models.Employee, left func()) {
	gomock.InOrder(
		drv.EXPECT().EnterFrame(gomock.Any(), registerFrameID, testWait).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selName, testWait).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selName, e.Name).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selSurname, e.Surname).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selEmail, e.Email).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selRole, e.Role).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selCompany, e.Company).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selAddress, e.Address).Return(nil),
		drv.EXPECT().Type(gomock.Any(), selPhone, e.Phone).Return(nil),
		drv.EXPECT().Click(gomock.Any(), selSubmit).Return(nil),
		drv.EXPECT().LeaveFrame().Do(left),
	)
}

func expectOpenForm(drv *mock.MockDriver) {
	drv.EXPECT().WaitClickable(gomock.Any(), selOpenForm, testWait).Return(nil)
	drv.EXPECT().Click(gomock.Any(), selOpenForm).Return(nil)
}

func TestRunner_Register_AllRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	records := []models.Employee{
		employee(2, "Ana", "ana@acme.com", "Analista"),
		employee(3, "Bruno", "bruno@acme.com", "Gerente"),
	}
	expectOpenForm(drv)
	expectForm(drv, records[0])
	expectForm(drv, records[1])

	summary, err := r.Register(context.Background(), drv, records)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Successes)
	assert.Equal(t, 0, summary.Failures)
	require.Len(t, summary.Results, 2)
	for i, res := range summary.Results {
		assert.Equal(t, records[i].Row, res.Row)
		assert.Equal(t, models.RecordRegistered, res.Status)
		assert.Equal(t, 1, res.Attempts)
	}
}

func TestRunner_Register_SkipsIncompleteRecords(t *testing.T) {
	tests := []struct {
		name string
		emp  models.Employee
	}{
		{name: "missing name", emp: employee(2, "", "x@acme.com", "Analista")},
		{name: "missing email", emp: employee(2, "Ana", "", "Analista")},
		{name: "missing role", emp: employee(2, "Ana", "ana@acme.com", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			drv := mock.NewMockDriver(ctrl)
			r := newTestRunner(t, mock.NewMockLauncher(ctrl))
			expectOpenForm(drv)

			summary, err := r.Register(context.Background(), drv, []models.Employee{tt.emp})
			require.NoError(t, err)
			assert.Equal(t, 0, summary.Successes)
			assert.Equal(t, 1, summary.Failures)
			require.Len(t, summary.Results, 1)
			assert.Equal(t, models.RecordSkipped, summary.Results[0].Status)
			assert.Zero(t, summary.Results[0].Attempts)
		})
	}
}

func TestRunner_Register_RetriesSameRecordAfterReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))
	e := employee(2, "Ana", "ana@acme.com", "Analista")

	expectOpenForm(drv)
	gomock.InOrder(
		drv.EXPECT().EnterFrame(gomock.Any(), registerFrameID, testWait).Return(errBrowser),
		drv.EXPECT().LeaveFrame(),
		drv.EXPECT().Reload(gomock.Any()).Return(nil),
	)
	expectForm(drv, e)

	summary, err := r.Register(context.Background(), drv, []models.Employee{e})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successes)
	assert.Equal(t, 2, summary.Results[0].Attempts)
}

func TestRunner_Register_ExhaustedRecordDoesNotStopPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))
	bad := employee(2, "Ana", "ana@acme.com", "Analista")
	good := employee(3, "Bruno", "bruno@acme.com", "Gerente")

	expectOpenForm(drv)
	gomock.InOrder(
		drv.EXPECT().EnterFrame(gomock.Any(), registerFrameID, testWait).Return(errBrowser),
		drv.EXPECT().LeaveFrame(),
		drv.EXPECT().Reload(gomock.Any()).Return(errors.New("reload failed")),
		drv.EXPECT().EnterFrame(gomock.Any(), registerFrameID, testWait).Return(errBrowser),
		drv.EXPECT().LeaveFrame(),
		drv.EXPECT().Reload(gomock.Any()).Return(nil),
		drv.EXPECT().EnterFrame(gomock.Any(), registerFrameID, testWait).Return(errBrowser),
		// no reload after the last attempt
		drv.EXPECT().LeaveFrame(),
	)
	expectForm(drv, good)

	summary, err := r.Register(context.Background(), drv, []models.Employee{bad, good})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successes)
	assert.Equal(t, 1, summary.Failures)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, models.RecordFailed, summary.Results[0].Status)
	assert.Equal(t, 3, summary.Results[0].Attempts)
	assert.Contains(t, summary.Results[0].Error, errBrowser.Error())
	assert.Equal(t, models.RecordRegistered, summary.Results[1].Status)
}

func TestRunner_Register_PageNotOpened(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	drv.EXPECT().WaitClickable(gomock.Any(), selOpenForm, testWait).Return(errBrowser)

	summary, err := r.Register(context.Background(), drv, []models.Employee{employee(2, "Ana", "a@b.c", "X")})
	require.ErrorIs(t, err, ErrRegisterPage)
	assert.Zero(t, summary.Total())
}

func TestRunner_Register_CancelledBetweenRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))
	first := employee(2, "Ana", "ana@acme.com", "Analista")
	second := employee(3, "Bruno", "bruno@acme.com", "Gerente")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expectOpenForm(drv)
	expectFormThen(drv, first, cancel)

	summary, err := r.Register(ctx, drv, []models.Employee{first, second})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Total())
}

// ─────────────────────────────────────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────────────────────────────────────

func TestRunner_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	gomock.InOrder(
		drv.EXPECT().LeaveFrame(),
		drv.EXPECT().WaitClickable(gomock.Any(), selLogout, testWait).Return(nil),
		drv.EXPECT().Click(gomock.Any(), selLogout).Return(nil),
		drv.EXPECT().WaitClickable(gomock.Any(), selUsername, testWait).Return(nil),
	)

	r.Logout(context.Background(), drv)
}

func TestRunner_Logout_FailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mock.NewMockDriver(ctrl)
	r := newTestRunner(t, mock.NewMockLauncher(ctrl))

	drv.EXPECT().LeaveFrame()
	drv.EXPECT().WaitClickable(gomock.Any(), selLogout, testWait).Return(errBrowser)

	assert.NotPanics(t, func() { r.Logout(context.Background(), drv) })
}
