package app

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"

	"tg-sender/internal/config"
	"tg-sender/internal/controllers"
	"tg-sender/internal/logger"
	"tg-sender/internal/models"
)

type stubRestorer struct {
	account models.Account
	ok      bool
	err     error
	hang    bool
}

func (p *stubRestorer) Restore(ctx context.Context) (models.Account, bool, error) {
	if p.hang {
		<-ctx.Done()
		return models.Account{}, false, ctx.Err()
	}
	return p.account, p.ok, p.err
}

type screenRecorder struct {
	loginShown int
	mainShown  []models.Account
}

func (v *screenRecorder) ShowLogin() { v.loginShown++ }

func (v *screenRecorder) ShowMain(account models.Account) {
	v.mainShown = append(v.mainShown, account)
}

func (v *screenRecorder) SetLoginStatus(string, models.Tone) {}

func (v *screenRecorder) SetSendStatus(string, models.Tone) {}

func newTestApplication(restorer sessionRestorer, view controllers.View) *Application {
	cfg := config.Default()
	cfg.StartupTimeout = 50 * time.Millisecond

	templates := models.NewTemplateSet("one", "two", "three", "four", "five")
	controller := controllers.NewMainController(nil, nil, templates, logger.NoOpLogger{})
	controller.SetView(view)

	return &Application{
		config:     cfg,
		logger:     logger.NoOpLogger{},
		restorer:   restorer,
		controller: controller,
	}
}

func TestShowInitialView(t *testing.T) {
	ann := models.Account{ID: 5, FirstName: "Ann", Username: "ann"}

	tests := []struct {
		name     string
		restorer *stubRestorer
		screen   models.Screen
		main     []models.Account
	}{
		{
			name:     "restore error falls back to login",
			restorer: &stubRestorer{err: errors.New("connection refused")},
			screen:   models.ScreenLogin,
		},
		{
			name:     "restore timeout falls back to login",
			restorer: &stubRestorer{hang: true},
			screen:   models.ScreenLogin,
		},
		{
			name:     "no stored session shows login",
			restorer: &stubRestorer{},
			screen:   models.ScreenLogin,
		},
		{
			name:     "error wins over a reported account",
			restorer: &stubRestorer{account: ann, ok: true, err: errors.New("auth status")},
			screen:   models.ScreenLogin,
		},
		{
			name:     "authorized session shows main",
			restorer: &stubRestorer{account: ann, ok: true},
			screen:   models.ScreenMain,
			main:     []models.Account{ann},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &screenRecorder{}
			a := newTestApplication(tt.restorer, view)

			done := make(chan struct{})
			go func() {
				defer close(done)
				a.showInitialView()
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("startup gate did not honour the timeout")
			}

			assert.Equal(t, tt.screen, a.controller.Screen())
			assert.Equal(t, tt.main, view.mainShown)
			if tt.screen == models.ScreenLogin {
				assert.Equal(t, 1, view.loginShown)
				assert.Equal(t, models.Unauthenticated, a.controller.State())
			} else {
				assert.Zero(t, view.loginShown)
				assert.Equal(t, models.Authorized, a.controller.State())
				assert.Equal(t, ann, a.controller.Account())
			}
		})
	}
}
