package app

import (
	"context"

	"tg-sender/internal/models"
)

type sessionRestorer interface {
	Restore(ctx context.Context) (models.Account, bool, error)
}

// showInitialView opens Main for a restored account and Login otherwise
func (a *Application) showInitialView() {
	account, authorized := a.restoreSession()
	a.controller.Start(account, authorized)
}

// restoreSession checks a persisted session before the window is shown.
// Any failure falls back to the login form.
func (a *Application) restoreSession() (models.Account, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.StartupTimeout)
	defer cancel()

	account, ok, err := a.restorer.Restore(ctx)
	if err != nil {
		a.logger.Error("Lifecycle", err, map[string]interface{}{
			"op":           "restore session",
			"session_file": a.config.SessionFile,
		})
		return models.Account{}, false
	}

	if ok {
		a.logger.Info("Lifecycle", "session restored", map[string]interface{}{
			"account": account.DisplayName(),
		})
	} else {
		a.logger.Debug("Lifecycle", "no authorized session", nil)
	}
	return account, ok
}
