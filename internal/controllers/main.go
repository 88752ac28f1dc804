package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"tg-sender/internal/bridge"
	"tg-sender/internal/logger"
	"tg-sender/internal/models"
	"tg-sender/internal/telegram"
)

const (
	StatusPhonePrefix  = "Phone number must start with +"
	StatusHandlePrefix = "Username must start with @"
	StatusCodeSent     = "Code sent. Enter it below."
	StatusSending      = "Sending..."
)

// View is the window the controller drives. All methods are called on the
// GUI thread.
type View interface {
	ShowLogin()
	ShowMain(account models.Account)
	SetLoginStatus(text string, tone models.Tone)
	SetSendStatus(text string, tone models.Tone)
}

// Messenger performs the blocking account operations
type Messenger interface {
	RequestCode(ctx context.Context, phone string) error
	SignIn(ctx context.Context, phone, code string) (models.Account, error)
	SignInPassword(ctx context.Context, password string) (models.Account, error)
	Send(ctx context.Context, handle, text string) error
}

// Submitter queues work for the GUI tick
type Submitter interface {
	Submit(name string, work bridge.Work, onDone bridge.Continuation) *bridge.Future
}

// MainController validates form input and turns it into submitted tasks.
// Handlers and continuations both run on the GUI thread, so it keeps no lock.
type MainController struct {
	messenger Messenger
	submitter Submitter
	templates *models.TemplateSet
	logger    logger.Logger
	view      View

	screen  models.Screen
	state   models.AuthState
	account models.Account
}

func NewMainController(messenger Messenger, submitter Submitter, templates *models.TemplateSet, log logger.Logger) *MainController {
	return &MainController{
		messenger: messenger,
		submitter: submitter,
		templates: templates,
		logger:    log,
		state:     models.Unauthenticated,
	}
}

func (mc *MainController) SetView(view View) {
	mc.view = view
}

// Start shows Main when a restored account is given, Login otherwise
func (mc *MainController) Start(account models.Account, authorized bool) {
	if authorized {
		mc.authorize(account)
		return
	}

	mc.screen = models.ScreenLogin
	mc.view.ShowLogin()
	mc.logger.Info("Controller", "login view shown", nil)
}

func (mc *MainController) Screen() models.Screen {
	return mc.screen
}

func (mc *MainController) State() models.AuthState {
	return mc.state
}

func (mc *MainController) Account() models.Account {
	return mc.account
}

// RequestCode asks for a login code. It returns nil when validation fails
// and nothing was submitted.
func (mc *MainController) RequestCode(phone string) *bridge.Future {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		mc.view.SetLoginStatus(StatusPhonePrefix, models.ToneError)
		mc.logger.Debug("Controller", "phone rejected", map[string]interface{}{"reason": "missing +"})
		return nil
	}

	return mc.submitter.Submit("request_code", func(ctx context.Context) error {
		return mc.messenger.RequestCode(ctx, phone)
	}, func(err error) {
		if err != nil {
			mc.view.SetLoginStatus(fmt.Sprintf("Error: %v", err), models.ToneError)
			return
		}
		if mc.state == models.Unauthenticated {
			mc.state = models.CodeRequested
		}
		mc.view.SetLoginStatus(StatusCodeSent, models.ToneSuccess)
	})
}

// SignIn tries the code first and falls back to the 2FA password once.
// It is a no-op after the account is authorized.
func (mc *MainController) SignIn(phone, code, password string) *bridge.Future {
	if mc.state == models.Authorized {
		mc.logger.Debug("Controller", "sign in ignored, already authorized", nil)
		return nil
	}

	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	password = strings.TrimSpace(password)

	var account models.Account
	return mc.submitter.Submit("sign_in", func(ctx context.Context) error {
		var err error
		account, err = mc.messenger.SignIn(ctx, phone, code)
		return err
	}, func(err error) {
		switch {
		case errors.Is(err, telegram.ErrPasswordNeeded):
			mc.logger.Info("Controller", "second factor required", nil)
			mc.signInPassword(password)
		case err != nil:
			mc.view.SetLoginStatus(fmt.Sprintf("Sign-in failed: %v", err), models.ToneError)
		default:
			mc.authorize(account)
		}
	})
}

func (mc *MainController) signInPassword(password string) *bridge.Future {
	var account models.Account
	return mc.submitter.Submit("sign_in_password", func(ctx context.Context) error {
		var err error
		account, err = mc.messenger.SignInPassword(ctx, password)
		return err
	}, func(err error) {
		if err != nil {
			mc.view.SetLoginStatus(fmt.Sprintf("Invalid 2FA password: %v", err), models.ToneError)
			return
		}
		mc.authorize(account)
	})
}

// SendMessage delivers template index to handle. It returns nil when
// validation fails and nothing was submitted.
func (mc *MainController) SendMessage(handle string, index int) *bridge.Future {
	handle = strings.TrimSpace(handle)
	if !strings.HasPrefix(handle, "@") {
		mc.view.SetSendStatus(StatusHandlePrefix, models.ToneError)
		mc.logger.Debug("Controller", "handle rejected", map[string]interface{}{"reason": "missing @"})
		return nil
	}

	text, err := mc.templates.Text(index)
	if err != nil {
		mc.view.SetSendStatus(fmt.Sprintf("Error: %v", err), models.ToneError)
		return nil
	}

	mc.view.SetSendStatus(StatusSending, models.ToneNeutral)

	return mc.submitter.Submit("send_message", func(ctx context.Context) error {
		return mc.messenger.Send(ctx, handle, text)
	}, func(err error) {
		if err != nil {
			mc.view.SetSendStatus(fmt.Sprintf("Error: %v", err), models.ToneError)
			return
		}
		mc.view.SetSendStatus("Message sent to "+handle, models.ToneSuccess)
	})
}

// authorize is a no-op once Main is shown; the first account wins.
func (mc *MainController) authorize(account models.Account) {
	if mc.screen == models.ScreenMain {
		return
	}
	mc.state = models.Authorized
	mc.account = account
	mc.screen = models.ScreenMain
	mc.view.ShowMain(account)

	mc.logger.Info("Controller", "main view shown", map[string]interface{}{
		"account": account.DisplayName(),
	})
}
