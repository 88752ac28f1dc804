package views

import (
	"fyne.io/fyne/v2"

	"tg-sender/internal/models"
)

// Handlers are the form actions, wired to the controller by the application
type Handlers struct {
	RequestCode func(phone string)
	SignIn      func(phone, code, password string)
	SendMessage func(handle string, index int)
}

// MainView owns the window content and swaps between the login and send
// forms. Only one form exists at a time.
type MainView struct {
	window   fyne.Window
	handlers Handlers
	labels   []string

	login *LoginForm
	send  *SendForm
}

func NewMainView(window fyne.Window, labels []string, handlers Handlers) *MainView {
	return &MainView{
		window:   window,
		handlers: handlers,
		labels:   labels,
	}
}

func (mv *MainView) ShowLogin() {
	login := NewLoginForm()
	login.SetRequestCodeHandler(mv.handlers.RequestCode)
	login.SetSignInHandler(mv.handlers.SignIn)

	mv.login = login
	mv.send = nil
	mv.window.SetContent(login.Container())
	mv.window.Canvas().Focus(login.PhoneEntry)
}

func (mv *MainView) ShowMain(account models.Account) {
	send := NewSendForm(account, mv.labels)
	send.SetSendHandler(mv.handlers.SendMessage)

	mv.send = send
	mv.login = nil
	mv.window.SetContent(send.Container())
}

// SetLoginStatus is dropped once the login form is gone
func (mv *MainView) SetLoginStatus(text string, tone models.Tone) {
	if mv.login == nil {
		return
	}
	mv.login.Status.SetStatus(text, tone)
}

func (mv *MainView) SetSendStatus(text string, tone models.Tone) {
	if mv.send == nil {
		return
	}
	mv.send.Status.SetStatus(text, tone)
}

func (mv *MainView) Login() *LoginForm {
	return mv.login
}

func (mv *MainView) Send() *SendForm {
	return mv.send
}
