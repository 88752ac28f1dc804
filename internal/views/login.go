package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"tg-sender/internal/views/components"
)

// LoginForm collects phone, code and 2FA password
type LoginForm struct {
	container *fyne.Container

	PhoneEntry    *widget.Entry
	CodeEntry     *widget.Entry
	PasswordEntry *widget.Entry
	GetCodeButton *widget.Button
	SignInButton  *widget.Button
	Status        *components.StatusLabel

	requestCodeHandler func(phone string)
	signInHandler      func(phone, code, password string)
}

func NewLoginForm() *LoginForm {
	form := &LoginForm{}
	form.createComponents()
	form.buildLayout()
	return form
}

func (f *LoginForm) createComponents() {
	f.PhoneEntry = widget.NewEntry()
	f.PhoneEntry.SetPlaceHolder("+15551234567")

	f.CodeEntry = widget.NewEntry()
	f.PasswordEntry = widget.NewPasswordEntry()

	f.GetCodeButton = widget.NewButton("Get code", func() {
		if f.requestCodeHandler != nil {
			f.requestCodeHandler(f.PhoneEntry.Text)
		}
	})

	f.SignInButton = widget.NewButton("Sign in", func() {
		if f.signInHandler != nil {
			f.signInHandler(f.PhoneEntry.Text, f.CodeEntry.Text, f.PasswordEntry.Text)
		}
	})
	f.SignInButton.Importance = widget.HighImportance

	f.Status = components.NewStatusLabel()
}

func (f *LoginForm) buildLayout() {
	f.container = components.FormColumn(
		components.Caption("Phone number:"),
		f.PhoneEntry,
		f.GetCodeButton,
		components.Caption("Confirmation code (from Telegram):"),
		f.CodeEntry,
		components.Caption("2FA password (if set):"),
		f.PasswordEntry,
		f.Status.Widget(),
		f.SignInButton,
	)
}

func (f *LoginForm) SetRequestCodeHandler(handler func(phone string)) {
	f.requestCodeHandler = handler
}

func (f *LoginForm) SetSignInHandler(handler func(phone, code, password string)) {
	f.signInHandler = handler
}

func (f *LoginForm) Container() *fyne.Container {
	return f.container
}
