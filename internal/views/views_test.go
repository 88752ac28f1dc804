package views

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-sender/internal/controllers"
	"tg-sender/internal/models"
	"tg-sender/internal/views/components"
)

var _ controllers.View = (*MainView)(nil)

var labels = []string{"Message 1", "Message 2", "Message 3", "Message 4", "Message 5"}

func TestLoginForm_GetCodePassesPhone(t *testing.T) {
	test.NewTempApp(t)

	var got string
	form := NewLoginForm()
	form.SetRequestCodeHandler(func(phone string) { got = phone })

	test.Type(form.PhoneEntry, "+15551234567")
	test.Tap(form.GetCodeButton)

	assert.Equal(t, "+15551234567", got)
}

func TestLoginForm_SignInPassesAllFields(t *testing.T) {
	test.NewTempApp(t)

	var phone, code, password string
	form := NewLoginForm()
	form.SetSignInHandler(func(p, c, pw string) { phone, code, password = p, c, pw })

	form.PhoneEntry.SetText("+1555")
	form.CodeEntry.SetText("12345")
	form.PasswordEntry.SetText("hunter2")
	test.Tap(form.SignInButton)

	assert.Equal(t, "+1555", phone)
	assert.Equal(t, "12345", code)
	assert.Equal(t, "hunter2", password)
	assert.True(t, form.PasswordEntry.Password)
}

func TestLoginForm_NoHandlerIsSafe(t *testing.T) {
	test.NewTempApp(t)

	form := NewLoginForm()
	assert.NotPanics(t, func() {
		test.Tap(form.GetCodeButton)
		test.Tap(form.SignInButton)
	})
}

func TestSendForm_DefaultsToFirstTemplate(t *testing.T) {
	test.NewTempApp(t)

	form := NewSendForm(models.Account{FirstName: "Ann", Username: "ann"}, labels)

	assert.Equal(t, 0, form.TemplateSelect.SelectedIndex())
	assert.Equal(t, "Message 1", form.TemplateSelect.Selected)
	assert.Equal(t, "Account: Ann (@ann)", form.AccountLabel.Text)
}

func TestSendForm_SendPassesHandleAndIndex(t *testing.T) {
	test.NewTempApp(t)

	var handle string
	index := -1
	form := NewSendForm(models.Account{FirstName: "Ann"}, labels)
	form.SetSendHandler(func(h string, i int) { handle, index = h, i })

	form.HandleEntry.SetText("@bob")
	form.TemplateSelect.SetSelectedIndex(3)
	test.Tap(form.SendButton)

	assert.Equal(t, "@bob", handle)
	assert.Equal(t, 3, index)
}

func TestMainView_SwitchesForms(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	defer w.Close()

	var requested string
	view := NewMainView(w, labels, Handlers{
		RequestCode: func(phone string) { requested = phone },
	})

	view.ShowLogin()
	require.NotNil(t, view.Login())
	assert.Nil(t, view.Send())
	assert.Equal(t, view.Login().Container(), w.Content())

	view.SetLoginStatus("Code sent. Enter it below.", models.ToneSuccess)
	assert.Equal(t, "Code sent. Enter it below.", view.Login().Status.Text())
	assert.Equal(t, widget.SuccessImportance, view.Login().Status.Widget().Importance)

	view.Login().PhoneEntry.SetText("+1")
	test.Tap(view.Login().GetCodeButton)
	assert.Equal(t, "+1", requested)

	view.ShowMain(models.Account{FirstName: "Ann"})
	assert.Nil(t, view.Login())
	require.NotNil(t, view.Send())
	assert.Equal(t, view.Send().Container(), w.Content())

	assert.NotPanics(t, func() {
		view.SetLoginStatus("late", models.ToneError)
	})

	view.SetSendStatus("Sending...", models.ToneNeutral)
	assert.Equal(t, "Sending...", view.Send().Status.Text())
	assert.Equal(t, models.ToneNeutral, view.Send().Status.Tone())
}

func TestMainView_SendStatusBeforeMainIsDropped(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	defer w.Close()

	view := NewMainView(w, labels, Handlers{})
	view.ShowLogin()

	assert.NotPanics(t, func() {
		view.SetSendStatus("ignored", models.ToneError)
	})
}

func TestImportance(t *testing.T) {
	assert.Equal(t, widget.MediumImportance, components.Importance(models.ToneNeutral))
	assert.Equal(t, widget.SuccessImportance, components.Importance(models.ToneSuccess))
	assert.Equal(t, widget.DangerImportance, components.Importance(models.ToneError))
}
