package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"tg-sender/internal/models"
	"tg-sender/internal/views/components"
)

// SendForm picks a recipient and a template
type SendForm struct {
	container *fyne.Container

	AccountLabel   *widget.Label
	HandleEntry    *widget.Entry
	TemplateSelect *widget.Select
	SendButton     *widget.Button
	Status         *components.StatusLabel

	sendHandler func(handle string, index int)
}

func NewSendForm(account models.Account, labels []string) *SendForm {
	form := &SendForm{}
	form.createComponents(account, labels)
	form.buildLayout()
	return form
}

func (f *SendForm) createComponents(account models.Account, labels []string) {
	f.AccountLabel = widget.NewLabelWithStyle("Account: "+account.DisplayName(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	f.HandleEntry = widget.NewEntry()
	f.HandleEntry.SetPlaceHolder("@username")

	f.TemplateSelect = widget.NewSelect(labels, nil)
	if len(labels) > 0 {
		f.TemplateSelect.SetSelectedIndex(0)
	}

	f.SendButton = widget.NewButton("Send", func() {
		if f.sendHandler != nil {
			f.sendHandler(f.HandleEntry.Text, f.TemplateSelect.SelectedIndex())
		}
	})
	f.SendButton.Importance = widget.HighImportance

	f.Status = components.NewStatusLabel()
}

func (f *SendForm) buildLayout() {
	f.container = components.FormColumn(
		f.AccountLabel,
		components.Caption("Recipient username (@username):"),
		f.HandleEntry,
		components.Caption("Message:"),
		f.TemplateSelect,
		f.SendButton,
		f.Status.Widget(),
	)
}

func (f *SendForm) SetSendHandler(handler func(handle string, index int)) {
	f.sendHandler = handler
}

func (f *SendForm) Container() *fyne.Container {
	return f.container
}
