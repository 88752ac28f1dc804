package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"tg-sender/internal/models"
)

// StatusLabel is a single line of feedback under a form
type StatusLabel struct {
	label *widget.Label
	tone  models.Tone
}

// NewStatusLabel creates an empty status label
func NewStatusLabel() *StatusLabel {
	label := widget.NewLabel("")
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	return &StatusLabel{label: label, tone: models.ToneNeutral}
}

// SetStatus replaces the text and colour. Must run on the GUI thread.
func (s *StatusLabel) SetStatus(text string, tone models.Tone) {
	s.tone = tone
	s.label.Importance = Importance(tone)
	s.label.SetText(text)
}

func (s *StatusLabel) Text() string {
	return s.label.Text
}

func (s *StatusLabel) Tone() models.Tone {
	return s.tone
}

func (s *StatusLabel) Widget() *widget.Label {
	return s.label
}

// Importance maps a status tone to the label colour
func Importance(tone models.Tone) widget.Importance {
	switch tone {
	case models.ToneSuccess:
		return widget.SuccessImportance
	case models.ToneError:
		return widget.DangerImportance
	default:
		return widget.MediumImportance
	}
}
