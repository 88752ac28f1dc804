package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FormColumn stacks rows top to bottom with window padding
func FormColumn(objects ...fyne.CanvasObject) *fyne.Container {
	return container.NewPadded(container.NewVBox(objects...))
}

// Caption is a centred label placed above an input
func Caption(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{})
}
