package models

// Tone is how a status line is presented
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneError
)

// Screen is the view currently shown in the window
type Screen int

const (
	ScreenNone Screen = iota
	ScreenLogin
	ScreenMain
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenMain:
		return "main"
	default:
		return "none"
	}
}
