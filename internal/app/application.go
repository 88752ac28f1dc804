package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/go-faster/errors"

	"tg-sender/internal/bridge"
	"tg-sender/internal/config"
	"tg-sender/internal/controllers"
	"tg-sender/internal/logger"
	"tg-sender/internal/models"
	"tg-sender/internal/shutdown"
	"tg-sender/internal/telegram"
	"tg-sender/internal/views"
)

const (
	AppName      = "Telegram Sender"
	AppID        = "com.tgsender.app"
	AppVersion   = "1.0.0"
	WindowWidth  = 420
	WindowHeight = 480
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	config  config.Config
	logger  logger.Logger

	session    *telegram.Session
	restorer   sessionRestorer
	scheduler  *bridge.Scheduler
	pump       *bridge.Pump
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	templates, err := models.LoadTemplates(cfg.MessagesDir)
	if err != nil {
		return nil, errors.Wrap(err, "load templates")
	}

	session := telegram.NewSession(telegram.Config{
		APIID:       cfg.APIID,
		APIHash:     cfg.APIHash,
		SessionFile: cfg.SessionFile,
	}, log)

	scheduler := bridge.NewScheduler(log)
	pump, err := bridge.NewPump(scheduler, cfg.TickInterval, fyne.Do, log)
	if err != nil {
		return nil, errors.Wrap(err, "create pump")
	}

	controller := controllers.NewMainController(session, scheduler, templates, log)

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	view := views.NewMainView(window, templates.Labels(), views.Handlers{
		RequestCode: func(phone string) { controller.RequestCode(phone) },
		SignIn:      func(phone, code, password string) { controller.SignIn(phone, code, password) },
		SendMessage: func(handle string, index int) { controller.SendMessage(handle, index) },
	})
	controller.SetView(view)

	manager := shutdown.NewManager(log, shutdown.DefaultComponentTimeout)
	manager.Register("session", session)
	manager.Register("scheduler", scheduler)
	manager.Register("pump", pump)

	log.Info("Application", "initialized", map[string]interface{}{
		"version":       AppVersion,
		"messages_dir":  cfg.MessagesDir,
		"session_file":  cfg.SessionFile,
		"tick_interval": cfg.TickInterval.String(),
	})

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		config:     cfg,
		logger:     log,
		session:    session,
		restorer:   session,
		scheduler:  scheduler,
		pump:       pump,
		controller: controller,
		view:       view,
		shutdown:   manager,
	}, nil
}

// Run restores a persisted login, shows the matching view and blocks in the
// Fyne event loop until the window closes.
func (a *Application) Run() error {
	a.showInitialView()
	a.pump.Start()

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.logger.Info("Application", "GUI displayed", map[string]interface{}{
		"screen": a.controller.Screen().String(),
	})
	a.window.ShowAndRun()

	a.shutdown.Shutdown()
	return nil
}
