package telegram

import (
	"context"
	"io/fs"
	"os"
	"sync"

	"github.com/go-faster/errors"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/tg"

	"tg-sender/internal/logger"
	"tg-sender/internal/models"
)

type Config struct {
	APIID       int
	APIHash     string
	SessionFile string
}

// Session owns the Telegram client connection and the login state of one
// account. It is safe for concurrent use; Close must be called once the
// application is done with it.
type Session struct {
	client      *telegram.Client
	sessionFile string
	logger      logger.Logger

	runCtx    context.Context
	runCancel context.CancelFunc

	mu       sync.Mutex
	started  bool
	closed   bool
	ready    chan struct{}
	stopped  chan struct{}
	runErr   error
	state    models.AuthState
	phone    string
	codeHash string
	account  models.Account
}

func NewSession(cfg Config, log logger.Logger) *Session {
	client := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.SessionFile},
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		client:      client,
		sessionFile: cfg.SessionFile,
		logger:      log,
		runCtx:      ctx,
		runCancel:   cancel,
		state:       models.Unauthenticated,
	}
}

// Connect starts the client run loop if it is not running and waits until
// the connection is usable. A loop that stopped with an error is restarted.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		select {
		case <-s.stopped:
			s.started = false
		default:
		}
	}
	if !s.started {
		s.started = true
		s.runErr = nil
		s.ready = make(chan struct{})
		s.stopped = make(chan struct{})
		go s.run(s.ready, s.stopped)
		s.logger.Info("Session", "connecting", nil)
	}
	ready, stopped := s.ready, s.stopped
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-stopped:
		s.mu.Lock()
		err := s.runErr
		s.mu.Unlock()
		if err == nil {
			return ErrClosed
		}
		return errors.Wrap(err, "connect")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) run(ready, stopped chan struct{}) {
	defer close(stopped)

	err := s.client.Run(s.runCtx, func(ctx context.Context) error {
		close(ready)
		s.logger.Info("Session", "connected", nil)
		<-ctx.Done()
		return ctx.Err()
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	s.mu.Lock()
	s.runErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Session", err, map[string]interface{}{"op": "client run"})
	}
}

// HasStoredSession reports whether a persisted session file exists
func (s *Session) HasStoredSession() (bool, error) {
	_, err := os.Stat(s.sessionFile)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrap(err, "stat session file")
}

// Restore resumes a persisted login. Without a session file it returns
// immediately without connecting.
func (s *Session) Restore(ctx context.Context) (models.Account, bool, error) {
	exists, err := s.HasStoredSession()
	if err != nil || !exists {
		return models.Account{}, false, err
	}

	if err := s.Connect(ctx); err != nil {
		return models.Account{}, false, err
	}

	status, err := s.client.Auth().Status(ctx)
	if err != nil {
		return models.Account{}, false, errors.Wrap(err, "auth status")
	}
	if !status.Authorized || status.User == nil {
		return models.Account{}, false, nil
	}

	account := accountFromUser(status.User)
	s.setAuthorized(account)
	return account, true, nil
}

// RequestCode asks Telegram to deliver a login code to phone
func (s *Session) RequestCode(ctx context.Context, phone string) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}

	sent, err := s.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return errors.Wrap(err, "send code")
	}

	hash, err := phoneCodeHash(sent)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.phone = phone
	s.codeHash = hash
	if s.state != models.Authorized {
		s.state = models.CodeRequested
	}
	s.mu.Unlock()

	s.logger.Info("Session", "code requested", map[string]interface{}{"phone": maskPhone(phone)})
	return nil
}

// SignIn completes login with the code sent to phone. ErrPasswordNeeded is
// returned when the account requires SignInPassword.
func (s *Session) SignIn(ctx context.Context, phone, code string) (models.Account, error) {
	s.mu.Lock()
	hash, requested := s.codeHash, s.phone
	s.mu.Unlock()

	if hash == "" || requested != phone {
		return models.Account{}, ErrCodeNotRequested
	}

	if err := s.Connect(ctx); err != nil {
		return models.Account{}, err
	}

	if _, err := s.client.Auth().SignIn(ctx, phone, code, hash); err != nil {
		if errors.Is(err, auth.ErrPasswordAuthNeeded) {
			return models.Account{}, ErrPasswordNeeded
		}
		return models.Account{}, errors.Wrap(err, "sign in")
	}

	return s.loadSelf(ctx)
}

// SignInPassword completes a login that stopped at ErrPasswordNeeded
func (s *Session) SignInPassword(ctx context.Context, password string) (models.Account, error) {
	if err := s.Connect(ctx); err != nil {
		return models.Account{}, err
	}

	if _, err := s.client.Auth().Password(ctx, password); err != nil {
		return models.Account{}, errors.Wrap(err, "password sign in")
	}

	return s.loadSelf(ctx)
}

// Self returns the identity of the authorized account
func (s *Session) Self(ctx context.Context) (models.Account, error) {
	if s.State() != models.Authorized {
		return models.Account{}, ErrUnauthorized
	}
	return s.loadSelf(ctx)
}

func (s *Session) loadSelf(ctx context.Context) (models.Account, error) {
	user, err := s.client.Self(ctx)
	if err != nil {
		return models.Account{}, errors.Wrap(err, "get self")
	}

	account := accountFromUser(user)
	s.setAuthorized(account)
	return account, nil
}

// Send resolves handle and sends text to it
func (s *Session) Send(ctx context.Context, handle, text string) error {
	if s.State() != models.Authorized {
		return ErrUnauthorized
	}
	if err := s.Connect(ctx); err != nil {
		return err
	}

	sender := message.NewSender(s.client.API())
	if _, err := sender.Resolve(handle).Text(ctx, text); err != nil {
		return errors.Wrapf(err, "send to %s", handle)
	}

	s.logger.Info("Session", "message sent", map[string]interface{}{
		"recipient": handle,
		"length":    len(text),
	})
	return nil
}

func (s *Session) State() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Account() models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

func (s *Session) setAuthorized(account models.Account) {
	s.mu.Lock()
	if account.Phone == "" {
		account.Phone = s.phone
	}
	s.account = account
	s.state = models.Authorized
	s.codeHash = ""
	s.mu.Unlock()

	s.logger.Info("Session", "authorized", map[string]interface{}{
		"user_id":  account.ID,
		"username": account.Username,
	})
}

// Close stops the run loop and waits for it to exit
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started, stopped := s.started, s.stopped
	s.mu.Unlock()

	s.runCancel()
	if started {
		<-stopped
	}
	s.logger.Info("Session", "closed", nil)
}

func (s *Session) Shutdown() {
	s.Close()
}

func phoneCodeHash(sent tg.AuthSentCodeClass) (string, error) {
	switch v := sent.(type) {
	case *tg.AuthSentCode:
		return v.PhoneCodeHash, nil
	default:
		return "", errors.Errorf("unexpected sent code type %T", sent)
	}
}

func accountFromUser(u *tg.User) models.Account {
	return models.Account{
		ID:        u.ID,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		Username:  u.Username,
	}
}

// maskPhone keeps the country prefix and last two digits for logs
func maskPhone(phone string) string {
	if len(phone) <= 5 {
		return phone
	}
	masked := []byte(phone)
	for i := 3; i < len(masked)-2; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
