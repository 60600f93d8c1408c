package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/session"
)

// Screen names one of the client's fixed views.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenHome     Screen = "home"
	ScreenTransfer Screen = "transfer"
	ScreenHistory  Screen = "history"
	ScreenProfile  Screen = "profile"
)

// HistoryLoadFunc is the transition action fired on every entry into
// the history screen.
type HistoryLoadFunc func(ctx context.Context) error

// Controller tracks which screen is active. Navigation between the
// authenticated screens is free; the login screen is forced whenever no
// session is live, regardless of the prior screen.
type Controller struct {
	session     *session.Store
	loadHistory HistoryLoadFunc
	active      Screen
	logger      *zap.Logger
}

func NewController(sess *session.Store, loadHistory HistoryLoadFunc, logger *zap.Logger) *Controller {
	c := &Controller{
		session:     sess,
		loadHistory: loadHistory,
		active:      ScreenLogin,
		logger:      logger,
	}
	if sess.Authenticated() {
		c.active = ScreenHome
	}
	return c
}

// Active returns the currently visible screen.
func (c *Controller) Active() Screen {
	return c.active
}

// Navigate moves to the requested screen. Entering history fires one
// fresh data load; re-entering fires another. The load's own error
// reporting already happened by the time Navigate returns.
func (c *Controller) Navigate(ctx context.Context, target Screen) error {
	if !c.session.Authenticated() {
		c.active = ScreenLogin
		return nil
	}

	c.active = target
	c.logger.Debug("Screen changed", zap.String("screen", string(target)))

	if target == ScreenHistory && c.loadHistory != nil {
		return c.loadHistory(ctx)
	}
	return nil
}

// SignedIn lands a freshly authenticated session on the default screen.
func (c *Controller) SignedIn() {
	c.active = ScreenHome
}

// Logout clears the session and resets the view to the login screen.
func (c *Controller) Logout() {
	c.session.Clear()
	c.active = ScreenLogin
}
