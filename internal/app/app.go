package app

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/core"
	"github.com/rublebank/rubank/internal/gateway"
	"github.com/rublebank/rubank/internal/notify"
	"github.com/rublebank/rubank/internal/session"
	"github.com/rublebank/rubank/internal/transfer"
	"github.com/rublebank/rubank/internal/view"
)

// App wires the client components together: the session store, the
// remote gateway, the transfer orchestrator, the history cache, the
// view controller, and the notification sink.
type App struct {
	cfg      *Config
	Session  *session.Store
	Gateway  core.Gateway
	History  *transfer.History
	Transfer *transfer.Service
	View     *view.Controller
	Notifier core.Notifier
	Logger   *zap.Logger

	out io.Writer
	in  io.Reader
}

func New(cfg *Config, logger *zap.Logger) (*App, error) {
	statePath := cfg.StatePath
	if statePath == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session state path: %w", err)
		}
		statePath = p
	}

	sess := session.NewStore(statePath, logger)
	if restored := sess.Restore(); restored != nil {
		logger.Debug("Session restored",
			zap.Int64("user_id", restored.ID),
			zap.String("username", restored.Username))
	}

	notifier := notify.NewWriter(os.Stdout)
	gw := gateway.NewClient(gateway.Config{
		AuthURL:         cfg.AuthURL,
		TransactionsURL: cfg.TransactionsURL,
		BalanceURL:      cfg.BalanceURL,
	}, nil, logger)

	history := transfer.NewHistory(gw, sess, notifier, logger)
	transferService := transfer.NewService(gw, sess, history, logger)
	viewController := view.NewController(sess, history.Load, logger)

	return &App{
		cfg:      cfg,
		Session:  sess,
		Gateway:  gw,
		History:  history,
		Transfer: transferService,
		View:     viewController,
		Notifier: notifier,
		Logger:   logger,
		out:      os.Stdout,
		in:       os.Stdin,
	}, nil
}
