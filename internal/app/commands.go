package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rublebank/rubank/internal/gateway"
	"github.com/rublebank/rubank/internal/model"
	"github.com/rublebank/rubank/internal/transfer"
	"github.com/rublebank/rubank/internal/view"
)

const connectionFailureMessage = "could not reach the server"

// Run reads commands until EOF or quit. Each command completes before
// the next prompt is shown, so at most one gateway call of a given kind
// is ever in flight.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Ruble Bank - your virtual rubles, safe and sound")
	a.render(ctx)

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		a.dispatch(ctx, fields[0], fields[1:])

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func (a *App) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "help":
		a.printHelp()
	case "login":
		a.handleAuthenticate(ctx, gateway.ActionLogin, args)
	case "register":
		a.handleAuthenticate(ctx, gateway.ActionRegister, args)
	case "logout":
		a.handleLogout()
	case "send":
		a.handleSend(ctx, args)
	case "home", "transfer", "history", "profile":
		a.handleNavigate(ctx, view.Screen(command))
	default:
		fmt.Fprintf(a.out, "unknown command %q, try \"help\"\n", command)
	}
}

func (a *App) handleAuthenticate(ctx context.Context, action string, args []string) {
	creds := model.Credentials{}
	switch action {
	case gateway.ActionLogin:
		if len(args) != 2 {
			fmt.Fprintln(a.out, "usage: login <username> <password>")
			return
		}
		creds.Username, creds.Password = args[0], args[1]
	case gateway.ActionRegister:
		if len(args) < 3 {
			fmt.Fprintln(a.out, "usage: register <username> <password> <full name>")
			return
		}
		creds.Username, creds.Password = args[0], args[1]
		creds.FullName = strings.Join(args[2:], " ")
	}

	identity, err := a.Gateway.Authenticate(ctx, action, creds)
	if err != nil {
		a.Notifier.Notify(model.Notification{
			Title:       "Error",
			Description: userMessage(err),
			Severity:    model.SeverityDestructive,
		})
		return
	}

	a.Session.Set(identity)
	a.View.SignedIn()

	title := "Welcome back!"
	if action == gateway.ActionRegister {
		title = "Registration complete!"
	}
	a.Notifier.Notify(model.Notification{Title: title, Description: identity.FullName})
	a.render(ctx)
}

func (a *App) handleLogout() {
	if !a.Session.Authenticated() {
		fmt.Fprintln(a.out, "not signed in")
		return
	}
	a.View.Logout()
	a.Notifier.Notify(model.Notification{Title: "Signed out"})
}

func (a *App) handleSend(ctx context.Context, args []string) {
	if !a.Session.Authenticated() {
		fmt.Fprintln(a.out, "sign in first")
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: send <recipient> <amount> [description]")
		return
	}

	req := &model.TransferRequest{
		ToUsername:  args[0],
		Amount:      args[1],
		Description: strings.Join(args[2:], " "),
	}

	historyActive := a.View.Active() == view.ScreenHistory
	if err := a.Transfer.Submit(ctx, req, historyActive); err != nil {
		a.Notifier.Notify(model.Notification{
			Title:       "Error",
			Description: userMessage(err),
			Severity:    model.SeverityDestructive,
		})
		return
	}

	a.Notifier.Notify(model.Notification{
		Title:       "Transfer sent!",
		Description: fmt.Sprintf("new balance: %s", a.Session.Current().Balance.StringFixed(2)),
	})
	if historyActive {
		a.renderHistory()
	}
}

func (a *App) handleNavigate(ctx context.Context, target view.Screen) {
	if !a.Session.Authenticated() {
		fmt.Fprintln(a.out, "sign in first")
		return
	}
	// History load failures were already reported by the loader; the
	// cached records below are still worth showing.
	_ = a.View.Navigate(ctx, target)
	a.render(ctx)
}

func (a *App) render(ctx context.Context) {
	switch a.View.Active() {
	case view.ScreenLogin:
		fmt.Fprintln(a.out, "sign in with \"login <username> <password>\" or \"register <username> <password> <full name>\"")
	case view.ScreenHome:
		a.renderBalance()
		fmt.Fprintln(a.out, "commands: send, history, profile, transfer, logout, quit")
	case view.ScreenTransfer:
		a.renderBalance()
		fmt.Fprintln(a.out, "usage: send <recipient> <amount> [description]")
	case view.ScreenHistory:
		a.renderHistory()
	case view.ScreenProfile:
		a.renderProfile()
	}
}

func (a *App) renderBalance() {
	current := a.Session.Current()
	if current == nil {
		return
	}
	fmt.Fprintf(a.out, "%s (@%s), balance %s ₽\n", current.FullName, current.Username, current.Balance.StringFixed(2))
}

func (a *App) renderProfile() {
	current := a.Session.Current()
	if current == nil {
		return
	}
	fmt.Fprintf(a.out, "id:        %d\n", current.ID)
	fmt.Fprintf(a.out, "username:  %s\n", current.Username)
	fmt.Fprintf(a.out, "full name: %s\n", current.FullName)
	fmt.Fprintf(a.out, "balance:   %s ₽\n", current.Balance.StringFixed(2))
}

func (a *App) renderHistory() {
	current := a.Session.Current()
	if current == nil {
		return
	}

	records := a.History.Records()
	if len(records) == 0 {
		fmt.Fprintln(a.out, "no transactions yet")
		return
	}

	a.renderBalance()
	for _, rec := range records {
		sign := "-"
		label := "to"
		if rec.Direction(current.ID) == model.DirectionIncoming {
			sign = "+"
			label = "from"
		}
		other := rec.Counterparty(current.ID)
		line := fmt.Sprintf("%s  %s%s ₽  %s %s (@%s)",
			rec.Date.Format("2006-01-02 15:04"), sign, rec.Amount.StringFixed(2), label, other.FullName, other.Username)
		if rec.Description != "" {
			line += "  " + rec.Description
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `commands:
  login <username> <password>
  register <username> <password> <full name>
  send <recipient> <amount> [description]
  home | transfer | history | profile
  logout
  quit`)
}

// userMessage maps an operation error to the text shown to the user:
// server-classified messages verbatim, everything else as a generic
// connection failure.
func userMessage(err error) string {
	var validationErr *transfer.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var authErr *gateway.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var transferErr *gateway.TransferError
	if errors.As(err, &transferErr) && transferErr.Message != "" {
		return transferErr.Message
	}
	return connectionFailureMessage
}
