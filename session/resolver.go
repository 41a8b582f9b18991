package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"optiondesk/broker"
)

// ErrUnresolved tags failures that left the current operation without a
// usable session. The operation is abandoned; the next user action
// retries from scratch.
var ErrUnresolved = errors.New("session unresolved")

type resolveError struct {
	step string
	err  error
}

func (e *resolveError) Error() string {
	return fmt.Sprintf("%s: %v", e.step, e.err)
}

func (e *resolveError) Unwrap() error { return e.err }

func (e *resolveError) Is(target error) bool { return target == ErrUnresolved }

// Resolver produces the durable account identity and its current
// snapshot. The id is taken, in order, from the launch-URL parameter,
// then the persisted slot; when neither yields one, a new account is
// provisioned and its id persisted.
type Resolver struct {
	svc       broker.AccountService
	store     Store
	launchURL string
	log       *zap.Logger
}

// NewResolver builds a Resolver. launchURL may be empty; logger may be
// nil.
func NewResolver(svc broker.AccountService, store Store, launchURL string, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{svc: svc, store: store, launchURL: launchURL, log: log}
}

// Resolve determines the active account id, provisioning a new account
// if none exists, persists the id in use, and fetches a full snapshot.
// The returned bool is true exactly when this call opened a new account,
// so the caller can surface a one-time notice.
//
// Every call performs a full round-trip: a prior simulate or commit may
// have changed server-side state, so the snapshot is never cached.
func (r *Resolver) Resolve(ctx context.Context) (broker.Account, bool, error) {
	opened := false

	id := ParamFromURL(r.launchURL, AccountIDParam)
	if id == "" {
		stored, err := r.store.Load()
		if err != nil {
			return broker.Account{}, false, &resolveError{step: "load session slot", err: err}
		}
		id = stored
	}

	if id == "" {
		acct, err := r.svc.OpenAccount(ctx)
		if err != nil {
			return broker.Account{}, false, &resolveError{step: "open account", err: err}
		}
		id = acct.ID
		opened = true
		r.log.Info("opened new account", zap.String("account_id", id))
	}

	if err := r.store.Save(id); err != nil {
		return broker.Account{}, false, &resolveError{step: "persist session id", err: err}
	}

	acct, err := r.svc.GetAccount(ctx, id)
	if err != nil {
		return broker.Account{}, false, &resolveError{step: "fetch account", err: err}
	}

	return acct, opened, nil
}
