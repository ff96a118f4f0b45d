// Package maintenance runs the background jobs that keep a long-lived session usable.
package maintenance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/internal/models"
	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
	"github.com/charlesng35/assetdesk/pkg/logger"
)

const (
	defaultKeepalive      = time.Minute
	defaultProfileRefresh = 10 * time.Minute
)

// SessionChecker reports whether tokens are present. *session.TokenStore implements it.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// TokenRefresher refreshes the access token when it is about to expire.
// *apiclient.Client implements it.
type TokenRefresher interface {
	EnsureFresh(ctx context.Context) error
}

// ProfileLoader reloads the signed-in user. *api.AuthAPI implements it.
type ProfileLoader interface {
	RevalidateProfile(ctx context.Context) (*models.AuthenticatedUser, error)
}

// Keeper rotates the access token ahead of expiry and periodically reloads the
// signed-in profile so permission changes reach long-running processes.
type Keeper struct {
	session SessionChecker
	tokens  TokenRefresher
	profile ProfileLoader
	cron    *cron.Cron
	log     *zap.Logger
	started bool
	timeout time.Duration

	done    chan struct{}
	expired sync.Once

	keepalive    time.Duration
	profileEvery time.Duration
}

// Option customises the Keeper.
type Option func(*Keeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(k *Keeper) {
		if c != nil {
			k.cron = c
		}
	}
}

// WithKeepalive sets how often the token is checked. Zero or negative disables the job.
func WithKeepalive(d time.Duration) Option {
	return func(k *Keeper) {
		k.keepalive = d
	}
}

// WithProfileRefresh sets how often the profile is reloaded. Zero or negative disables the job.
func WithProfileRefresh(d time.Duration) Option {
	return func(k *Keeper) {
		k.profileEvery = d
	}
}

// NewKeeper constructs a Keeper. A nil profile loader skips profile reloads.
func NewKeeper(session SessionChecker, tokens TokenRefresher, profile ProfileLoader, opts ...Option) *Keeper {
	k := &Keeper{
		session: session,
		tokens:  tokens,
		profile: profile,
		timeout: 30 * time.Second,
		done:    make(chan struct{}),
		log:     logger.WithModule("maintenance"),
	}
	k.keepalive = defaultKeepalive
	k.profileEvery = defaultProfileRefresh

	for _, opt := range opts {
		opt(k)
	}

	if k.cron == nil {
		k.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return k
}

// Start registers the jobs and launches the scheduler when at least one is enabled.
func (k *Keeper) Start() error {
	if k.session == nil || k.tokens == nil {
		return errors.New("maintenance: session and token refresher are required")
	}

	if k.keepalive > 0 {
		if _, err := k.cron.AddFunc(every(k.keepalive), func() {
			k.run(k.refreshTokens)
		}); err != nil {
			return err
		}
	}

	if k.profile != nil && k.profileEvery > 0 {
		if _, err := k.cron.AddFunc(every(k.profileEvery), func() {
			k.run(k.reloadProfile)
		}); err != nil {
			return err
		}
	}

	if len(k.cron.Entries()) == 0 {
		return nil
	}
	k.cron.Start()
	k.started = true
	return nil
}

// Stop halts the scheduler. The returned context is done once running jobs finish.
func (k *Keeper) Stop() context.Context {
	if k.cron == nil || !k.started {
		return context.Background()
	}
	k.started = false
	return k.cron.Stop()
}

// Done is closed once the session has expired and the scheduler has been halted.
func (k *Keeper) Done() <-chan struct{} {
	return k.done
}

// expire halts the scheduler for good. Jobs already running finish on their own.
func (k *Keeper) expire() {
	k.expired.Do(func() {
		k.cron.Stop()
		close(k.done)
	})
}

// RunOnce performs every enabled job immediately. Nothing happens while signed out.
func (k *Keeper) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if err := k.refreshTokens(ctx); err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			k.expire()
			return err
		}
		errs = multierr.Append(errs, err)
	}
	if k.profile != nil && k.profileEvery > 0 {
		errs = multierr.Append(errs, k.reloadProfile(ctx))
	}
	return errs
}

func (k *Keeper) run(job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	err := job(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrSessionExpired):
		k.log.Info("session ended during background upkeep, stopping")
		k.expire()
	default:
		k.log.Warn("session upkeep failed", zap.Error(err))
	}
}

func (k *Keeper) refreshTokens(ctx context.Context) error {
	if !k.session.IsAuthenticated(ctx) {
		return nil
	}
	return k.tokens.EnsureFresh(ctx)
}

func (k *Keeper) reloadProfile(ctx context.Context) error {
	if !k.session.IsAuthenticated(ctx) {
		return nil
	}
	_, err := k.profile.RevalidateProfile(ctx)
	return err
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
