// Package service provides business logic for the application.
package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/unbounded/waitlist/internal/metrics"
	"github.com/unbounded/waitlist/internal/model"
)

// Service errors.
var (
	ErrInvalidEmail = errors.New("invalid email")
)

// Rejection reasons reported to metrics.
const (
	RejectInvalidJSON  = "invalid_json"
	RejectInvalidEmail = "invalid_email"
)

// Store persists signup records.
type Store interface {
	Append(ctx context.Context, signup *model.Signup) (string, error)
}

// Notifier tells an operator about a new signup.
type Notifier interface {
	Enabled() bool
	NotifySignup(ctx context.Context, email string) error
}

// Mirror receives a copy of every persisted signup.
type Mirror interface {
	InsertSignup(ctx context.Context, signup *model.Signup) error
}

// WaitlistService validates, persists and announces signups.
type WaitlistService struct {
	store    Store
	notifier Notifier
	mirror   Mirror
	logger   *slog.Logger
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewWaitlistService creates a WaitlistService. notifier and mirror may be nil.
func NewWaitlistService(store Store, notifier Notifier, mirror Mirror, logger *slog.Logger, recorder metrics.Recorder) *WaitlistService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WaitlistService{
		store:    store,
		notifier: notifier,
		mirror:   mirror,
		logger:   logger.With("component", "service.waitlist"),
		metrics:  recorder,
		now:      time.Now,
	}
}

// Join records a signup for rawEmail.
//
// The record is appended to the log before anything else happens. Mirror and
// notification failures after that point are logged and swallowed; only
// validation and storage errors reach the caller.
func (s *WaitlistService) Join(ctx context.Context, rawEmail string) (*model.Signup, error) {
	email := model.NormalizeEmail(rawEmail)
	if !model.IsValidEmail(email) {
		s.metrics.IncSignupRejected(RejectInvalidEmail)
		return nil, ErrInvalidEmail
	}

	signup := model.NewSignup(email, s.now())
	hash := EmailHash(email)

	path, err := s.store.Append(ctx, signup)
	if err != nil {
		return nil, fmt.Errorf("persist signup: %w", err)
	}
	s.metrics.IncSignupAccepted()

	s.logger.InfoContext(ctx, "signup_recorded",
		"email_hash", hash,
		"path", path,
	)

	// The record is durable now; a client disconnect must not cut the
	// follow-up calls short.
	sideCtx := context.WithoutCancel(ctx)
	s.mirrorSignup(sideCtx, signup, hash)
	s.notify(sideCtx, email, hash)

	return signup, nil
}

// RejectPayload counts a request whose body was not valid JSON.
func (s *WaitlistService) RejectPayload() {
	s.metrics.IncSignupRejected(RejectInvalidJSON)
}

func (s *WaitlistService) mirrorSignup(ctx context.Context, signup *model.Signup, hash string) {
	if s.mirror == nil {
		return
	}

	if err := s.mirror.InsertSignup(ctx, signup); err != nil {
		s.metrics.IncMirror("failed")
		s.logger.WarnContext(ctx, "signup mirror failed",
			"email_hash", hash,
			"error", err,
		)
		return
	}
	s.metrics.IncMirror("success")
}

func (s *WaitlistService) notify(ctx context.Context, email, hash string) {
	if s.notifier == nil || !s.notifier.Enabled() {
		s.metrics.IncNotification(metrics.NotificationSkipped)
		return
	}

	if err := s.notifier.NotifySignup(ctx, email); err != nil {
		s.metrics.IncNotification(metrics.NotificationFailed)
		s.logger.WarnContext(ctx, "waitlist notification failed",
			"email_hash", hash,
			"error", err,
		)
		return
	}

	s.metrics.IncNotification(metrics.NotificationSent)
	s.logger.DebugContext(ctx, "waitlist notification sent", "email_hash", hash)
}

// EmailHash returns a stable, non-reversible identifier for log lines:
// the first 16 hex chars of BLAKE2b-256 over the lower-cased address.
func EmailHash(email string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])[:16]
}
