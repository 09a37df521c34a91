package services

import (
	"context"
	"log"

	"syndiceasy/internal/core/feed"
	"syndiceasy/internal/core/navigation"
	"syndiceasy/internal/core/session"
)

// ShellService assembles everything a client needs to render its frame
// after startup or a full reload: the resolved session, the guard
// decision for the requested path, the role's menu, the notification
// backlog and the unread badge.
type ShellService struct {
	auth          *AuthService
	notifications *NotificationService
	guard         *navigation.Guard
}

// NewShellService creates a new shell service
func NewShellService(auth *AuthService, notifications *NotificationService, guard *navigation.Guard) *ShellService {
	return &ShellService{
		auth:          auth,
		notifications: notifications,
		guard:         guard,
	}
}

// ShellState is the bootstrap payload.
type ShellState struct {
	LoggedIn      bool                   `json:"logged_in"`
	User          *session.UserRecord    `json:"user,omitempty"`
	Language      string                 `json:"language"`
	Decision      navigation.Decision    `json:"decision"`
	Menu          []navigation.MenuEntry `json:"menu,omitempty"`
	Notifications []feed.Record          `json:"notifications,omitempty"`
	UnreadCount   int                    `json:"unread_count"`
}

// Bootstrap resolves the shell for a requested path. The refresh token,
// when present, is exchanged exactly once before the guard runs so that
// a reload with an expired access token does not bounce to login.
func (s *ShellService) Bootstrap(ctx context.Context, requestedPath, refreshToken string) (*ShellState, error) {
	// 1. Single refresh attempt before any guard decision
	if refreshToken != "" {
		if _, err := s.auth.Refresh(ctx, refreshToken); err != nil {
			log.Printf("⚠️ Shell refresh failed, continuing logged out: %v", err)
		}
	}

	// 2. Snapshot the session and evaluate the requested path
	sess := s.auth.Sessions().Current()
	decision := s.guard.Evaluate(requestedPath, sess, navigation.NavState{})

	state := &ShellState{
		LoggedIn: sess.IsLoggedIn(),
		Language: s.auth.Sessions().Language(),
		Decision: decision,
	}
	if !sess.IsLoggedIn() {
		return state, nil
	}

	// 3. Logged in: menu, notification backlog and badge
	user := *sess.User
	state.User = &user

	menu := navigation.BuildMenu(user.Role)
	activePath := requestedPath
	if decision.Outcome != navigation.Authorized {
		activePath = decision.Target
	}
	state.Menu = navigation.MarkSelected(menu, activePath)

	if err := s.notifications.Open(ctx, user.ID); err != nil {
		return nil, err
	}
	state.Notifications = s.notifications.Records(user.ID)

	unread, err := s.notifications.UnreadCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	state.UnreadCount = unread

	return state, nil
}

// Evaluate runs the guard for a single in-app navigation.
func (s *ShellService) Evaluate(path string, nav navigation.NavState) navigation.Decision {
	return s.guard.Evaluate(path, s.auth.Sessions().Current(), nav)
}

// Menu returns the current role's menu with the active entry marked.
func (s *ShellService) Menu(activePath string) []navigation.MenuEntry {
	sess := s.auth.Sessions().Current()
	if !sess.IsLoggedIn() {
		return nil
	}
	return navigation.MarkSelected(navigation.BuildMenu(sess.User.Role), activePath)
}
