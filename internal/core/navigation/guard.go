package navigation

import (
	"syndiceasy/internal/core/session"
)

// Outcome is the terminal state of a guard evaluation. Every navigation
// starts unresolved and ends in exactly one of the three outcomes; a
// denied navigation is re-evaluated only on the next navigation event.
type Outcome string

const (
	Authorized       Outcome = "AUTHORIZED"
	RedirectLogin    Outcome = "REDIRECT_LOGIN"
	RedirectFallback Outcome = "REDIRECT_FALLBACK"
)

// Decision carries the guard outcome. Target is set for both redirect
// outcomes; ReturnTo preserves the originally requested path so a
// successful login can come back to it.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Target   string  `json:"target,omitempty"`
	ReturnTo string  `json:"return_to,omitempty"`
}

// NavState is the per-navigation context: the path the user came from
// before hitting an auth-redirect route.
type NavState struct {
	PreLoginPath string
}

// Guard evaluates navigations against a fixed route table.
type Guard struct {
	table []RouteDescriptor
}

// NewGuard builds a guard over the given table. The table must already
// have passed ValidateTable.
func NewGuard(table []RouteDescriptor) *Guard {
	return &Guard{table: table}
}

// Table exposes the guard's route table.
func (g *Guard) Table() []RouteDescriptor {
	return g.table
}

// Evaluate runs the guard state machine for a single navigation. Rules in
// precedence order:
//
//  1. Unmarked routes are authorized unconditionally.
//  2. RedirectIfAuthenticated + logged-in session redirects to the
//     pre-login path, else the role landing page.
//  3. Role-restricted routes: no access token redirects to login
//     (remembering the attempted path); a role outside AllowedRoles
//     redirects to the role's landing page (last-match-wins over the
//     table, access denied when nothing matches); otherwise authorized.
//
// Unknown paths are treated as unmarked.
func (g *Guard) Evaluate(path string, sess session.Session, nav NavState) Decision {
	route, found := Find(g.table, path)
	if !found {
		return Decision{Outcome: Authorized}
	}

	if len(route.AllowedRoles) == 0 && !route.RedirectIfAuthenticated {
		return Decision{Outcome: Authorized}
	}

	if route.RedirectIfAuthenticated {
		if !sess.IsLoggedIn() {
			return Decision{Outcome: Authorized}
		}
		target := nav.PreLoginPath
		if target == "" {
			target = LandingPath(g.table, sess.Role())
		}
		return Decision{Outcome: RedirectFallback, Target: target}
	}

	if sess.AccessToken == "" {
		return Decision{Outcome: RedirectLogin, Target: PathLogin, ReturnTo: path}
	}

	role := sess.Role()
	if !route.allows(role) {
		return Decision{Outcome: RedirectFallback, Target: LandingPath(g.table, role)}
	}

	return Decision{Outcome: Authorized}
}
