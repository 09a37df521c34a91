package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/core/session"
)

func loggedIn(role domain.Role) session.Session {
	return session.Authenticated(session.UserRecord{ID: 1, Username: "u", Role: role}, "tok")
}

func TestDefaultTableIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateTable(DefaultTable()))
}

func TestValidateTableRejectsDuplicatesAndMixedMarkers(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateTable([]RouteDescriptor{
		{Path: "/a"},
		{Path: "/a"},
	}))

	require.Error(t, ValidateTable([]RouteDescriptor{
		{Path: "/a", RedirectIfAuthenticated: true, AllowedRoles: []domain.Role{domain.RoleAdmin}},
	}))
}

func TestUnrestrictedRouteAlwaysAuthorized(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())
	sessions := []session.Session{
		session.Empty(),
		loggedIn(domain.RoleAdmin),
		loggedIn(domain.RoleResident),
	}
	for _, sess := range sessions {
		dec := guard.Evaluate(PathAccessDenied, sess, NavState{})
		require.Equal(t, Authorized, dec.Outcome)
	}
}

func TestUnknownPathAuthorized(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())
	dec := guard.Evaluate("/nowhere", session.Empty(), NavState{})
	require.Equal(t, Authorized, dec.Outcome)
}

func TestNoTokenRedirectsToLoginRememberingPath(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())
	dec := guard.Evaluate(PathDashboard, session.Empty(), NavState{})
	require.Equal(t, RedirectLogin, dec.Outcome)
	require.Equal(t, PathLogin, dec.Target)
	require.Equal(t, PathDashboard, dec.ReturnTo)
}

func TestWrongRoleFallsBackToLastMatchingRoute(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())

	// Resident hitting the syndic reclamation screen lands on the
	// resident one, because it is the last resident route in table order.
	dec := guard.Evaluate(PathGestionReclamations, loggedIn(domain.RoleResident), NavState{})
	require.Equal(t, RedirectFallback, dec.Outcome)
	require.Equal(t, PathReclamationsResident, dec.Target)

	// Syndic denied an admin screen lands on reclamation management.
	dec = guard.Evaluate(PathUtilisateurs, loggedIn(domain.RoleSyndic), NavState{})
	require.Equal(t, RedirectFallback, dec.Outcome)
	require.Equal(t, PathGestionReclamations, dec.Target)
}

func TestFallbackExhaustionGoesToAccessDenied(t *testing.T) {
	t.Parallel()

	table := []RouteDescriptor{
		{Path: PathAccessDenied},
		{Path: "/admin-only", AllowedRoles: []domain.Role{domain.RoleAdmin}},
	}
	require.NoError(t, ValidateTable(table))

	guard := NewGuard(table)
	dec := guard.Evaluate("/admin-only", loggedIn(domain.RoleResident), NavState{})
	require.Equal(t, RedirectFallback, dec.Outcome)
	require.Equal(t, PathAccessDenied, dec.Target)
}

func TestAllowedRoleAuthorized(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())
	require.Equal(t, Authorized, guard.Evaluate(PathGestionReclamations, loggedIn(domain.RoleSyndic), NavState{}).Outcome)
	require.Equal(t, Authorized, guard.Evaluate(PathDashboard, loggedIn(domain.RoleAdmin), NavState{}).Outcome)
	require.Equal(t, Authorized, guard.Evaluate(PathPlanning, loggedIn(domain.RoleEmployee), NavState{}).Outcome)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultTable())

	// anonymous users may see the login page
	require.Equal(t, Authorized, guard.Evaluate(PathLogin, session.Empty(), NavState{}).Outcome)

	// logged-in users bounce back to where they came from
	dec := guard.Evaluate(PathLogin, loggedIn(domain.RoleSyndic), NavState{PreLoginPath: PathEvenements})
	require.Equal(t, RedirectFallback, dec.Outcome)
	require.Equal(t, PathEvenements, dec.Target)

	// without a remembered path they land on the role home
	dec = guard.Evaluate(PathLogin, loggedIn(domain.RoleResident), NavState{})
	require.Equal(t, RedirectFallback, dec.Outcome)
	require.Equal(t, PathReclamationsResident, dec.Target)
}

func TestLandingPathPerRole(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	require.Equal(t, PathDashboard, LandingPath(table, domain.RoleAdmin))
	require.Equal(t, PathGestionReclamations, LandingPath(table, domain.RoleSyndic))
	require.Equal(t, PathReclamationsResident, LandingPath(table, domain.RoleResident))
	require.Equal(t, PathPlanning, LandingPath(table, domain.RoleRh))
	require.Equal(t, PathPlanning, LandingPath(table, domain.RoleEmployee))
	require.Equal(t, PathAccessDenied, LandingPath(table, domain.Role("GHOST")))
}
