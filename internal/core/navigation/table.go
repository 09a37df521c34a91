package navigation

import (
	"fmt"

	"syndiceasy/internal/core/domain"
)

// Route paths. Exact casing matters: these strings are the externally
// observable navigation surface and existing deep links depend on them.
const (
	PathLogin                = "/login"
	PathForgotPassword       = "/forgot-password"
	PathAccessDenied         = "/AccessDenied"
	PathPlanning             = "/Planning"
	PathGestionResidents     = "/GestionResidents"
	PathEvenements           = "/Evenements"
	PathGestionCaisse        = "/GestionCaisse"
	PathGestionReclamations  = "/GestionReclamations"
	PathUtilisateurs         = "/Utilisateurs"
	PathGestionBatiments     = "/GestionBatiments"
	PathGestionChambres      = "/GestionChambres"
	PathReclamationsResident = "/ReclamationsResident"
	PathDashboard            = "/dashboard"
)

// RouteDescriptor annotates a path with either a role restriction or an
// "already authenticated" redirect marker. The two markers are mutually
// exclusive; neither means the route is public.
type RouteDescriptor struct {
	Path                    string
	AllowedRoles            []domain.Role
	RedirectIfAuthenticated bool
}

func (r RouteDescriptor) allows(role domain.Role) bool {
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultTable is the declarative route table. Declaration order is load
// bearing: a role's default landing page is the LAST route whose
// AllowedRoles contains it (see Guard), so reordering entries silently
// changes where each role lands after a denied navigation.
func DefaultTable() []RouteDescriptor {
	return []RouteDescriptor{
		{Path: PathLogin, RedirectIfAuthenticated: true},
		{Path: PathForgotPassword, RedirectIfAuthenticated: true},
		{Path: PathAccessDenied},
		{Path: PathPlanning, AllowedRoles: []domain.Role{domain.RoleRh, domain.RoleAdmin, domain.RoleEmployee}},
		{Path: PathGestionResidents, AllowedRoles: []domain.Role{domain.RoleSyndic}},
		{Path: PathEvenements, AllowedRoles: []domain.Role{domain.RoleSyndic, domain.RoleResident}},
		{Path: PathGestionCaisse, AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleSyndic}},
		{Path: PathGestionReclamations, AllowedRoles: []domain.Role{domain.RoleSyndic}},
		{Path: PathUtilisateurs, AllowedRoles: []domain.Role{domain.RoleAdmin}},
		{Path: PathGestionBatiments, AllowedRoles: []domain.Role{domain.RoleAdmin}},
		{Path: PathGestionChambres, AllowedRoles: []domain.Role{domain.RoleAdmin}},
		{Path: PathReclamationsResident, AllowedRoles: []domain.Role{domain.RoleResident}},
		{Path: PathDashboard, AllowedRoles: []domain.Role{domain.RoleAdmin}},
	}
}

// ValidateTable checks that a route table is well formed: unique paths,
// and AllowedRoles / RedirectIfAuthenticated never set on the same entry.
func ValidateTable(table []RouteDescriptor) error {
	seen := make(map[string]bool, len(table))
	for _, route := range table {
		if route.Path == "" {
			return fmt.Errorf("route with empty path")
		}
		if seen[route.Path] {
			return fmt.Errorf("duplicate route path %q", route.Path)
		}
		seen[route.Path] = true
		if route.RedirectIfAuthenticated && len(route.AllowedRoles) > 0 {
			return fmt.Errorf("route %q mixes AllowedRoles with RedirectIfAuthenticated", route.Path)
		}
	}
	return nil
}

// Find returns the descriptor for path, matching the exact string.
func Find(table []RouteDescriptor, path string) (RouteDescriptor, bool) {
	for _, route := range table {
		if route.Path == path {
			return route, true
		}
	}
	return RouteDescriptor{}, false
}

// LandingPath returns the default landing page for a role: the last route
// in declaration order whose AllowedRoles contains the role. This
// last-match-wins scan is a deliberate, preserved policy, not an accident
// of implementation. Returns the access-denied path when no route matches.
func LandingPath(table []RouteDescriptor, role domain.Role) string {
	target := PathAccessDenied
	for _, route := range table {
		if route.allows(role) {
			target = route.Path
		}
	}
	return target
}
