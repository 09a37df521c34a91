package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiceasy/internal/core/domain"
)

func paths(entries []MenuEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestSyndicMenuOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		PathGestionReclamations,
		PathGestionResidents,
		PathEvenements,
		PathGestionCaisse,
	}, paths(BuildMenu(domain.RoleSyndic)))
}

func TestAdminMenuOrderIncludesPlanning(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		PathDashboard,
		PathUtilisateurs,
		PathGestionBatiments,
		PathGestionChambres,
		PathGestionCaisse,
		PathPlanning,
	}, paths(BuildMenu(domain.RoleAdmin)))
}

func TestResidentAndStaffMenus(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{PathReclamationsResident, PathEvenements}, paths(BuildMenu(domain.RoleResident)))
	require.Equal(t, []string{PathPlanning}, paths(BuildMenu(domain.RoleRh)))
	require.Equal(t, []string{PathPlanning}, paths(BuildMenu(domain.RoleEmployee)))
	require.Empty(t, BuildMenu(domain.Role("GHOST")))
}

func TestMarkSelectedExactMatchOnly(t *testing.T) {
	t.Parallel()

	entries := MarkSelected(BuildMenu(domain.RoleSyndic), PathEvenements)
	for _, e := range entries {
		require.Equal(t, e.Path == PathEvenements, e.Selected)
	}

	// prefix is not a match
	entries = MarkSelected(BuildMenu(domain.RoleSyndic), PathEvenements+"/42")
	for _, e := range entries {
		require.False(t, e.Selected)
	}
}
