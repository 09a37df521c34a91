package navigation

import "syndiceasy/internal/core/domain"

// MenuEntry is a derived sidebar entry. Never persisted; recomputed
// whenever the session role changes.
type MenuEntry struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Path     string `json:"path"`
	Tooltip  string `json:"tooltip"`
	Selected bool   `json:"selected"`
}

var (
	entryDashboard = MenuEntry{Label: "Tableau de bord", Icon: "dashboard", Path: PathDashboard, Tooltip: "Vue d'ensemble"}
	entryUsers     = MenuEntry{Label: "Utilisateurs", Icon: "people", Path: PathUtilisateurs, Tooltip: "Gestion des utilisateurs"}
	entryBuildings = MenuEntry{Label: "Batiments", Icon: "apartment", Path: PathGestionBatiments, Tooltip: "Gestion des batiments"}
	entryRooms     = MenuEntry{Label: "Chambres", Icon: "meeting_room", Path: PathGestionChambres, Tooltip: "Gestion des chambres"}
	entryCaisse    = MenuEntry{Label: "Caisse", Icon: "account_balance_wallet", Path: PathGestionCaisse, Tooltip: "Operations de caisse"}
	entryReclams   = MenuEntry{Label: "Reclamations", Icon: "report_problem", Path: PathGestionReclamations, Tooltip: "Suivi des reclamations"}
	entryResidents = MenuEntry{Label: "Residents", Icon: "group", Path: PathGestionResidents, Tooltip: "Liste des residents"}
	entryEvents    = MenuEntry{Label: "Evenements", Icon: "event", Path: PathEvenements, Tooltip: "Calendrier des evenements"}
	entryMyReclams = MenuEntry{Label: "Mes reclamations", Icon: "feedback", Path: PathReclamationsResident, Tooltip: "Mes reclamations"}
	entryPlanning  = MenuEntry{Label: "Planning", Icon: "schedule", Path: PathPlanning, Tooltip: "Planning du personnel"}
)

// BuildMenu derives the sidebar entries for a role, in a fixed priority
// order per role. Unknown roles get an empty menu.
func BuildMenu(role domain.Role) []MenuEntry {
	switch role {
	case domain.RoleSyndic:
		return []MenuEntry{entryReclams, entryResidents, entryEvents, entryCaisse}
	case domain.RoleAdmin:
		return []MenuEntry{entryDashboard, entryUsers, entryBuildings, entryRooms, entryCaisse, entryPlanning}
	case domain.RoleResident:
		return []MenuEntry{entryMyReclams, entryEvents}
	case domain.RoleRh, domain.RoleEmployee:
		return []MenuEntry{entryPlanning}
	}
	return nil
}

// MarkSelected flags the entry whose path equals activePath. Exact string
// match only, no prefix matching; no entry is flagged when none match.
func MarkSelected(entries []MenuEntry, activePath string) []MenuEntry {
	for i := range entries {
		entries[i].Selected = entries[i].Path == activePath
	}
	return entries
}
