package permission

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Action is a CRUD verb checked against a screen.
type Action string

const (
	ActionRead   Action = "READ"
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

var actionRoles = map[Action]string{
	ActionRead:   RoleRead,
	ActionCreate: RoleCreate,
	ActionUpdate: RoleUpdate,
	ActionDelete: RoleDelete,
}

// Map is the permission map of one user: role code -> allowed screens.
type Map map[string][]string

// ParseMap decodes a JSON permission map. A malformed payload yields an
// error and a nil map, which every check treats as "no access".
func ParseMap(raw []byte) (Map, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty permission map")
	}
	var m Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("invalid permission map: %w", err)
	}
	return m, nil
}

// Has reports whether the role key is present.
func (m Map) Has(role string) bool {
	if m == nil {
		return false
	}
	_, ok := m[role]
	return ok
}

// Roles returns the role keys of the map.
func (m Map) Roles() []string {
	roles := make([]string, 0, len(m))
	for _, r := range AllRoles {
		if m.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// Gate answers permission questions for one permission map.
type Gate struct {
	perms Map
}

func NewGate(perms Map) Gate {
	return Gate{perms: perms}
}

// IsAllowed reports whether action may be performed on the screen behind
// screenPath. The admin key allows everything; otherwise the role key of
// the action must be present and list the screen.
func (g Gate) IsAllowed(action Action, screenPath string) bool {
	if g.perms == nil {
		return false
	}
	if g.perms.Has(RoleAdmin) {
		return true
	}

	role, ok := actionRoles[action]
	if !ok || !g.perms.Has(role) {
		return false
	}

	screen, ok := ScreenForPath(screenPath)
	if !ok {
		return false
	}

	for _, allowed := range g.perms[role] {
		if allowed == string(screen) {
			return true
		}
	}
	return false
}

// CanView is the router-level read check. Public pages always pass and
// /settings only needs a logged-in user.
func (g Gate) CanView(path string) bool {
	if IsPublicPath(path) {
		return true
	}
	if FirstSegment(path) == "/settings" {
		return g.perms != nil
	}
	return g.IsAllowed(ActionRead, path)
}

// CanEnterAdminApp reports whether the user may log into the back office.
func CanEnterAdminApp(perms Map) bool {
	return perms.Has(RoleAdmin) || perms.Has(RoleStaff)
}

// ScreenForPath resolves the screen from the first path segment,
// e.g. "/trips/5/edit" -> TRIPS.
func ScreenForPath(path string) (Screen, bool) {
	screen, ok := screenPaths[FirstSegment(path)]
	return screen, ok
}

// FirstSegment returns "/" + the first non-empty segment of path.
func FirstSegment(path string) string {
	trimmed := strings.TrimLeft(path, "/")
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

func IsPublicPath(path string) bool {
	return publicPaths[FirstSegment(path)]
}

// ActionForMethod maps an HTTP method to the action it performs.
func ActionForMethod(method string) Action {
	switch method {
	case http.MethodPost:
		return ActionCreate
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}
