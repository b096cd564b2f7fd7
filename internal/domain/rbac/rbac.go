// Package rbac holds the static role-to-route permission table. The table is
// total over the closed Role and Route sets, read-only after init, and fails
// closed for anything outside those sets.
package rbac

import "github.com/abiwaumi/tablewater/internal/domain/models"

// Route names a view of the application.
type Route string

const (
	RouteDashboard  Route = "dashboard"
	RouteProduction Route = "production"
	RouteSales      Route = "sales"
	RouteRevenue    Route = "revenue"
	RouteResources  Route = "resources"
	RouteSettings   Route = "settings"
)

// Routes returns every route in canonical navigation order.
func Routes() []Route {
	return []Route{
		RouteDashboard,
		RouteProduction,
		RouteSales,
		RouteRevenue,
		RouteResources,
		RouteSettings,
	}
}

var permissions = map[Route]map[models.Role]bool{
	RouteDashboard:  allow(models.RoleAdmin, models.RoleStaff, models.RoleViewer),
	RouteProduction: allow(models.RoleAdmin, models.RoleStaff),
	RouteSales:      allow(models.RoleAdmin, models.RoleStaff),
	RouteRevenue:    allow(models.RoleAdmin, models.RoleViewer),
	RouteResources:  allow(models.RoleAdmin, models.RoleStaff),
	RouteSettings:   allow(models.RoleAdmin, models.RoleStaff, models.RoleViewer),
}

func allow(roles ...models.Role) map[models.Role]bool {
	set := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

// IsAllowed reports whether the role may view the route. Unknown routes and
// unknown roles deny; denial is never an error.
func IsAllowed(role models.Role, route Route) bool {
	allowed, ok := permissions[route]
	if !ok {
		return false
	}
	return allowed[role]
}

// VisibleRoutes returns the routes the role may view, preserving canonical
// order. Used to build navigation menus; the route guard remains the
// enforcement point.
func VisibleRoutes(role models.Role) []Route {
	visible := make([]Route, 0, len(permissions))
	for _, route := range Routes() {
		if IsAllowed(role, route) {
			visible = append(visible, route)
		}
	}
	return visible
}
