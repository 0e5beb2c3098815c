// Package access holds the declarative role policy for every ledger
// operation.  Handlers consult this single table instead of branching on the
// role inline, so visibility and ownership rules live in one place.
package access

import "github.com/suratpier/nightboat/internal/model"

// Op names a gated operation.
type Op string

const (
	TicketList    Op = "ticket.list"
	TicketCreate  Op = "ticket.create"
	TicketUpdate  Op = "ticket.update"
	TicketDelete  Op = "ticket.delete"
	TicketCheckIn Op = "ticket.checkin"

	ParcelList   Op = "parcel.list"
	ParcelCreate Op = "parcel.create"
	ParcelUpdate Op = "parcel.update"
	ParcelDelete Op = "parcel.delete"
	ParcelScan   Op = "parcel.scan"

	MaintenanceList   Op = "maintenance.list"
	MaintenanceCreate Op = "maintenance.create"
	MaintenanceUpdate Op = "maintenance.update"
	MaintenanceDelete Op = "maintenance.delete"

	DashboardView Op = "dashboard.view"

	UserList   Op = "user.list"
	UserCreate Op = "user.create"
)

// Rule states whether a role may perform an operation and, if so, whether the
// operation is scoped to records the actor sold (OwnOnly).
type Rule struct {
	Allowed bool
	OwnOnly bool
}

var all = Rule{Allowed: true}
var own = Rule{Allowed: true, OwnOnly: true}

// policy maps operation and role to a rule.  A missing entry denies.
var policy = map[Op]map[string]Rule{
	TicketList:    {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: own},
	TicketCreate:  {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	TicketUpdate:  {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: own},
	TicketDelete:  {model.RoleAdmin: all, model.RoleStaff: all},
	TicketCheckIn: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},

	ParcelList:   {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	ParcelCreate: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	ParcelUpdate: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	// Parcel deletion is reserved for roles above STAFF at the counter.
	ParcelDelete: {model.RoleAdmin: all, model.RoleAgent: all},
	ParcelScan:   {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},

	MaintenanceList:   {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	MaintenanceCreate: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	MaintenanceUpdate: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},
	MaintenanceDelete: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},

	DashboardView: {model.RoleAdmin: all, model.RoleStaff: all, model.RoleAgent: all},

	UserList:   {model.RoleAdmin: all},
	UserCreate: {model.RoleAdmin: all},
}

// For returns the rule for the given operation and role.  Unknown operations
// or roles yield the zero rule, which denies.
func For(op Op, role string) Rule {
	return policy[op][role]
}

// Can reports whether the role may perform the operation at all.
func Can(op Op, role string) bool {
	return policy[op][role].Allowed
}

// OwnOnly reports whether the role's access to the operation is restricted to
// records it owns.
func OwnOnly(op Op, role string) bool {
	return policy[op][role].OwnOnly
}
