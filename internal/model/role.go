package model

// Role groups privileges. OWNER holds everything; STAFF cannot delete or export.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

var DefaultRoles = []Role{
	{Code: RoleOwner, Name: "Owner", Description: "Full access to catalog, orders and exports"},
	{Code: RoleStaff, Name: "Staff", Description: "Day-to-day catalog and order editing"},
}

// StaffPrivilege reports whether the STAFF role receives a privilege at seed time.
func StaffPrivilege(code string) bool {
	switch code {
	case PrivProductDelete, PrivOrderDelete, PrivExportOrders:
		return false
	}
	return true
}
