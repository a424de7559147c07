package model

// Privilege represents a permission that can be assigned to users or roles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "order:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivProductView   = "product:view"
	PrivProductCreate = "product:create"
	PrivProductUpdate = "product:update"
	PrivProductDelete = "product:delete"
	PrivOrderView     = "order:view"
	PrivOrderCreate   = "order:create"
	PrivOrderUpdate   = "order:update"
	PrivOrderDelete   = "order:delete"
	PrivImageManage   = "image:manage"
	PrivDashboardView = "dashboard:view"
	PrivExportOrders  = "export:orders"
)

var DefaultPrivileges = []Privilege{
	{Code: PrivProductView, Name: "View Product"},
	{Code: PrivProductCreate, Name: "Create Product"},
	{Code: PrivProductUpdate, Name: "Update Product"},
	{Code: PrivProductDelete, Name: "Delete Product"},
	{Code: PrivOrderView, Name: "View Order"},
	{Code: PrivOrderCreate, Name: "Create Order"},
	{Code: PrivOrderUpdate, Name: "Update Order"},
	{Code: PrivOrderDelete, Name: "Delete Order"},
	{Code: PrivImageManage, Name: "Manage Product Images"},
	{Code: PrivDashboardView, Name: "View Dashboard"},
	{Code: PrivExportOrders, Name: "Export Orders"},
}
