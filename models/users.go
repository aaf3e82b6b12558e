package models

type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleCashier      Role = "Cashier"
	RoleWaiter       Role = "Waiter"
	RoleKitchenStaff Role = "KitchenStaff"
)

// Staff is the authenticated principal behind a request. Tokens are issued by
// the backend; the terminal only verifies them.
type Staff struct {
	ID   uint `json:"id"`
	Role Role `json:"role"`
}

// HearsOrderAlerts reports whether new orders ring on this role's dashboard.
func (r Role) HearsOrderAlerts() bool {
	return r == RoleKitchenStaff || r == RoleAdmin
}

// CanTakeOrders reports whether the role may build and submit carts.
func (r Role) CanTakeOrders() bool {
	return r == RoleAdmin || r == RoleWaiter || r == RoleCashier
}

// CanCheckout reports whether the role may settle bills.
func (r Role) CanCheckout() bool {
	return r == RoleAdmin || r == RoleCashier
}
