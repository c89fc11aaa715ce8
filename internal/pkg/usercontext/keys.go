package usercontext

// Session and Locals keys shared by the auth controllers and the context
// middleware. Kept in one place so login, logout and middleware cannot
// drift apart.
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyUserPlan      = "user_plan"
	KeyFromProtected = "from_protected"
)
