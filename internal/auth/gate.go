package auth

// Decision tells a role-restricted surface what to do with the current
// authentication state.
type Decision int

const (
	// DecisionWait means hydration is still pending: render a placeholder
	// and take no navigation action.
	DecisionWait Decision = iota
	// DecisionRender means the user satisfies the gate.
	DecisionRender
	// DecisionRedirect means navigate to the returned target.
	DecisionRedirect
)

// Navigation targets used by gates.
const (
	LoginPath = "/auth/login"
	HomePath  = "/"
)

// Gate decides whether a role-restricted surface may render. It owns no
// state; callers feed it the auth store's current State.
type Gate struct {
	require Role
}

// AdminOnly gates surfaces reserved for administrators.
func AdminOnly() Gate { return Gate{require: RoleAdmin} }

// UserOnly gates surfaces reserved for regular users.
func UserOnly() Gate { return Gate{require: RoleUser} }

// Evaluate maps the auth state to a render decision and, for redirects, the
// navigation target. While hydration is pending no redirect is issued so a
// persisted session is not lost to a premature bounce.
func (g Gate) Evaluate(state State) (Decision, string) {
	switch state.Status {
	case StatusPending:
		return DecisionWait, ""
	case StatusAnonymous:
		return DecisionRedirect, LoginPath
	}
	if state.User.Role != g.require {
		return DecisionRedirect, HomePath
	}
	return DecisionRender, ""
}
