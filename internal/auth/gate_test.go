package auth_test

import (
	"testing"

	"github.com/abgdnv/storefront/internal/auth"
	"github.com/stretchr/testify/assert"
)

func Test_Gate_Evaluate(t *testing.T) {
	admin := auth.State{Status: auth.StatusAuthenticated, User: auth.User{ID: "a1", Role: auth.RoleAdmin}}
	user := auth.State{Status: auth.StatusAuthenticated, User: auth.User{ID: "u1", Role: auth.RoleUser}}

	tests := []struct {
		name       string
		gate       auth.Gate
		state      auth.State
		wantDec    auth.Decision
		wantTarget string
	}{
		{name: "admin gate waits while pending", gate: auth.AdminOnly(), state: auth.State{Status: auth.StatusPending}, wantDec: auth.DecisionWait},
		{name: "user gate waits while pending", gate: auth.UserOnly(), state: auth.State{Status: auth.StatusPending}, wantDec: auth.DecisionWait},
		{name: "anonymous goes to login", gate: auth.AdminOnly(), state: auth.State{Status: auth.StatusAnonymous}, wantDec: auth.DecisionRedirect, wantTarget: auth.LoginPath},
		{name: "user on admin gate goes home", gate: auth.AdminOnly(), state: user, wantDec: auth.DecisionRedirect, wantTarget: auth.HomePath},
		{name: "admin on user gate goes home", gate: auth.UserOnly(), state: admin, wantDec: auth.DecisionRedirect, wantTarget: auth.HomePath},
		{name: "admin renders on admin gate", gate: auth.AdminOnly(), state: admin, wantDec: auth.DecisionRender},
		{name: "user renders on user gate", gate: auth.UserOnly(), state: user, wantDec: auth.DecisionRender},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dec, target := tc.gate.Evaluate(tc.state)
			assert.Equal(t, tc.wantDec, dec)
			assert.Equal(t, tc.wantTarget, target)
		})
	}
}
