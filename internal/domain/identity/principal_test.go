package identity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/domain/identity"
)

func TestPrincipal_FindFirst(t *testing.T) {
	t.Parallel()

	p := identity.NewPrincipal(
		identity.Claim{Type: identity.ClaimRole, Value: identity.RoleManager},
		identity.Claim{Type: identity.ClaimSubjectID, Value: "5"},
		identity.Claim{Type: identity.ClaimRole, Value: identity.RoleAdmin},
	)

	role, ok := p.FindFirst(identity.ClaimRole)
	require.True(t, ok)
	assert.Equal(t, identity.RoleManager, role)
	assert.Equal(t, []string{identity.RoleManager, identity.RoleAdmin}, p.FindAll(identity.ClaimRole))

	_, ok = p.FindFirst(identity.ClaimNationality)
	assert.False(t, ok)
}

func TestPrincipal_ClaimsKeepOrder(t *testing.T) {
	t.Parallel()

	p := identity.NewPrincipal(
		identity.Claim{Type: identity.ClaimSubjectID, Value: "1"},
		identity.Claim{Type: identity.ClaimRole, Value: "User"},
		identity.Claim{Type: identity.ClaimSubjectID, Value: "2"},
	)

	assert.Equal(t, []identity.Claim{
		{Type: identity.ClaimSubjectID, Value: "1"},
		{Type: identity.ClaimSubjectID, Value: "2"},
		{Type: identity.ClaimRole, Value: "User"},
	}, p.Claims())
}

func TestPrincipal_FindAllReturnsCopy(t *testing.T) {
	t.Parallel()

	p := identity.NewPrincipal(identity.Claim{Type: identity.ClaimNationality, Value: "Polish"})
	vs := p.FindAll(identity.ClaimNationality)
	vs[0] = "German"

	got, _ := p.FindFirst(identity.ClaimNationality)
	assert.Equal(t, "Polish", got)
}

func TestPrincipal_SubjectID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		p       identity.Principal
		want    int64
		wantErr error
	}{
		{
			name: "numeric",
			p:    identity.NewPrincipal(identity.Claim{Type: identity.ClaimSubjectID, Value: "42"}),
			want: 42,
		},
		{
			name:    "anonymous",
			p:       identity.Anonymous(),
			wantErr: identity.ErrAnonymous,
		},
		{
			name:    "not a number",
			p:       identity.NewPrincipal(identity.Claim{Type: identity.ClaimSubjectID, Value: "abc"}),
			wantErr: identity.ErrMalformedClaim,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.p.SubjectID()
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrincipal_HasClaim(t *testing.T) {
	t.Parallel()

	p := identity.NewPrincipal(
		identity.Claim{Type: identity.ClaimSubjectID, Value: "1"},
		identity.Claim{Type: identity.ClaimNationality, Value: "Czech"},
	)

	assert.True(t, p.IsAuthenticated())
	assert.True(t, p.HasClaim(identity.ClaimNationality))
	assert.True(t, p.HasClaim(identity.ClaimNationality, "Polish", "Czech"))
	assert.False(t, p.HasClaim(identity.ClaimNationality, "German"))
	assert.False(t, p.IsInRole(identity.RoleAdmin))
	assert.False(t, identity.Anonymous().IsAuthenticated())
}
