package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/restaurant-api/internal/domain/authz"
)

func TestParseRequirement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    authz.RequirementSpec
		want    string
		wantErr bool
	}{
		{name: "minimum age", spec: authz.RequirementSpec{Kind: "minimum_age", Threshold: 18}, want: "minimum_age(18)"},
		{name: "created", spec: authz.RequirementSpec{Kind: "MINIMUM_CREATED_RESOURCES", Threshold: 2}, want: "minimum_created_resources(2)"},
		{name: "operation", spec: authz.RequirementSpec{Kind: "resource_operation", Operation: "Delete"}, want: "resource_operation(delete)"},
		{name: "claim", spec: authz.RequirementSpec{Kind: "claim_in", ClaimType: "nationality", Values: []string{"Polish", "Czech"}}, want: "claim_in(nationality: Polish,Czech)"},
		{name: "unknown kind", spec: authz.RequirementSpec{Kind: "maximum_age"}, wantErr: true},
		{name: "negative threshold", spec: authz.RequirementSpec{Kind: "minimum_age", Threshold: -1}, wantErr: true},
		{name: "unknown operation", spec: authz.RequirementSpec{Kind: "resource_operation", Operation: "patch"}, wantErr: true},
		{name: "claim without type", spec: authz.RequirementSpec{Kind: "claim_in"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := authz.ParseRequirement(tt.spec)
			if tt.wantErr {
				require.ErrorIs(t, err, authz.ErrInvalidRequirement)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg, err := authz.NewRegistry(authz.DefaultPolicies()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"HasNationality", "IsAdult", "IsCreator", "IsManagement"}, reg.Names())

	_, err = authz.NewRegistry(authz.Policy{Name: "Empty"})
	require.ErrorIs(t, err, authz.ErrInvalidRequirement)

	_, err = authz.NewRegistry(
		authz.Policy{Name: "A", Requirements: []authz.Requirement{authz.MinimumAge(1)}},
		authz.Policy{Name: "A", Requirements: []authz.Requirement{authz.MinimumAge(2)}},
	)
	require.ErrorIs(t, err, authz.ErrInvalidRequirement)

	_, err = authz.NewRegistry(authz.Policy{Name: "Zero", Requirements: []authz.Requirement{{}}})
	require.ErrorIs(t, err, authz.ErrInvalidRequirement)
}
