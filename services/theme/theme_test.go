package theme

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/require"
)

func TestForKnownRoles(t *testing.T) {
	for _, role := range []models.Role{models.RolePatient, models.RoleProvider} {
		v, err := For(role)
		require.NoError(t, err)
		require.Equal(t, role, v.Role)
		require.Equal(t, "/auth?type="+string(role), v.AuthPath)
		require.NotEmpty(t, v.Palette.Primary)
	}
}

func TestForUnknownRole(t *testing.T) {
	_, err := For(models.Role("admin"))
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestAllOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 2)
	require.Equal(t, models.RolePatient, all[0].Role)
	require.Equal(t, models.RoleProvider, all[1].Role)
}
