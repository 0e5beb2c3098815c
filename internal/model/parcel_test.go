package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParcelPrice(t *testing.T) {
	cases := []struct {
		weight float64
		want   float64
	}{
		{0, 30},    // minimum charge applies at zero weight
		{1, 30},    // still under the minimum
		{2.5, 30},  // boundary area: 2.5 * 10 < 30
		{3, 30},    // exactly the minimum
		{3.1, 31},  // first weight above the minimum
		{5, 50},
		{12.5, 125},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ParcelPrice(tc.weight), "weight=%v", tc.weight)
	}
}

func TestValidators(t *testing.T) {
	require.True(t, ValidRoute(RouteSuratToKohtao))
	require.True(t, ValidRoute(RouteKohtaoToSurat))
	require.False(t, ValidRoute("SURAT_TO_PHANGAN"))

	require.True(t, ValidLayout(Layout50))
	require.True(t, ValidLayout(Layout30))
	require.False(t, ValidLayout("LAYOUT_99"))

	require.True(t, ValidRole(RoleAdmin))
	require.True(t, ValidRole(RoleStaff))
	require.True(t, ValidRole(RoleAgent))
	require.False(t, ValidRole("OWNER"))
}
