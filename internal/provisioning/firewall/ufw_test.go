package firewall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmbox/strmbox/internal/provisioning"
	testutil "github.com/strmbox/strmbox/internal/testing"
)

func TestStage_EnablesInactiveFirewall(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Outputs["ufw status"] = "Status: inactive\n"
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	result, err := Stage{}.Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, result.Status)
	assert.True(t, r.Ran("ufw --force enable"))
	assert.True(t, r.Ran("ufw allow OpenSSH"))
	assert.True(t, r.Ran("ufw allow Nginx Full"))
}

func TestStage_SkipsEnableWhenActive(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Outputs["ufw status"] = "Status: active\n\nTo    Action    From\n"
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	result, err := Stage{}.Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, result.Status)
	assert.False(t, r.Ran("ufw --force enable"))
	// Allow rules are still ensured.
	assert.True(t, r.Ran("ufw allow OpenSSH"))
	assert.True(t, r.Ran("ufw allow Nginx Full"))
}

func TestStage_StatusErrorTreatedAsInactive(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Errs["ufw status"] = errors.New("ERROR: not enabled")
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	_, err := Stage{}.Provision(ctx)
	require.NoError(t, err)
	assert.True(t, r.Ran("ufw --force enable"))
}

func TestStage_EnableFailureAborts(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Outputs["ufw status"] = "Status: inactive\n"
	r.Errs["ufw --force enable"] = errors.New("permission denied")
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	_, err := Stage{}.Provision(ctx)
	require.Error(t, err)
	assert.False(t, r.Ran("ufw allow"))
}
