package host_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmbox/strmbox/internal/platform/host"
	testutil "github.com/strmbox/strmbox/internal/testing"
)

func TestServiceManager_Commands(t *testing.T) {
	r := testutil.NewFakeRunner()
	mgr := host.NewServiceManager(r)
	ctx := context.Background()

	require.NoError(t, mgr.EnableNow(ctx, "docker"))
	require.NoError(t, mgr.Reload(ctx, "nginx"))
	require.NoError(t, mgr.Restart(ctx, "nginx"))

	assert.Equal(t, []string{
		"systemctl enable --now docker",
		"systemctl reload nginx",
		"systemctl restart nginx",
	}, r.Commands)
}

func TestServiceManager_PropagatesError(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Errs["systemctl reload nginx"] = errors.New("unit not found")
	mgr := host.NewServiceManager(r)

	err := mgr.Reload(context.Background(), "nginx")
	assert.Error(t, err)
}
