package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulateCmdRunsWithoutError(t *testing.T) {
	dir := t.TempDir()
	fixture := writeTempFile(t, dir, "fixture.yaml", "routers: 4\nconcentration: 1\n")
	traf := writeTempFile(t, dir, "traffic.txt",
		"Burst{tasks:4,messages_per_task:2,message_size:8,pattern:Uniform{allow_self:false}}")

	simulateFixturePath = fixture
	simulateConfigPath = traf
	simulateSeed = 9
	simulateCycles = 200

	require.NotPanics(t, func() {
		simulateCmd.Run(simulateCmd, nil)
	})
}
