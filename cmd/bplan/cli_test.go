package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lagvtt/backend/internal/bplan"
	"github.com/lagvtt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planYAML = `
name: Bridge
width: 6
height: 3
units:
  - {label: Troll, type: Troll, x: 2, y: 1, colour: g, size: L}
walls:
  - {sx: 0, sy: 0, ex: 5, ey: 0}
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePlan(t *testing.T) (string, *models.BattlePlan) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(planYAML), 0644))
	plan, err := bplan.ParsePlanFile(path)
	require.NoError(t, err)
	return path, plan
}

func TestEncodeCommand(t *testing.T) {
	path, plan := writePlan(t)

	out, err := runCLI(t, "", "encode", path)
	require.NoError(t, err)
	assert.Equal(t, bplan.ToUvar(plan)+"\n", out)

	out, err = runCLI(t, "", "encode", "--dialect", "bplan", path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(bplan.ToBPlan(plan), "\n")+"\n", out)

	_, err = runCLI(t, "", "encode", "-d", "nope", path)
	assert.Error(t, err)

	_, err = runCLI(t, "", "encode", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	_, plan := writePlan(t)

	out, err := runCLI(t, bplan.ToUvar(plan), "decode", "-")
	require.NoError(t, err)

	var got models.BattlePlan
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Bridge", got.Name)
	assert.Equal(t, plan.Units, got.Units)
	assert.Equal(t, plan.Walls, got.Walls)

	out, err = runCLI(t, strings.Join(bplan.ToBPlan(plan), "\n"), "decode", "--yaml", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Bridge")

	_, err = runCLI(t, "{}", "decode", "-")
	assert.ErrorIs(t, err, bplan.ErrMalformedScript)
}

func TestURLCommand(t *testing.T) {
	path, plan := writePlan(t)

	out, err := runCLI(t, "", "url", "--scale", "10", path)
	require.NoError(t, err)
	assert.Equal(t, bplan.OTFBMURL(plan, bplan.URLOptions{Scale: 10})+"\n", out)
	assert.True(t, strings.HasPrefix(out, bplan.OTFBMBase))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bplan dev\n", out)
}
