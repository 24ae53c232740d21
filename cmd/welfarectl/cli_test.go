package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

// testEnv points config at a temp dir with a small, seeded world.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GEN_SEED", "7")
	t.Setenv("GEN_HOUSEHOLDS", "25")
	t.Setenv("GEN_VOLUNTEERS_SENIOR", "3")
	t.Setenv("GEN_VOLUNTEERS_EMPLOYEE", "2")
	t.Setenv("GEN_ACTIVITIES", "20")
	t.Setenv("GEN_ALERTS", "4")
	t.Setenv("SNAPSHOT_PATH", "")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_DSN", filepath.Join(dir, "welfare.db"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateAndExport(t *testing.T) {
	dir := testEnv(t)
	snapPath := filepath.Join(dir, "out", "snap.json")

	out, err := execute(t, "generate", "--out", snapPath, "--seed", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "(seed 11) written to "+snapPath)
	assert.Contains(t, out, "households 25")

	snap, err := storage.LoadSnapshotFromFile(snapPath)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), snap.Meta().Seed)

	t.Setenv("SNAPSHOT_PATH", snapPath)
	xlsx := filepath.Join(dir, "all.xlsx")
	out, err = execute(t, "export", "--out", xlsx, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "3 sheet(s)")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Households")
	require.NoError(t, err)
	assert.Len(t, rows, 26)

	out, err = execute(t, "export", "--out", filepath.Join(dir, "hh.xlsx"), "--all=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1 sheet(s)")
}

func TestRecommendLocal(t *testing.T) {
	dir := testEnv(t)
	snapPath := filepath.Join(dir, "snap.json")
	_, err := execute(t, "generate", "--out", snapPath, "--seed", "0")
	require.NoError(t, err)
	t.Setenv("SNAPSHOT_PATH", snapPath)

	snap, err := storage.LoadSnapshotFromFile(snapPath)
	require.NoError(t, err)
	id := snap.Households()[0].ID

	out, err := execute(t, "recommend", id, "--limit", "2", "--server", "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SCORE"))

	_, err = execute(t, "recommend", "HH-0000", "--server", "")
	assert.ErrorContains(t, err, "not found")
}

func TestDBCommands(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "db", "save")
	require.NoError(t, err)
	require.Contains(t, out, "stored run ")
	runID := strings.Fields(out)[2]

	_, err = execute(t, "db", "save")
	assert.ErrorContains(t, err, "already stored")

	out, err = execute(t, "db", "runs", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "db", "households", "--limit", "5", "--risk", "", "--search", "", "--sido", "", "--min-risk", "0", "--offset", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "5 of 25 households in run "+runID)

	_, err = execute(t, "db", "households", "--risk", "severe")
	assert.ErrorContains(t, err, "invalid risk level")

	out, err = execute(t, "db", "delete", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted run "+runID)

	_, err = execute(t, "db", "delete", runID)
	assert.ErrorContains(t, err, "not found")
}

func TestChatLoop_Local(t *testing.T) {
	in := strings.NewReader("난방비 지원 신청 방법\n1\n/good\n/reset\n/quit\n")
	var out bytes.Buffer

	require.NoError(t, chatLoop(context.Background(), &localChat{}, in, &out))
	s := out.String()
	assert.Contains(t, s, "1) 연탄 나눔 신청")
	assert.Contains(t, s, "(feedback recorded)")

	heating, _ := chatbot.Lookup(chatbot.NodeHeatingSupport)
	coal, _ := chatbot.Lookup(chatbot.NodeCoalApply)
	greeting, _ := chatbot.Lookup(chatbot.NodeGreeting)
	assert.Contains(t, s, heating.Content)
	assert.Contains(t, s, coal.Content)
	assert.Equal(t, 2, strings.Count(s, greeting.Content))
}

func TestChatLoop_EOFEnds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, chatLoop(context.Background(), &localChat{}, strings.NewReader(""), &out))
}
