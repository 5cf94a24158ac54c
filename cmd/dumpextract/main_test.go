package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckTerminalOutput(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		isTerminal bool
		force      bool
		wantErr    bool
	}{
		{name: "file output", output: "raw_dump.mp3", isTerminal: true},
		{name: "stdout redirected", output: "-", isTerminal: false},
		{name: "stdout terminal", output: "-", isTerminal: true, wantErr: true},
		{name: "stdout terminal forced", output: "-", isTerminal: true, force: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTerminalOutput(tt.output, tt.isTerminal, tt.force)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "--force")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCommands_HexdumpThenExtract(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("ID3\x04\x00 frames and a short tail")
	binPath := filepath.Join(dir, "in.mp3")
	dumpPath := filepath.Join(dir, "a_dump.txt")
	outPath := filepath.Join(dir, "raw_dump.mp3")
	require.NoError(t, os.WriteFile(binPath, payload, 0o644))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"hexdump", "-i", binPath, "-o", dumpPath, "--tag", "a_main", "--address", "0x3ffb4a40"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"extract", "-i", dumpPath, "-o", outPath, "--tag", "a_main"})
	require.NoError(t, rootCmd.Execute())

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, payload, written)
}

func TestCommands_ExtractMissingInput(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"extract", "-i", filepath.Join(dir, "missing.txt"), "-o", filepath.Join(dir, "out.bin"), "--tag", ""})
	err := rootCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(), "extract failed")
}

func TestCommands_HexdumpInvalidAddress(t *testing.T) {
	rootCmd.SetArgs([]string{"hexdump", "-i", "whatever.bin", "--address", "nope"})
	err := rootCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid --address")
}

func TestCommands_HexdumpInvalidTag(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "in.mp3")
	require.NoError(t, os.WriteFile(binPath, []byte("Hello World!!!!!"), 0o644))

	rootCmd.SetArgs([]string{"hexdump", "-i", binPath, "-o", filepath.Join(dir, "dump.txt"), "--tag", "my-tag", "--address", "0"})
	err := rootCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid tag")
	_, statErr := os.Stat(filepath.Join(dir, "dump.txt"))
	require.True(t, os.IsNotExist(statErr))
}
