// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/pfbwt/internal/testutil"
	"github.com/dsnet/pfbwt/pfp"
	"github.com/dsnet/pfbwt/pfpfile"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stderr.String(), err
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	recs := testutil.Pangenome(testutil.NewRand(0), 5, 2000, 50)
	recs[2].Seq = append(recs[2].Seq, "NNNNNNNN"...)
	input := testutil.MustWriteFASTA(dir, "in.fa", recs)

	for _, name := range []string{"none", "gzip", "zstd"} {
		t.Run(name, func(t *testing.T) {
			prefix := filepath.Join(dir, name)
			stderr, err := execute(t, "-w", "8", "-p", "32", "--sai", "--docs", "--trim-non-acgt",
				"--verify", "--codec", name, "-o", prefix, "-v", input)
			require.NoError(t, err, stderr)
			require.Contains(t, stderr, "Parsed input")

			wr, err := pfpfile.NewWriter(prefix, name, 0)
			require.NoError(t, err)
			for _, kind := range []string{
				pfpfile.Dict, pfpfile.Occ, pfpfile.Parse, pfpfile.Last, pfpfile.SAI,
				pfpfile.BWLast, pfpfile.IList, pfpfile.BWSAI, pfpfile.Docs, pfpfile.NTab, pfpfile.InfoFile,
			} {
				require.FileExists(t, wr.Path(kind))
			}

			info, err := pfpfile.ReadInfo(wr.Path(pfpfile.InfoFile))
			require.NoError(t, err)
			require.Equal(t, input, info.Input)
			require.Equal(t, name, info.Codec)
			require.Equal(t, 5, info.Records)
			require.Equal(t, uint64(10000), info.Length)
			require.Equal(t, uint64(8), info.Trimmed)
			require.Equal(t, 8, info.Params.W)
			require.Equal(t, uint64(32), info.Params.P)
			require.True(t, info.Params.GetSAI)
			require.Len(t, info.Files, 10)

			ntab, err := pfpfile.ReadNTab(wr.Path(pfpfile.NTab))
			require.NoError(t, err)
			require.Equal(t, []pfp.NRun{{Pos: 5999, Len: 8}}, ntab)

			names, starts, err := pfpfile.ReadDocs(wr.Path(pfpfile.Docs))
			require.NoError(t, err)
			require.Equal(t, []string{"seq0", "seq1", "seq2", "seq3", "seq4"}, names)
			require.Equal(t, []pfp.Offset{0, 2000, 4000, 6000, 8000}, starts)

			parse, err := pfpfile.ReadWords(wr.Path(pfpfile.Parse))
			require.NoError(t, err)
			ilist, err := pfpfile.ReadOffsets(wr.Path(pfpfile.IList))
			require.NoError(t, err)
			require.Len(t, ilist, len(parse))
			require.Equal(t, pfp.Offset(1), ilist[0])
			require.Equal(t, pfp.Word(0), parse[len(parse)-1])
		})
	}
}

func TestPrintDocs(t *testing.T) {
	dir := t.TempDir()
	recs := testutil.Pangenome(testutil.NewRand(1), 3, 5000, 20)
	input := testutil.MustWriteFASTA(dir, "in.fa", recs)

	stderr, err := execute(t, "-p", "1k", "--print-docs", input)
	require.NoError(t, err, stderr)
	require.NotContains(t, stderr, "Parsed input")

	b, err := os.ReadFile(input + ".docs")
	require.NoError(t, err)
	require.Equal(t, "seq0\t0\nseq1\t5000\nseq2\t10000\n", string(b))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "pfp.toml")
	require.NoError(t, os.WriteFile(config, []byte("window = 6\nmodulus = 50\nhash = \"cyclic\"\nsai = true\n"), 0664))

	var fv flagValues
	fs := pflag.NewFlagSet("pfp", pflag.ContinueOnError)
	fv.register(fs)
	require.NoError(t, fs.Parse([]string{"-p", "2k"}))
	params, err := resolveParams(fs, &fv, config)
	require.NoError(t, err)
	require.Equal(t, pfp.Params{W: 6, P: 2000, Hash: "cyclic", GetSAI: true}, params)

	recs := testutil.Pangenome(testutil.NewRand(2), 2, 800, 10)
	input := testutil.MustWriteFASTA(dir, "in.fa", recs)
	stderr, err := execute(t, "--config", config, "-o", filepath.Join(dir, "out"), input)
	require.NoError(t, err, stderr)
	require.FileExists(t, filepath.Join(dir, "out.sai"))

	require.NoError(t, os.WriteFile(config, []byte("window = \"wide\"\n"), 0664))
	_, err = execute(t, "--config", config, input)
	require.Error(t, err)
}

func TestParseModulus(t *testing.T) {
	var vectors = []struct {
		input string
		want  uint64
		ok    bool
	}{
		{"100", 100, true},
		{"1k", 1000, true},
		{"1e3", 1000, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"1.5", 0, false},
		{"abc", 0, false},
	}
	for i, v := range vectors {
		got, err := parseModulus(v.input)
		if (err == nil) != v.ok || got != v.want {
			t.Errorf("test %d, parseModulus(%q) = (%d, %v), want (%d, ok=%v)", i, v.input, got, err, v.want, v.ok)
		}
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	input := testutil.MustWriteFASTA(dir, "in.fa", []testutil.Record{{Name: "short", Seq: []byte("ACGT")}})

	var vectors = [][]string{
		{"-w", "33", input},
		{"-p", "0", input},
		{"--hash", "md5", input},
		{"--codec", "lz4", input},
		{filepath.Join(dir, "missing.fa")},
		{"-"},
		{input}, // Only one phrase
		{},
	}
	for i, args := range vectors {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("test %d, %q: got nil error", i, args)
		}
	}
}
