// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ethersphere/mtree/cmd/mtree/cmd"
	"github.com/ethersphere/mtree/pkg/merkle"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

func h(data ...[]byte) []byte {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}

// leaf returns the leaf digest of a file with the given content.
func leaf(content string) []byte {
	return h(h([]byte(content)))
}

var testFiles = map[string]string{
	"/x/a.txt": "alpha",
	"/x/b.txt": "bravo",
	"/x/c.txt": "charlie",
	"/x/d.txt": "delta",
	"/y/a.txt": "alpha",
	"/y/b.txt": "bravo",
	"/y/c.txt": "charlie",
	"/y/d.txt": "changed",
	"/z/a.txt": "alpha",
}

func TestRootCmd(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("root", "/x"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	root := h(h(leaf("alpha"), leaf("bravo")), h(leaf("charlie"), leaf("delta")))
	want := hex.EncodeToString(root) + "\n"
	if got := outputBuf.String(); got != want {
		t.Errorf("got output %q, want %q", got, want)
	}
}

func TestRootCmdJSON(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("root", "/z", "--output", "json"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Root   string `json:"root"`
		Files  int    `json:"files"`
		Height int    `json:"height"`
	}
	if err := json.Unmarshal(outputBuf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Root != hex.EncodeToString(leaf("alpha")) || got.Files != 1 || got.Height != 0 {
		t.Errorf("got output %+v", got)
	}
}

func TestRootCmdHashFromConfig(t *testing.T) {
	t.Parallel()

	fs := newFs(t, testFiles)
	if err := afero.WriteFile(fs, homeDir+"/.mtree.yaml", []byte("hash: keccak256\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(fs),
		cmd.WithArgs("root", "/z"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	k := merkle.NewKeccak256()
	k.Write([]byte("alpha"))
	want, err := merkle.LeafHash(merkle.NewKeccak256, k.Sum(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(outputBuf.String()); got != hex.EncodeToString(want) {
		t.Errorf("got output %q, want %x", got, want)
	}
}

func TestRootCmdConfigFile(t *testing.T) {
	t.Parallel()

	fs := newFs(t, testFiles)
	if err := afero.WriteFile(fs, "/etc/mtree.yaml", []byte("output: yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(fs),
		cmd.WithCfgFile("/etc/mtree.yaml"),
		cmd.WithArgs("root", "/z"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	var got map[string]interface{}
	if err := yaml.Unmarshal(outputBuf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["root"] != hex.EncodeToString(leaf("alpha")) {
		t.Errorf("got output %q", outputBuf.String())
	}
}

func TestRootCmdEmptyDir(t *testing.T) {
	t.Parallel()

	fs := newFs(t, testFiles)
	if err := fs.MkdirAll("/empty", 0755); err != nil {
		t.Fatal(err)
	}
	err := newCommand(t,
		cmd.WithFs(fs),
		cmd.WithArgs("root", "/empty"),
		cmd.WithOutput(&bytes.Buffer{}),
	).Execute()
	if !errors.Is(err, merkle.ErrEmptyInput) {
		t.Fatalf("got error %v, want %v", err, merkle.ErrEmptyInput)
	}
}

func TestRootCmdUnknownHash(t *testing.T) {
	t.Parallel()

	err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("root", "/x", "--hash", "md5"),
		cmd.WithOutput(&bytes.Buffer{}),
	).Execute()
	if !errors.Is(err, merkle.ErrUnknownHasher) {
		t.Fatalf("got error %v, want %v", err, merkle.ErrUnknownHasher)
	}
}

func TestLevelsCmd(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("levels", "/x", "--concurrency", "4"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	ab, cd := h(leaf("alpha"), leaf("bravo")), h(leaf("charlie"), leaf("delta"))
	want := []string{
		hex.EncodeToString(h(ab, cd)),
		hex.EncodeToString(ab) + " " + hex.EncodeToString(cd),
		strings.Join([]string{
			hex.EncodeToString(leaf("alpha")),
			hex.EncodeToString(leaf("bravo")),
			hex.EncodeToString(leaf("charlie")),
			hex.EncodeToString(leaf("delta")),
		}, " "),
	}
	got := strings.Split(strings.TrimSuffix(outputBuf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("levels output: mismatch (-want +have):\n%s", diff)
	}
}

func TestDiffCmd(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("diff", "/x", "/y"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(outputBuf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), outputBuf.String())
	}
	want := "2 " + hex.EncodeToString(leaf("delta")) + " " + hex.EncodeToString(leaf("changed")) + " d.txt d.txt"
	if lines[2] != want {
		t.Errorf("got line %q, want %q", lines[2], want)
	}
	if !strings.HasPrefix(lines[0], "0 ") || !strings.HasPrefix(lines[1], "1 ") {
		t.Errorf("unexpected depths in output %q", outputBuf.String())
	}
}

func TestDiffCmdLeavesOnlyYAML(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("diff", "/x", "/y", "--leaves-only", "--output", "yaml"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}

	var got []struct {
		Depth  int      `yaml:"depth"`
		X      string   `yaml:"x"`
		Y      string   `yaml:"y"`
		Leaf   bool     `yaml:"leaf"`
		XPaths []string `yaml:"xPaths"`
		YPaths []string `yaml:"yPaths"`
	}
	if err := yaml.Unmarshal(outputBuf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d pairs, want 1", len(got))
	}
	p := got[0]
	if p.Depth != 2 || !p.Leaf || p.X != hex.EncodeToString(leaf("delta")) || p.Y != hex.EncodeToString(leaf("changed")) {
		t.Errorf("got pair %+v", p)
	}
	if diff := cmp.Diff([]string{"d.txt"}, p.XPaths); diff != "" {
		t.Errorf("x paths: mismatch (-want +have):\n%s", diff)
	}
}

func TestDiffCmdSame(t *testing.T) {
	t.Parallel()

	var outputBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("diff", "/x", "/x"),
		cmd.WithOutput(&outputBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}
	if got := outputBuf.String(); got != "" {
		t.Errorf("got output %q, want none", got)
	}
}

func TestDiffCmdShapeMismatch(t *testing.T) {
	t.Parallel()

	err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("diff", "/x", "/z"),
		cmd.WithOutput(&bytes.Buffer{}),
	).Execute()
	if !errors.Is(err, merkle.ErrShapeMismatch) {
		t.Fatalf("got error %v, want %v", err, merkle.ErrShapeMismatch)
	}
}

func TestDiffCmdMissingDirs(t *testing.T) {
	t.Parallel()

	err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("diff", "/missing-x", "/missing-y"),
		cmd.WithOutput(&bytes.Buffer{}),
	).Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, dir := range []string{"/missing-x", "/missing-y"} {
		if !strings.Contains(err.Error(), dir) {
			t.Errorf("error %q does not mention %s", err, dir)
		}
	}
}

func TestMetricsFlag(t *testing.T) {
	t.Parallel()

	var outputBuf, errBuf bytes.Buffer
	if err := newCommand(t,
		cmd.WithFs(newFs(t, testFiles)),
		cmd.WithArgs("root", "/x", "--metrics"),
		cmd.WithOutput(&outputBuf),
		cmd.WithErrorOutput(&errBuf),
	).Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errBuf.String(), "mtree_merkle_build_count") {
		t.Errorf("metrics output %q does not contain the build counter", errBuf.String())
	}
}
