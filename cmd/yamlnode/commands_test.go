package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/suite"
)

type CommandsTestSuite struct {
	suite.Suite
	dir      string
	settings string
	file     string
}

func (s *CommandsTestSuite) SetupTest() {
	color.NoColor = true
	s.dir = s.T().TempDir()
	s.settings = filepath.Join(s.dir, "settings.yaml")
	s.file = filepath.Join(s.dir, "server.yaml")
	s.writeSettings(false)
}

func (s *CommandsTestSuite) writeSettings(writeDefaults bool) {
	content := "defaults:\n  write: false\n"
	if writeDefaults {
		content = "defaults:\n  write: true\n"
	}
	s.Require().NoError(os.WriteFile(s.settings, []byte(content), 0o644))
}

func (s *CommandsTestSuite) write(path, content string) {
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
}

func (s *CommandsTestSuite) read(path string) string {
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	return string(data)
}

// run executes a fresh command tree and returns what it printed.
func (s *CommandsTestSuite) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&app{})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--settings", s.settings}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (s *CommandsTestSuite) TestGetDefaultWriteBack() {
	testCases := []struct {
		name          string
		writeDefaults bool
		expectFile    string
	}{
		{name: "write-defaults on", writeDefaults: true, expectFile: "a: 1\nlimits:\n  max: 10\n"},
		{name: "write-defaults off", writeDefaults: false, expectFile: "a: 1\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.writeSettings(tc.writeDefaults)
			s.write(s.file, "a: 1\n")

			out, errOut, err := s.run("get", s.file, "limits.max", "--type", "int", "--default", "10")
			s.Require().NoError(err)
			s.Equal("10\n", out)
			s.Equal(tc.expectFile, s.read(s.file))
			if tc.writeDefaults {
				s.Contains(errOut, "default written to limits.max")
			} else {
				s.NotContains(errOut, "default written")
			}
		})
	}
}

func (s *CommandsTestSuite) TestGetMissingFails() {
	s.write(s.file, "a: 1\n")

	_, _, err := s.run("get", s.file, "nope", "--type", "int")
	s.ErrorIs(err, errNotFound)
	s.Equal("a: 1\n", s.read(s.file))
}

func (s *CommandsTestSuite) TestSet() {
	s.write(s.file, "a: 1\n")

	out, _, err := s.run("set", s.file, "limits.max", "7")
	s.Require().NoError(err)
	s.Equal("✓ set limits.max\n", out)
	s.Equal("a: 1\nlimits:\n  max: 7\n", s.read(s.file))
}

func (s *CommandsTestSuite) TestRemove() {
	s.write(s.file, "a: 1\nb: 2\n")

	out, _, err := s.run("rm", s.file, "a")
	s.Require().NoError(err)
	s.Equal("✓ removed a\n", out)
	s.Equal("b: 2\n", s.read(s.file))
}

func (s *CommandsTestSuite) TestRemoveMissingLeavesFileAlone() {
	// Not in the encoder's layout, so any rewrite would show.
	s.write(s.file, "b:   2\n")

	out, _, err := s.run("rm", s.file, "a.b")
	s.Require().NoError(err)
	s.Equal("nothing at a.b\n", out)
	s.Equal("b:   2\n", s.read(s.file))
}

func (s *CommandsTestSuite) TestFmtDiff() {
	s.write(s.file, "b:   2\n")

	out, _, err := s.run("fmt", s.file, "--diff")
	s.Require().Error(err)
	s.ErrorContains(err, "is not formatted")
	s.Equal("-b:   2\n+b: 2\n", out)
	s.Equal("b:   2\n", s.read(s.file), "--diff never writes")

	_, _, err = s.run("fmt", s.file)
	s.Require().NoError(err)
	s.Equal("b: 2\n", s.read(s.file))

	out, _, err = s.run("fmt", s.file, "--diff")
	s.Require().NoError(err)
	s.Equal(" b: 2\n", out)
}

func (s *CommandsTestSuite) TestFmtCompact() {
	s.write(s.file, "tags:\n  - a\n  - b\n")

	_, _, err := s.run("fmt", s.file, "--format", "compact")
	s.Require().NoError(err)
	s.Equal("tags: [a, b]\n", s.read(s.file))

	_, _, err = s.run("fmt", s.file, "--format", "json")
	s.Error(err)
}

func (s *CommandsTestSuite) TestInitKeepsExistingFile() {
	out, _, err := s.run("init", s.file)
	s.Require().NoError(err)
	s.Contains(out, "created")
	s.FileExists(s.file)

	s.write(s.file, "a: 1\n")
	out, _, err = s.run("init", s.file)
	s.Require().NoError(err)
	s.Contains(out, "already exists")
	s.Equal("a: 1\n", s.read(s.file))
}

func (s *CommandsTestSuite) TestCheckReportsEveryInvalidFile() {
	good := filepath.Join(s.dir, "good.yaml")
	other := filepath.Join(s.dir, "other.yaml")
	bad := filepath.Join(s.dir, "bad.yaml")
	missing := filepath.Join(s.dir, "missing.yaml")
	s.write(good, "a: 1\n")
	s.write(other, "b: [1, 2]\n")
	s.write(bad, "a: [\n")

	out, _, err := s.run("check", good, other, bad)
	s.Require().Error(err)
	s.EqualError(err, "1 of 3 files invalid")
	s.Contains(out, "✓ "+good)
	s.Contains(out, "✓ "+other)
	s.Contains(out, "✗ "+bad)

	_, errOut, err := s.run("check", good, bad, missing)
	s.EqualError(err, "2 of 3 files invalid")
	s.Contains(errOut, bad)
	s.Contains(errOut, missing)

	_, _, err = s.run("check", good, other)
	s.NoError(err)
}

func (s *CommandsTestSuite) TestKeys() {
	s.write(s.file, "limits:\n  max: 10\n  tags: [a, b]\n")

	out, _, err := s.run("keys", s.file, "limits")
	s.Require().NoError(err)
	s.Contains(out, "max")
	s.Contains(out, "(2 items)")

	_, _, err = s.run("keys", s.file, "limits.max")
	s.ErrorIs(err, errNotFound)
}

func (s *CommandsTestSuite) TestBadSettingsFail() {
	s.write(s.settings, "output:\n  format: json\n")
	s.write(s.file, "a: 1\n")

	_, _, err := s.run("get", s.file, "a")
	s.ErrorContains(err, "output.format")
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}
