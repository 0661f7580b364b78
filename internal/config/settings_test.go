package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lc/yamlnode/internal/config"
	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/filesys"
)

type SettingsTestSuite struct {
	suite.Suite
	path string
}

func (s *SettingsTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), ".yamlnode", "config.yaml")
}

func (s *SettingsTestSuite) TestMissingFileIsCreatedWithDefaults() {
	got, err := config.LoadSettings(filesys.OS(), s.path)
	s.Require().NoError(err)
	s.Equal(config.DefaultSettings(), got)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	content := string(data)
	s.True(strings.HasPrefix(content, "# yamlnode settings\n"))
	s.Contains(content, "output:\n  format: extended\n  indent: 2\n")
	s.Contains(content, "defaults:\n  write: false\n")
}

func (s *SettingsTestSuite) TestPartialFileIsCompleted() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))
	s.Require().NoError(os.WriteFile(s.path, []byte("output:\n  format: compact\n"), 0o644))

	got, err := config.LoadSettings(filesys.OS(), s.path)
	s.Require().NoError(err)
	s.Equal(document.Compact, got.Format)
	s.Equal(document.DefaultIndent, got.Indent)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Contains(string(data), "format: compact\n  indent: 2\n")
}

func (s *SettingsTestSuite) TestCompleteFileIsLeftAlone() {
	content := "output:\n  format: extended\n  indent: 4\n  header: managed\ndefaults:\n  write: true\n"
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))
	s.Require().NoError(os.WriteFile(s.path, []byte(content), 0o644))

	got, err := config.LoadSettings(filesys.OS(), s.path)
	s.Require().NoError(err)
	s.Equal(config.Settings{
		Format:        document.Extended,
		Indent:        4,
		Header:        "managed",
		WriteDefaults: true,
	}, got)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(content, string(data))
}

func (s *SettingsTestSuite) TestInvalidSettings() {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown format", content: "output:\n  format: json\n"},
		{name: "indent too small", content: "output:\n  indent: 1\n"},
		{name: "indent too large", content: "output:\n  indent: 12\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))
			s.Require().NoError(os.WriteFile(s.path, []byte(tc.content), 0o644))

			_, err := config.LoadSettings(filesys.OS(), s.path)
			s.ErrorIs(err, config.ErrInvalidConfig)
		})
	}
}

func (s *SettingsTestSuite) TestStoreOptions() {
	settings := config.Settings{Format: document.Compact, Indent: 3, Header: "h", WriteDefaults: true}
	st := config.New(filesys.OS(), filepath.Join(s.T().TempDir(), "a.yaml"), settings.StoreOptions()...)
	s.Require().NoError(st.Load())
	s.True(st.Root().WriteDefaults())

	st.Root().StringList("tags", []string{"x"})
	s.Require().NoError(st.Save())

	data, err := os.ReadFile(st.Path())
	s.Require().NoError(err)
	s.Equal("# h\ntags: [x]\n", string(data))
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}
