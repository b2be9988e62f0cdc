package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/tv", "/media/tv"},
		{"single trailing slash", "/media/tv/", "/media/tv"},
		{"multiple trailing slashes", "/media/tv///", "/media/tv"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
		{"home expansion", "~/rips/", filepath.Join(home, "rips")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RequiresFolderAndShow(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "empty folder and show")

	cfg.InputDir = "/in"
	assert.ErrorContains(t, cfg.Validate(), "show name is required")

	cfg.ShowName = "   "
	assert.Error(t, cfg.Validate(), "blank show name")

	cfg.ShowName = "Futurama"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CheckOnlySkipsPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyTools(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Decoder = ""
	assert.ErrorContains(t, cfg.Validate(), "decoder")

	cfg = DefaultConfig()
	cfg.CheckOnly = true
	cfg.Encoder = " "
	assert.ErrorContains(t, cfg.Validate(), "encoder")
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.OutputDir)
	assert.Equal(t, DefaultPattern, cfg.SeasonEpisodePattern)
	assert.Equal(t, "mplayer", cfg.Decoder)
	assert.Equal(t, "lame", cfg.Encoder)
	assert.Equal(t, "phone", cfg.EncoderPreset)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.SkipExisting)
	assert.False(t, cfg.RemoveWav)
}

// execute runs the root command with args and returns the Config handed to
// the run function.
func execute(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var got *Config
	cmd := NewCommand("test", func(_ *cobra.Command, cfg *Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	err := cmd.Execute()
	return got, err
}

func TestNewCommand_Flags(t *testing.T) {
	cfg, err := execute(t,
		"-s", "The Simpsons",
		"-o", "/rips/out/",
		"-r", `(?P<season_number>\d+)x(?P<episode_number>\d+)`,
		"--skip-existing", "--remove-wav", "-v", "--no-color",
		"/media/simpsons/",
	)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/media/simpsons", cfg.InputDir)
	assert.Equal(t, "/rips/out", cfg.OutputDir)
	assert.Equal(t, "The Simpsons", cfg.ShowName)
	assert.Equal(t, `(?P<season_number>\d+)x(?P<episode_number>\d+)`, cfg.SeasonEpisodePattern)
	assert.True(t, cfg.SkipExisting)
	assert.True(t, cfg.RemoveWav)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "phone", cfg.EncoderPreset)
}

func TestNewCommand_RelativeFoldersBecomeAbsolute(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := execute(t, "-s", "Taxi", "-o", "rips/", ".")
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.InputDir)
	assert.Equal(t, filepath.Join(wd, "rips"), cfg.OutputDir)
}

func TestNewCommand_LongFlags(t *testing.T) {
	cfg, err := execute(t, "--show", "Frasier", "--output-location", "/out", "--dry-run", "/in")
	require.NoError(t, err)
	assert.Equal(t, "Frasier", cfg.ShowName)
	assert.Equal(t, "/out", cfg.OutputDir)
	assert.True(t, cfg.DryRun)
}

func TestNewCommand_MissingShow(t *testing.T) {
	_, err := execute(t, "/in")
	assert.ErrorContains(t, err, "show name is required")
}

func TestNewCommand_MissingFolder(t *testing.T) {
	_, err := execute(t, "-s", "Show")
	assert.ErrorContains(t, err, "input folder")
}

func TestNewCommand_TooManyFolders(t *testing.T) {
	_, err := execute(t, "-s", "Show", "/a", "/b")
	assert.Error(t, err)
}

func TestNewCommand_CheckOnly(t *testing.T) {
	cfg, err := execute(t, "--check")
	require.NoError(t, err)
	assert.True(t, cfg.CheckOnly)
}

func TestNewCommand_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TVAUDIO_SHOW", "Seinfeld")
	t.Setenv("TVAUDIO_DECODER", "/opt/mplayer/bin/mplayer")

	cfg, err := execute(t, "/in")
	require.NoError(t, err)
	assert.Equal(t, "Seinfeld", cfg.ShowName)
	assert.Equal(t, "/opt/mplayer/bin/mplayer", cfg.Decoder)
	assert.Equal(t, "lame", cfg.Encoder)
}

func TestNewCommand_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TVAUDIO_SHOW", "Seinfeld")
	t.Setenv("TVAUDIO_ENCODER", "lame3")

	cfg, err := execute(t, "-s", "Cheers", "--encoder", "lame", "/in")
	require.NoError(t, err)
	assert.Equal(t, "Cheers", cfg.ShowName)
	assert.Equal(t, "lame", cfg.Encoder)
}

func TestNewCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tvaudio.yaml")
	content := "folder: /srv/tv/Taxi\n" +
		"show: Taxi\n" +
		"output_location: /srv/rips\n" +
		"remove_wav: true\n" +
		"decoder: mplayer-nightly\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/tv/Taxi", cfg.InputDir)
	assert.Equal(t, "Taxi", cfg.ShowName)
	assert.Equal(t, "/srv/rips", cfg.OutputDir)
	assert.True(t, cfg.RemoveWav)
	assert.Equal(t, "mplayer-nightly", cfg.Decoder)
	assert.Equal(t, DefaultPattern, cfg.SeasonEpisodePattern, "keys absent from the file keep defaults")
}

func TestNewCommand_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tvaudio.yml")
	require.NoError(t, os.WriteFile(path, []byte("show: Taxi\n"), 0o644))
	t.Setenv("TVAUDIO_SHOW", "Wings")

	cfg, err := execute(t, "--config", path, "/in")
	require.NoError(t, err)
	assert.Equal(t, "Wings", cfg.ShowName)
}

func TestNewCommand_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "-s", "x", "/in")
	assert.ErrorContains(t, err, "config file")
}
