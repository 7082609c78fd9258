package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type CLITest struct {
	Name     string
	Flags    map[string]string
	Bools    []string
	Expected Config
}

var cliTestCases = []CLITest{
	{
		Name: "no flags keeps file values",
		Expected: Config{
			Backend: BackendJSON,
			Paths:   PathsConfig{DB: "/from/file.json"},
			Report:  ReportConfig{Window: defaultWindow},
		},
	},
	{
		Name: "explicit paths override file values",
		Flags: map[string]string{
			"db-dir":   "/tmp/db.json",
			"lockfile": "/tmp/lockfile",
		},
		Expected: Config{
			Backend: BackendJSON,
			Paths:   PathsConfig{DB: "/tmp/db.json", Lockfile: "/tmp/lockfile"},
			Report:  ReportConfig{Window: defaultWindow},
		},
	},
	{
		Name: "backend is normalised",
		Flags: map[string]string{
			"backend": " SQLite ",
		},
		Bools: []string{"verbose", "no-color"},
		Expected: Config{
			Backend: BackendSQLite,
			Paths:   PathsConfig{DB: "/from/file.json"},
			Report:  ReportConfig{Window: defaultWindow},
			System:  SystemConfig{Verbose: true, NoColor: true},
		},
	},
}

func TestWithCLIConfig(t *testing.T) {
	for _, tc := range cliTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			f := flag.NewFlagSet("track", flag.ContinueOnError)

			for _, name := range []string{"db-dir", "lockfile", "backend"} {
				_ = f.String(name, "", "")
			}

			for _, name := range []string{"verbose", "no-color"} {
				_ = f.Bool(name, false, "")
			}

			for k, v := range tc.Flags {
				require.NoError(t, f.Set(k, v))
			}

			for _, k := range tc.Bools {
				require.NoError(t, f.Set(k, "true"))
			}

			ctx := cli.NewContext(&cli.App{}, f, nil)

			cfg, err := New(
				func(c *Config) error {
					c.Paths.DB = "/from/file.json"
					return nil
				},
				WithCLIConfig(ctx),
			)
			require.NoError(t, err)

			assert.Equal(t, tc.Expected, *cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{Backend: BackendBolt, Report: ReportConfig{Window: time.Hour}}},
		{name: "unknown backend", cfg: Config{Backend: "csv", Report: ReportConfig{Window: time.Hour}}, wantErr: true},
		{name: "zero window", cfg: Config{Backend: BackendJSON}, wantErr: true},
		{
			name:    "unexpanded home",
			cfg:     Config{Backend: BackendJSON, Report: ReportConfig{Window: time.Hour}, Paths: PathsConfig{DB: "~/db.json"}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDefaultDBPath(t *testing.T) {
	assert.Equal(t, "/data/track/records.json", defaultDBPath("/data/track/records.json", BackendJSON))
	assert.Equal(t, "/data/track/records.db", defaultDBPath("/data/track/records.json", BackendBolt))
	assert.Equal(t, "/data/track/records.sqlite", defaultDBPath("/data/track/records.json", BackendSQLite))
}

func TestApplyPromptOptions(t *testing.T) {
	c := Config{Backend: BackendJSON, Report: ReportConfig{Window: defaultWindow}}

	err := applyPromptOptions(&c, PromptOptions{Backend: "sqlite", Window: "2w", Notify: true})
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, c.Backend)
	assert.Equal(t, 14*24*time.Hour, c.Report.Window)
	assert.True(t, c.Hooks.Notify)

	err = applyPromptOptions(&c, PromptOptions{Backend: "json", Window: "soon"})
	require.Error(t, err)
	assert.Equal(t, BackendSQLite, c.Backend)
}
