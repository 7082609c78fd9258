// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "TRACK_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbFileName     string
	lockFileName   string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	lockFilePath   string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize computes the default locations. It must be called once at
// program startup; later calls return the first result.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			appDir:         "track",
			configFileName: "config.yml",
			dbFileName:     "records.json",
			lockFileName:   "lockfile",
			logFileName:    "track.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().appDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func LockFilePath() string {
	return Must().lockFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("records_%s.json", env)
		p.lockFileName = fmt.Sprintf("lockfile_%s", env)
		p.logFileName = fmt.Sprintf("track_%s.log", env)
	}
}

// computePaths resolves every location under the xdg base directories. The
// xdg helpers create missing parent directories.
func (p *Paths) computePaths() error {
	var err error

	p.configFilePath, err = xdg.ConfigFile(
		filepath.Join(p.appDir, p.configFileName),
	)
	if err != nil {
		return fmt.Errorf("resolve config file: %w", err)
	}

	p.dbFilePath, err = xdg.DataFile(filepath.Join(p.appDir, p.dbFileName))
	if err != nil {
		return fmt.Errorf("resolve database file: %w", err)
	}

	p.lockFilePath, err = xdg.CacheFile(
		filepath.Join(p.appDir, p.lockFileName),
	)
	if err != nil {
		return fmt.Errorf("resolve lockfile: %w", err)
	}

	p.logFilePath, err = xdg.DataFile(
		filepath.Join(p.appDir, "log", p.logFileName),
	)
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
