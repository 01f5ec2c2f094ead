package main

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const (
	dataPathEnvVar  = "PIANOPALS_DATA_PATH"
	storeEnvVar     = "PIANOPALS_STORE"
	configFileName  = "config.yaml"
	storeSqlite     = "sqlite"
	storeBadger     = "badger"
	storeMemory     = "memory"
	defaultLogFile  = "debug.log"
	defaultMidiPort = ""
)

type config struct {
	DataDir string `yaml:"dataDir"`
	Store   string `yaml:"store"`
	MidiIn  string `yaml:"midiIn"`
	LogFile string `yaml:"logFile"`
	// 0 seeds the games from the clock
	Seed int64 `yaml:"seed"`
}

func defaultConfig() config {
	return config{
		Store:   storeSqlite,
		MidiIn:  defaultMidiPort,
		LogFile: defaultLogFile,
	}
}

// loadConfig layers the config file and then the environment on top of the
// defaults. dataDir, when set, wins over both and picks the folder the
// default config file is read from. An explicit path must exist; the
// default path is optional.
func loadConfig(path string, dataDir string) (config, error) {
	cfg := defaultConfig()

	folderDir := dataDir
	if folderDir == "" {
		folderDir = os.Getenv(dataPathEnvVar)
	}

	explicit := path != ""
	if !explicit {
		folder, err := getGameDataFolder(folderDir)
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(folder, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg.applyEnv().withDataDir(dataDir), nil
		}
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing "+path)
	}

	return cfg.applyEnv().withDataDir(dataDir), nil
}

func (cfg config) withDataDir(dataDir string) config {
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg
}

func (cfg config) applyEnv() config {
	if dataDir := os.Getenv(dataPathEnvVar); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if store := os.Getenv(storeEnvVar); store != "" {
		cfg.Store = store
	}
	return cfg
}

func (cfg config) validate() error {
	switch cfg.Store {
	case storeSqlite, storeBadger, storeMemory:
		return nil
	default:
		return errors.New("unknown store " + cfg.Store + " (want sqlite, badger or memory)")
	}
}

func openProgressStore(cfg config) (*recordStore, error) {
	switch cfg.Store {
	case storeMemory:
		return openMemoryStore(), nil
	case storeBadger:
		return openBadgerStore(cfg.DataDir)
	default:
		return openSqliteStore(cfg.DataDir)
	}
}
