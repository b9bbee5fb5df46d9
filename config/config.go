package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/bytearena/hullfilter/filter"
	"github.com/kardianos/osext"
	bettererrors "github.com/xtuc/better-errors"
)

const DefaultFilename = "hullfilter.json"

type Config struct {
	MinFanout        int     `json:"m"`
	MaxFanout        int     `json:"M"`
	ContainmentRatio float64 `json:"containment_ratio"`
	Engine           string  `json:"engine"`
	Listen           string  `json:"listen"`
}

func Default() Config {
	options := filter.DefaultOptions()

	return Config{
		MinFanout:        options.MinFanout,
		MaxFanout:        options.MaxFanout,
		ContainmentRatio: options.ContainmentRatio,
		Engine:           options.Engine,
		Listen:           ":8080",
	}
}

func (conf Config) FilterOptions() filter.Options {
	options := filter.DefaultOptions()
	options.MinFanout = conf.MinFanout
	options.MaxFanout = conf.MaxFanout
	options.ContainmentRatio = conf.ContainmentRatio
	options.Engine = conf.Engine

	return options
}

func (conf Config) Validate() error {
	if strings.TrimSpace(conf.Listen) == "" {
		return bettererrors.NewFromString("Listen address must be provided in the configuration")
	}

	return conf.FilterOptions().Validate()
}

// LoadConfig reads a JSON config file. Missing keys keep their default
// value.
func LoadConfig(filename string) (Config, error) {
	conf := Default()

	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return conf, bettererrors.
			NewFromString("Cannot read config file").
			SetContext("file", filename).
			With(bettererrors.NewFromErr(err))
	}

	if err := json.Unmarshal(data, &conf); err != nil {
		return conf, bettererrors.
			NewFromString("Invalid JSON in config file").
			SetContext("file", filename).
			With(bettererrors.NewFromErr(err))
	}

	if err := conf.Validate(); err != nil {
		return conf, bettererrors.
			NewFromString("Invalid config file").
			SetContext("file", filename).
			With(bettererrors.NewFromErr(err))
	}

	return conf, nil
}

func DefaultConfigPath() (string, error) {
	exfolder, err := osext.ExecutableFolder()
	if err != nil {
		return "", err
	}

	return path.Join(exfolder, DefaultFilename), nil
}

// GetConfig loads filename, or the default file next to the executable
// when filename is empty. A missing default file yields the defaults.
func GetConfig(filename string) (Config, error) {
	if filename != "" {
		return LoadConfig(filename)
	}

	configpath, err := DefaultConfigPath()
	if err != nil {
		return Default(), nil
	}

	if _, err := os.Stat(configpath); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadConfig(configpath)
}
