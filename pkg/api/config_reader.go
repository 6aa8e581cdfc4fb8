package api

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
	yaml "gopkg.in/yaml.v2"
)

// ConfigReader reads the api config from file
type ConfigReader interface {
	ReadConfigFromFile(string) (*APIConfig, error)
}

type configReaderImpl struct {
	lookuper envconfig.Lookuper
}

// NewConfigReader returns a new config.ConfigReader
func NewConfigReader(lookuper envconfig.Lookuper) ConfigReader {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	return &configReaderImpl{
		lookuper: envconfig.PrefixLookuper("ESCS_", lookuper),
	}
}

// ReadConfigFromFile is used to read configuration from a file set from a configmap
func (h *configReaderImpl) ReadConfigFromFile(configPath string) (config *APIConfig, err error) {

	log.Info().Msgf("Reading %v file...", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, errors.Wrapf(err, "reading config file %v failed", configPath)
	}

	// unmarshal into structs
	config = &APIConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return config, errors.Wrapf(err, "unmarshalling config file %v failed", configPath)
	}

	// override values from envvars
	if err = envconfig.ProcessWith(context.Background(), config, h.lookuper); err != nil {
		return
	}

	// fill in all the defaults for empty values
	config.SetDefaults()

	// validate the config
	err = config.Validate()
	if err != nil {
		return
	}

	log.Info().Msgf("Finished reading %v file successfully", configPath)

	return
}
