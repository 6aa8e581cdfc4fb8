package api

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// WatchConfigFile re-reads the config file whenever it changes and hands the new config to reload; it blocks until ctx is done
func WatchConfigFile(ctx context.Context, configReader ConfigReader, configPath string, reload func(*APIConfig)) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// configmaps are mounted as symlinks that get swapped, so watch the directory rather than the file
	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		return err
	}

	log.Info().Msgf("Watching %v for config changes...", configPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isConfigChange(event, configPath) {
				continue
			}

			log.Info().Str("event", event.Op.String()).Msgf("Config file %v changed, reloading...", configPath)

			config, err := configReader.ReadConfigFromFile(configPath)
			if err != nil {
				log.Error().Err(err).Msgf("Failed reloading config file %v, keeping current config", configPath)
				continue
			}

			reload(config)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msgf("Error watching config file %v", configPath)
		}
	}
}

func isConfigChange(event fsnotify.Event, configPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	// a swapped configmap shows up as a create of the ..data symlink
	if filepath.Base(event.Name) == "..data" {
		return true
	}

	return filepath.Clean(event.Name) == filepath.Clean(configPath)
}
