package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/logging"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/fivetwenty-io/giantswarm/pkg/gsclient"
	"github.com/spf13/viper"
)

// createClient builds a client from the CLI configuration. The returned
// release func closes the client and flushes the logger.
func createClient(ctx context.Context) (giantswarm.Client, func(), error) {
	config := loadConfig()

	logger, err := logging.New(viper.GetBool("verbose"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cache, err := createCache(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	databasePath, err := defaultPath(config.DatabasePath, constants.DefaultEnvironmentDBName)
	if err != nil {
		return nil, nil, err
	}

	client, err := gsclient.New(ctx, &giantswarm.Config{
		Endpoint:       config.Endpoint,
		Token:          config.Token,
		TokenPersister: NewConfigPersister(),
		Cache:          cache,
		DatabasePath:   databasePath,
		Logger:         logger,
		Debug:          viper.GetBool("verbose"),
	})
	if err != nil {
		if closer, ok := cache.(io.Closer); ok {
			_ = closer.Close()
		}

		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	release := func() {
		_ = client.Close()
		_ = logger.Sync()
	}

	return client, release, nil
}

// createCache opens the response cache selected by --cache.
func createCache(ctx context.Context, config *Config) (giantswarm.Cache, error) {
	cacheType := giantswarm.CacheType(config.Cache)
	if cacheType == "" {
		cacheType = DefaultCacheType
	}

	builder := giantswarm.NewCacheBuilder().WithType(cacheType)

	switch cacheType {
	case giantswarm.CacheTypeMemory:
		builder.WithMemoryConfig(constants.DefaultCacheSize, constants.DefaultCacheTTL)
	case giantswarm.CacheTypeSQLite:
		path, err := defaultPath(config.CachePath, constants.CacheDBName)
		if err != nil {
			return nil, err
		}

		builder.WithSQLitePath(path)
	case giantswarm.CacheTypeNATS:
		if config.NATSURL == "" {
			return nil, constants.ErrNATSURLRequired
		}

		builder.WithNATSConfig(&giantswarm.NATSKVConfig{
			URL: config.NATSURL,
			TTL: constants.DefaultCacheTTL,
		})
	}

	cache, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return cache, nil
}

// defaultPath returns path, or name inside the config directory.
func defaultPath(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}
