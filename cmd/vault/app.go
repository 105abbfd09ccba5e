package main

import (
	"github.com/vrickster/vault/internal/cache"
	"github.com/vrickster/vault/internal/config"
	"github.com/vrickster/vault/internal/events"
	"github.com/vrickster/vault/internal/fetch"
	"github.com/vrickster/vault/internal/handlers"
	"github.com/vrickster/vault/internal/prefs"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/internal/services"
	"github.com/vrickster/vault/internal/storage"
	"github.com/vrickster/vault/pkg/httputil"
	"github.com/vrickster/vault/pkg/logger"
)

var (
	Logger           logger.Logger
	Config           *config.Config
	blobStore        *storage.BoltStore
	dataCache        *cache.TTLCache
	serviceContainer *services.Container
	handler          *handlers.Handler
)

func InitializeLogger() {
	Logger = logger.New()
}

func InitializeConfig() {
	var err error
	Config, err = config.Load()
	if err != nil {
		Logger.Fatalf("[App] failed to load configuration: %v", err)
	}
}

func InitializeStorage() {
	var err error
	blobStore, err = storage.OpenBolt(Config.StorePath)
	if err != nil {
		Logger.Fatalf("[App] failed to open blob store: %v", err)
	}

	dataCache = cache.New(blobStore, Logger)
	Logger.Infof("[App] blob store initialized at %s", Config.StorePath)
}

func InitializeServices() {
	bus := events.NewBus()
	bus.Subscribe(func(e events.Event) {
		switch e.Type {
		case events.TypeError:
			Logger.Warnf("[Fetch] %s failed: %s", e.Resource, e.Err)
		default:
			Logger.Debugf("[Fetch] %s %s", e.Type, e.Resource)
		}
	})

	registry := provider.NewRegistry()
	executor := fetch.New(httputil.NewDefaultClient(), dataCache, bus, Logger)

	animeService := services.NewAnime(executor, registry, Logger, Config.ConsumetBase, Config.AniListBase)
	movieService := services.NewMovies(executor, registry, Logger, Config.ConsumetBase, Config.TMDBBase, Config.TMDBAPIKey)
	mangaService := services.NewManga(executor, registry, Logger, Config.ConsumetBase)

	serviceContainer = &services.Container{
		Anime:     animeService,
		Movies:    movieService,
		Manga:     mangaService,
		Search:    services.NewAggregator(animeService, movieService, mangaService, Logger),
		Prefs:     prefs.New(blobStore, Logger),
		Cache:     dataCache,
		Store:     blobStore,
		Providers: registry,
		Bus:       bus,
		Logger:    Logger,
	}

	handler = handlers.New(serviceContainer, Config.ProxyUpstream)

	Logger.Infof("[App] services initialized successfully")
}
