package main

import (
	"flag"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmocds"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmocover"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmolog"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmostore"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	trace := flag.Bool("trace", false, "enable trace logging (very noisy)")
	flag.Parse()

	switch {
	case *trace:
		log.SetLevel(log.TraceLevel)
	case *verbose:
		log.SetLevel(log.DebugLevel)
	}

	cfg := pmocds.LoadConfig(*configPath)

	renderers, err := pmorender.LoadRegistry(cfg.Renderers.Dir)
	if err != nil {
		log.Fatalf("❌ cannot load renderer profiles: %v", err)
	}

	cache, err := pmocover.NewCache(cfg.Cache.Dir, cfg.Cache.Limit)
	if err != nil {
		log.Fatalf("❌ cannot open thumbnail cache: %v", err)
	}

	root := &pmostore.Container{ID: "0", ParentID: "-1", Name: cfg.Server.FriendlyName}
	store := pmostore.NewStore(root)

	service := &pmocds.Service{
		Store:     store,
		Renderers: renderers,
		URLs:      pmocds.NewURLProvider(cfg.BaseURL()),
	}

	mux := http.NewServeMux()
	pmolog.LoggerWeb(mux)
	cache.ServeMux(mux)
	service.ServeMux(mux)

	port := cfg.Host.HTTPPort
	if port == 0 {
		port = 5002
	}
	addr := fmt.Sprintf(":%d", port)
	log.Infof("✅ %s listening on %s (base URL %s)", cfg.Server.FriendlyName, addr, cfg.BaseURL())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("❌ HTTP server stopped: %v", err)
	}
}
