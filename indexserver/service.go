// Package indexserver exposes the hull and index operations over HTTP.
// Every request builds its own hulls and tree.
package indexserver

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bytearena/hullfilter/common/healthcheck"
	apphandler "github.com/bytearena/hullfilter/indexserver/handler"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type IndexService struct {
	addr   string
	logger io.Writer
	health *healthcheck.HealthCheckServer
}

func NewIndexService(addr string) *IndexService {
	health := healthcheck.NewHealthCheckServer()
	health.Register("intersection", checkIntersection)
	health.Register("index", checkIndex)

	return &IndexService{
		addr:   addr,
		logger: os.Stdout,
		health: health,
	}
}

func (s *IndexService) SetLogger(w io.Writer) {
	s.logger = w
}

func (s *IndexService) Router() http.Handler {
	router := mux.NewRouter()

	routes := map[string]func(w http.ResponseWriter, r *http.Request){
		"/intersection": apphandler.Intersection(),
		"/area":         apphandler.Area(),
		"/boundingbox":  apphandler.BoundingBox(),
		"/rtree":        apphandler.RTree(),
	}

	for path, handler := range routes {
		router.Handle(path, handlers.CombinedLoggingHandler(s.logger,
			http.HandlerFunc(handler),
		)).Methods("POST")
	}

	router.Handle("/health", s.health).Methods("GET")

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(router)
}

func (s *IndexService) ListenAndServe() error {
	log.Println("Index service listening on " + s.addr)

	return http.ListenAndServe(s.addr, s.Router())
}
