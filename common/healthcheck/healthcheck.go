package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bytearena/hullfilter/common/utils"
)

type HealthCheckHandler func() (bool, error)

type HealthCheck struct {
	Name   string
	Status bool
	Error  string `json:",omitempty"`
}

type HealthCheckHttpResponse struct {
	Checks     []HealthCheck
	StatusCode int
}

type namedChecker struct {
	name    string
	handler HealthCheckHandler
}

// HealthCheckServer answers with the status of every registered check, and
// a 500 as soon as one of them fails.
type HealthCheckServer struct {
	mutex    sync.Mutex
	checkers []namedChecker
}

func NewHealthCheckServer() *HealthCheckServer {
	return &HealthCheckServer{}
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	server.checkers = append(server.checkers, namedChecker{name, handler})
}

func (server *HealthCheckServer) Run() HealthCheckHttpResponse {
	server.mutex.Lock()
	checkers := append([]namedChecker(nil), server.checkers...)
	server.mutex.Unlock()

	res := HealthCheckHttpResponse{
		Checks:     make([]HealthCheck, 0, len(checkers)),
		StatusCode: http.StatusOK,
	}

	for _, checker := range checkers {
		ok, err := checker.handler()

		check := HealthCheck{Name: checker.name, Status: ok && err == nil}
		if err != nil {
			check.Error = err.Error()
		}

		if !check.Status {
			res.StatusCode = http.StatusInternalServerError
		}

		res.Checks = append(res.Checks, check)
	}

	return res
}

func (server *HealthCheckServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := server.Run()

	data, err := json.Marshal(res)
	if err != nil {
		utils.Debug("healthcheck", "Failed to marshal response: "+err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}
