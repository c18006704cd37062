// Package msgservice is an in-memory stand-in for the remote message
// service, routed with gorilla/mux. Tests use it to exercise the client
// against real HTTP.
package msgservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/tOgg1/msgboard/internal/models"
)

// Route names accepted by FailNext.
const (
	RouteList   = "list"
	RouteCreate = "create"
	RouteUpdate = "update"
	RouteDelete = "delete"
)

// Service stores messages and serves GET/POST/PUT/DELETE /messages[/{id}].
type Service struct {
	mu       sync.Mutex
	nextID   int64
	messages []models.Message
	failures map[string][]int
	requests map[string]int
	now      func() time.Time
}

// New returns an empty service with ids starting at 1.
func New() *Service {
	return &Service{
		nextID:   1,
		failures: make(map[string][]int),
		requests: make(map[string]int),
		now:      time.Now,
	}
}

// SetClock replaces the creation-time source.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed inserts records as-is, bypassing id and time assignment.
func (s *Service) Seed(msgs ...models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range msgs {
		s.messages = append(s.messages, msg)
		if n, err := strconv.ParseInt(msg.ID.String(), 10, 64); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
}

// Messages returns a copy of the stored collection.
func (s *Service) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// SetContent changes a stored record's content the way another client's
// edit would. It reports whether id exists.
func (s *Service) SetContent(id models.ID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			return true
		}
	}
	return false
}

// FailNext makes the next request on route answer with status.
// Repeated calls queue further failures.
func (s *Service) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], status)
}

// Requests reports how many requests hit route.
func (s *Service) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// Router builds the mux router for the service.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/messages", s.list).Methods(http.MethodGet)
	r.HandleFunc("/messages", s.create).Methods(http.MethodPost)
	r.HandleFunc("/messages/{id}", s.update).Methods(http.MethodPut)
	r.HandleFunc("/messages/{id}", s.delete).Methods(http.MethodDelete)
	return r
}

// Start serves the router on a loopback httptest server.
// The caller closes it.
func (s *Service) Start() *httptest.Server {
	return httptest.NewServer(s.Router())
}

// injected consumes a queued failure for route, if any.
func (s *Service) injected(route string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[route]++
	queue := s.failures[route]
	if len(queue) == 0 {
		return 0, false
	}
	s.failures[route] = queue[1:]
	return queue[0], true
}

func (s *Service) list(w http.ResponseWriter, _ *http.Request) {
	if status, ok := s.injected(RouteList); ok {
		writeError(w, status)
		return
	}
	msgs := s.Messages()
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Service) create(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.injected(RouteCreate); ok {
		writeError(w, status)
		return
	}
	var req models.CreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	msg := models.Message{
		ID:        models.ID(strconv.FormatInt(s.nextID, 10)),
		Username:  req.Username,
		Content:   req.Content,
		CreatedAt: models.Timestamp{Time: s.now().UTC().Truncate(time.Millisecond)},
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, msg)
}

func (s *Service) update(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.injected(RouteUpdate); ok {
		writeError(w, status)
		return
	}
	id := models.ID(mux.Vars(r)["id"])
	var req models.UpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = req.Content
			msg := s.messages[i]
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, msg)
			return
		}
	}
	s.mu.Unlock()
	writeError(w, http.StatusNotFound)
}

func (s *Service) delete(w http.ResponseWriter, r *http.Request) {
	if status, ok := s.injected(RouteDelete); ok {
		writeError(w, status)
		return
	}
	id := models.ID(mux.Vars(r)["id"])

	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.mu.Unlock()
	writeError(w, http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}
