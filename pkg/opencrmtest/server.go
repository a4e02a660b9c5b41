// Package opencrmtest provides an in-memory OpenCRM REST API for tests.
//
// The server speaks the same wire protocol as a real OpenCRM system: form
// POSTs to /api/rest/<endpoint> authenticated with keys, KEY1/KEY2 headers or
// a session access key. It keeps per-endpoint request counts and supports
// fault injection so callers can exercise error paths.
//
//	srv := opencrmtest.NewServer()
//	defer srv.Close()
//
//	srv.Seed(opencrm.LeadsModule, map[string]string{"lastname": "Doe"})
//	cli, _ := crmclient.New(srv.Config(opencrm.AuthMethodKeys))
package opencrmtest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Default credentials accepted by a new Server.
const (
	DefaultSystemName = "testsystem"
	DefaultAPIKey     = "test-api-key"
	DefaultPassKey    = "test-pass-key"
	DefaultAccessKey  = "test-access-key"
)

// Fault is an injected failure for one endpoint.
type Fault struct {
	StatusCode int
	Body       string
	// Times limits how often the fault fires; zero means until cleared.
	Times int
}

// RecordedRequest is one request seen by the server.
type RecordedRequest struct {
	Endpoint  string
	Form      map[string]string
	Header    http.Header
	RequestID string
}

// Option configures a Server.
type Option func(*Server)

// WithCredentials sets the accepted API and pass keys.
func WithCredentials(apiKey, passKey string) Option {
	return func(s *Server) {
		s.apiKey = apiKey
		s.passKey = passKey
	}
}

// WithAccessKey sets the session key handed out by login. An empty key
// makes login succeed without one.
func WithAccessKey(accessKey string) Option {
	return func(s *Server) {
		s.accessKey = accessKey
	}
}

// WithPlainTextLogin makes login answer with the bare access key instead
// of a JSON object.
func WithPlainTextLogin() Option {
	return func(s *Server) {
		s.plainLogin = true
	}
}

// WithBareIDs makes edit endpoints answer with the bare crmid instead of
// a JSON object.
func WithBareIDs() Option {
	return func(s *Server) {
		s.bareIDs = true
	}
}

// WithEmptyNotFound makes get endpoints answer an unknown crmid with 200
// and an empty body instead of 404.
func WithEmptyNotFound() Option {
	return func(s *Server) {
		s.emptyNotFound = true
	}
}

// WithLogger logs every request through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server is a fake OpenCRM system backed by a MemoryStore.
type Server struct {
	Store  *MemoryStore
	Router *chi.Mux

	server *httptest.Server
	logger *slog.Logger

	apiKey        string
	passKey       string
	accessKey     string
	plainLogin    bool
	bareIDs       bool
	emptyNotFound bool

	mu       sync.Mutex
	faults   map[string]*Fault
	counts   map[string]int
	requests []RecordedRequest
}

// NewServer starts a fake OpenCRM server on a loopback port.
func NewServer(opts ...Option) *Server {
	s := &Server{
		Store:     NewMemoryStore(),
		apiKey:    DefaultAPIKey,
		passKey:   DefaultPassKey,
		accessKey: DefaultAccessKey,
		faults:    make(map[string]*Fault),
		counts:    make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)

	if s.logger != nil {
		r.Use(s.requestLog)
	}

	r.Post(constants.APIPath+"/{endpoint}", s.handle)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusNotFound, "Unknown endpoint")
	})

	s.Router = r
	s.server = httptest.NewServer(r)

	return s
}

// URL returns the base URL to use as Config.BaseURL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// Config returns a client config pointing at the server.
func (s *Server) Config(method opencrm.AuthMethod) *opencrm.Config {
	return &opencrm.Config{
		SystemName: DefaultSystemName,
		APIKey:     s.apiKey,
		PassKey:    s.passKey,
		AuthMethod: method,
		BaseURL:    s.server.URL,
	}
}

// Seed inserts records into module and returns their crmids in order.
func (s *Server) Seed(module opencrm.Module, records ...map[string]string) []int {
	ids := make([]int, 0, len(records))
	for _, record := range records {
		ids = append(ids, s.Store.Insert(module, record))
	}

	return ids
}

// Fail injects fault on endpoint, replacing any previous one.
func (s *Server) Fail(endpoint string, fault Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults[endpoint] = &fault
}

// ClearFaults removes every injected fault.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults = make(map[string]*Fault)
}

// Count returns how many requests reached endpoint.
func (s *Server) Count(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[endpoint]
}

// Logins returns how many login requests the server received.
func (s *Server) Logins() int {
	return s.Count(constants.LoginEndpoint)
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

// LastRequest returns the most recent request to endpoint.
func (s *Server) LastRequest(endpoint string) (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Endpoint == endpoint {
			return s.requests[i], true
		}
	}

	return RecordedRequest{}, false
}

// Reset clears records, faults and request history.
func (s *Server) Reset() {
	s.Store.Reset()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults = make(map[string]*Fault)
	s.counts = make(map[string]int)
	s.requests = nil
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("opencrmtest request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func (s *Server) record(r *http.Request, endpoint string) *Fault {
	form := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		form[key] = r.PostForm.Get(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[endpoint]++
	s.requests = append(s.requests, RecordedRequest{
		Endpoint:  endpoint,
		Form:      form,
		Header:    r.Header.Clone(),
		RequestID: chimw.GetReqID(r.Context()),
	})

	fault, ok := s.faults[endpoint]
	if !ok {
		return nil
	}

	out := *fault

	if fault.Times > 0 {
		fault.Times--
		if fault.Times == 0 {
			delete(s.faults, endpoint)
		}
	}

	return &out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")

	err := r.ParseForm()
	if err != nil {
		writeText(w, http.StatusBadRequest, "Malformed form body")

		return
	}

	if fault := s.record(r, endpoint); fault != nil {
		writeText(w, fault.StatusCode, fault.Body)

		return
	}

	if endpoint == constants.LoginEndpoint {
		s.handleLogin(w, r)

		return
	}

	if !s.authorized(r) {
		writeText(w, http.StatusUnauthorized, "Invalid credentials")

		return
	}

	for _, module := range opencrm.Modules() {
		switch endpoint {
		case module.ListEndpoint:
			s.handleList(w, r, module)
		case module.CountEndpoint:
			s.handleCount(w, r, module)
		case module.GetEndpoint:
			s.handleGet(w, r, module)
		case module.EditEndpoint:
			s.handleEdit(w, r, module)
		default:
			continue
		}

		return
	}

	writeText(w, http.StatusNotFound, "Unknown endpoint")
}

func (s *Server) authorized(r *http.Request) bool {
	if r.PostForm.Get(constants.FieldAPIKey) == s.apiKey && r.PostForm.Get(constants.FieldPassKey) == s.passKey {
		return true
	}

	if r.Header.Get(constants.HeaderKey1) == s.apiKey && r.Header.Get(constants.HeaderKey2) == s.passKey {
		return true
	}

	accessKey := r.PostForm.Get(constants.FieldAccessKey)

	return s.accessKey != "" && accessKey == s.accessKey
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.PostForm.Get(constants.FieldLoginKey) != s.apiKey || r.PostForm.Get(constants.FieldPassKey) != s.passKey {
		writeText(w, http.StatusUnauthorized, "Invalid credentials")

		return
	}

	if s.plainLogin {
		writeText(w, http.StatusOK, s.accessKey+"\n")

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{constants.FieldAccessKey: s.accessKey})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, module opencrm.Module) {
	matches, ok := s.find(w, r, module)
	if !ok {
		return
	}

	start, end := 0, len(matches)

	if raw := r.PostForm.Get(constants.FieldLimitStart); raw != "" {
		start, _ = strconv.Atoi(raw)
	}

	if raw := r.PostForm.Get(constants.FieldLimitEnd); raw != "" {
		end, _ = strconv.Atoi(raw)
	}

	start = min(max(start, 0), len(matches))
	end = min(max(end, start), len(matches))

	writeJSON(w, http.StatusOK, matches[start:end])
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request, module opencrm.Module) {
	matches, ok := s.find(w, r, module)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, strconv.Itoa(len(matches)))
}

func (s *Server) find(w http.ResponseWriter, r *http.Request, module opencrm.Module) ([]map[string]string, bool) {
	var query *opencrm.Query

	if raw := r.PostForm.Get(constants.FieldQueryString); raw != "" {
		parsed, err := opencrm.ParseQuery(raw)
		if err != nil {
			writeText(w, http.StatusBadRequest, "Invalid query_string")

			return nil, false
		}

		query = &parsed
	}

	return s.Store.Find(module, query, r.PostForm.Get(constants.FieldKeywords)), true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, module opencrm.Module) {
	id, _ := strconv.Atoi(r.PostForm.Get(constants.FieldCRMID))

	record, ok := s.Store.Get(module, id)
	if !ok {
		if s.emptyNotFound {
			writeText(w, http.StatusOK, "")

			return
		}

		writeText(w, http.StatusNotFound, "Record not found")

		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, module opencrm.Module) {
	fields := make(map[string]string, len(r.PostForm))

	for key := range r.PostForm {
		if opencrm.IsSecretField(key) {
			continue
		}

		fields[key] = r.PostForm.Get(key)
	}

	id, _ := strconv.Atoi(fields[constants.FieldCRMID])
	delete(fields, constants.FieldCRMID)

	if id == 0 {
		id = s.Store.Insert(module, fields)
		if s.bareIDs {
			writeJSON(w, http.StatusOK, id)

			return
		}

		writeJSON(w, http.StatusOK, map[string]string{constants.FieldRecordID: strconv.Itoa(id)})

		return
	}

	record, ok := s.Store.Update(module, id, fields)
	if !ok {
		writeText(w, http.StatusNotFound, "Record not found")

		return
	}

	if s.bareIDs {
		writeJSON(w, http.StatusOK, strconv.Itoa(id))

		return
	}

	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
