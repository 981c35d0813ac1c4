package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
)

// fakeAPI serves canned responses keyed by request path. Unknown paths get 404.
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]fakeResponse
	hits   map[string]int
	query  map[string]string
	server *httptest.Server
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t:      t,
		routes: make(map[string]fakeResponse),
		hits:   make(map[string]int),
		query:  make(map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	resp, ok := f.routes[r.URL.Path]
	f.hits[r.URL.Path]++
	f.query[r.URL.Path] = r.URL.RawQuery
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"title":"not found"}`))
		return
	}
	w.WriteHeader(resp.status)
	w.Write([]byte(resp.body))
}

func (f *fakeAPI) raw(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = fakeResponse{status: status, body: body}
}

func (f *fakeAPI) json(path string, v any) {
	f.t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		f.t.Fatalf("marshal fixture for %s: %v", path, err)
	}
	f.raw(path, http.StatusOK, string(body))
}

func (f *fakeAPI) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) lastQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query[path]
}

func (f *fakeAPI) uri(id int) string {
	return fmt.Sprintf("%s/proposicoes/%d", f.server.URL, id)
}

// proposal registers the detail endpoint of one bill. principalID 0 means no reference.
func (f *fakeAPI) proposal(id, principalID int, situation string) {
	var principal any
	if principalID != 0 {
		principal = f.uri(principalID)
	}
	f.json(fmt.Sprintf("/proposicoes/%d", id), map[string]any{
		"dados": map[string]any{
			"id":               id,
			"uri":              f.uri(id),
			"siglaTipo":        "PL",
			"numero":           id % 10000,
			"ano":              2024,
			"ementa":           fmt.Sprintf("Ementa %d", id),
			"dataApresentacao": "2024-02-01T10:00",
			"urlInteiroTeor":   fmt.Sprintf("https://camara.leg.br/inteiro-teor/%d", id),
			"descricaoTipo":    "Projeto de Lei",
			"uriPropPrincipal": principal,
			"statusProposicao": map[string]any{"descricaoSituacao": situation},
		},
	})
}

// authors registers the authors endpoint of one bill
func (f *fakeAPI) authors(id int, entries ...map[string]any) {
	if entries == nil {
		entries = []map[string]any{}
	}
	f.json(fmt.Sprintf("/proposicoes/%d/autores", id), map[string]any{"dados": entries})
}

func author(deputyID int, name string, codTipo, ordem, proponente int) map[string]any {
	return map[string]any{
		"uri":             fmt.Sprintf("https://dadosabertos.camara.leg.br/api/v2/deputados/%d", deputyID),
		"nome":            name,
		"codTipo":         codTipo,
		"tipo":            "Deputado(a)",
		"ordemAssinatura": ordem,
		"proponente":      proponente,
	}
}

func newTestCamara(f *fakeAPI) *CamaraClient {
	return NewCamaraClient(NewRemoteClient("camara", 5*time.Second, nil), f.server.URL)
}

func newTestSenado(f *fakeAPI) *SenadoClient {
	return NewSenadoClient(NewRemoteClient("senado", 5*time.Second, nil), f.server.URL)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Legislator = config.Legislator{ID: 204554, Name: "Fulana de Tal"}
	cfg.MaxConcurrency = 4
	return cfg
}

type fakeNotes struct {
	notes map[int]*model.Note
	err   error
}

func (f fakeNotes) GetByProposal(_ context.Context, proposalID int) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.notes[proposalID], nil
}
