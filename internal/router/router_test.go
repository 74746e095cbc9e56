package router_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mem "pet-matcher/internal/adapters/storage/memory"
	"pet-matcher/internal/config"
	"pet-matcher/internal/domain/match"
	"pet-matcher/internal/domain/matching"
	"pet-matcher/internal/domain/pets"
	"pet-matcher/internal/router"

	json "github.com/goccy/go-json"
)

type matchBody struct {
	Matches []struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		Type            string  `json:"type"`
		MatchPercentage float64 `json:"match_percentage"`
	} `json:"matches"`
}

func uniform(v int) matching.Ratings {
	out := matching.Ratings{}
	for _, t := range matching.Traits() {
		out[t] = v
	}
	return out
}

func seedPet(id, name string, species pets.Species, v int) pets.Pet {
	return pets.Pet{ID: id, Name: name, Species: species, Ratings: uniform(v)}
}

func questionnaire(petType string, v int) map[string]any {
	return map[string]any{
		"pet_type":  petType,
		"dogs":      v,
		"cats":      v,
		"kids":      v,
		"energy":    v,
		"affection": v,
		"training":  v,
	}
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_MatchFlow(t *testing.T) {
	repo := mem.NewPetRepo(
		seedPet("a", "Ace", pets.SpeciesDog, 5),
		seedPet("b", "Bo", pets.SpeciesDog, 1),
		seedPet("c", "Cleo", pets.SpeciesCat, 3),
	)
	ts := newServer(t, router.Options{PetsRepo: repo})

	// 1) Candidato idéntico queda primero con 100
	{
		st, body := doReq(t, ts.URL, "POST", "/match_pet", questionnaire("dog", 5))
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
		var out matchBody
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out.Matches) != 2 {
			t.Fatalf("expected 2 dog matches, got %d", len(out.Matches))
		}
		if out.Matches[0].ID != "a" || out.Matches[0].MatchPercentage != 100 {
			t.Fatalf("expected Ace first with 100, got %+v", out.Matches[0])
		}
		if out.Matches[1].MatchPercentage >= out.Matches[0].MatchPercentage {
			t.Fatalf("expected Bo below Ace, got %+v", out.Matches)
		}
		for _, m := range out.Matches {
			if m.Type != "dog" {
				t.Fatalf("mixed species in result: %+v", m)
			}
		}
	}

	// 2) La ruta del UI responde igual
	{
		st, body := doReq(t, ts.URL, "POST", "/friendr/api/match", questionnaire("Dog", 5))
		if st != http.StatusOK {
			t.Fatalf("expected 200 on friendr route, got %d body=%s", st, string(body))
		}
	}

	// 3) Especie desconocida es error del cliente
	{
		st, body := doReq(t, ts.URL, "POST", "/match_pet", questionnaire("bird", 3))
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bird, got %d body=%s", st, string(body))
		}
	}

	// 4) Rating faltante y fuera de rango
	{
		q := questionnaire("dog", 3)
		delete(q, "energy")
		st, body := doReq(t, ts.URL, "POST", "/match_pet", q)
		if st != http.StatusBadRequest || !strings.Contains(string(body), "energy") {
			t.Fatalf("expected 400 naming energy, got %d body=%s", st, string(body))
		}

		q = questionnaire("dog", 3)
		q["kids"] = 6
		st, _ = doReq(t, ts.URL, "POST", "/match_pet", q)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for kids=6, got %d", st)
		}
	}

	// 5) JSON inválido
	{
		res, err := http.Post(ts.URL+"/match_pet", "application/json", strings.NewReader("{"))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad json, got %d", res.StatusCode)
		}
	}

	// 6) Un solo gato: 100
	{
		st, body := doReq(t, ts.URL, "POST", "/match_pet", questionnaire("cat", 1))
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var out matchBody
		_ = json.Unmarshal(body, &out)
		if len(out.Matches) != 1 || out.Matches[0].MatchPercentage != 100 {
			t.Fatalf("expected single cat at 100, got %+v", out.Matches)
		}
	}
}

func TestHTTP_TopKCapsResults(t *testing.T) {
	var seed []pets.Pet
	for i := 1; i <= 5; i++ {
		for j := 0; j < 2; j++ {
			id := string(rune('a'+i)) + string(rune('0'+j))
			seed = append(seed, seedPet(id, id, pets.SpeciesDog, i))
		}
	}
	ts := newServer(t, router.Options{
		PetsRepo: mem.NewPetRepo(seed...),
		Match:    match.Options{TopK: 6},
	})

	st, body := doReq(t, ts.URL, "POST", "/match_pet", questionnaire("dog", 3))
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	var out matchBody
	_ = json.Unmarshal(body, &out)
	if len(out.Matches) != 6 {
		t.Fatalf("expected 6 matches, got %d", len(out.Matches))
	}
	for i := 1; i < len(out.Matches); i++ {
		if out.Matches[i].MatchPercentage > out.Matches[i-1].MatchPercentage {
			t.Fatalf("results not sorted: %+v", out.Matches)
		}
	}
}

type brokenRepo struct{}

func (brokenRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func TestHTTP_DataFaultIsServerError(t *testing.T) {
	ts := newServer(t, router.Options{PetsRepo: brokenRepo{}})

	st, body := doReq(t, ts.URL, "POST", "/match_pet", questionnaire("dog", 3))
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", st)
	}
	if strings.Contains(string(body), "10.0.0.5") {
		t.Fatalf("storage details leaked: %s", string(body))
	}

	// vacía también es falla de datos
	ts2 := newServer(t, router.Options{})
	st, _ = doReq(t, ts2.URL, "POST", "/match_pet", questionnaire("cat", 3))
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 on empty population, got %d", st)
	}
}

func TestHTTP_PetsBrowse(t *testing.T) {
	repo := mem.NewPetRepo(
		seedPet("a", "Ace", pets.SpeciesDog, 5),
		seedPet("c", "Cleo", pets.SpeciesCat, 3),
	)
	ts := newServer(t, router.Options{PetsRepo: repo})

	st, body := doReq(t, ts.URL, "GET", "/pets?type=dog", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d body=%s", st, string(body))
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0]["name"] != "Ace" {
		t.Fatalf("unexpected list: %v", list)
	}

	if st, _ := doReq(t, ts.URL, "GET", "/pets/c?type=cat", nil); st != http.StatusOK {
		t.Fatalf("expected 200 get pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/c?type=dog", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for cat id under dog, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 without type, got %d", st)
	}
}

func TestHTTP_InfoEndpoints(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"healthy"`) {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/", nil)
	if st != http.StatusOK || !strings.Contains(string(body), router.AppVersion) {
		t.Fatalf("unexpected root: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("unexpected metrics: %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

type fakeReloader struct {
	err   error
	calls int
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeReloader) LoadedAt() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestHTTP_AdminReload(t *testing.T) {
	reloader := &fakeReloader{}
	ts := newServer(t, router.Options{
		Reloader: reloader,
		HTTP:     config.HTTPConfig{AdminToken: "tok"},
	})

	if st, _ := doReqAuth(t, ts.URL, "/admin/model/reload", ""); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}
	st, body := doReqAuth(t, ts.URL, "/admin/model/reload", "tok")
	if st != http.StatusOK || !strings.Contains(string(body), "2026-01-02T03:04:05Z") {
		t.Fatalf("unexpected reload response: %d %s", st, string(body))
	}

	reloader.err = errors.New("bad artifact")
	if st, _ := doReqAuth(t, ts.URL, "/admin/model/reload", "tok"); st != http.StatusInternalServerError {
		t.Fatalf("expected 500 on failed reload, got %d", st)
	}
	if reloader.calls != 2 {
		t.Fatalf("expected 2 reload calls, got %d", reloader.calls)
	}
}

func TestHTTP_RateLimitPerIP(t *testing.T) {
	ts := newServer(t, router.Options{
		PetsRepo: mem.NewPetRepo(seedPet("a", "Ace", pets.SpeciesDog, 5)),
		HTTP:     config.HTTPConfig{RateLimit: 2, RateLimitEvery: time.Minute},
	})

	for i := 0; i < 2; i++ {
		if st, _ := doReq(t, ts.URL, "GET", "/pets?type=dog", nil); st != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, st)
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets?type=dog", nil); st != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", st)
	}
	// health queda fuera del límite
	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected health unaffected, got %d", st)
	}
}

func TestHTTP_MatchBodyLimitFollowsConfig(t *testing.T) {
	repo := mem.NewPetRepo(seedPet("a", "Ace", pets.SpeciesDog, 5))

	// cuestionario válido con n espacios dentro del objeto
	padded := func(n int) string {
		return `{"pet_type":"dog","dogs":5,"cats":5,"kids":5,"energy":5,"affection":5,` +
			strings.Repeat(" ", n) + `"training":5}`
	}

	post := func(ts *httptest.Server, payload string) int {
		res, err := http.Post(ts.URL+"/match_pet", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
		return res.StatusCode
	}

	large := newServer(t, router.Options{PetsRepo: repo, HTTP: config.HTTPConfig{MaxBodyBytes: 4 << 20}})
	if st := post(large, padded(3<<19)); st != http.StatusOK {
		t.Fatalf("expected 200 under a 4 MiB limit, got %d", st)
	}

	small := newServer(t, router.Options{PetsRepo: repo, HTTP: config.HTTPConfig{MaxBodyBytes: 1 << 10}})
	if st := post(small, padded(2<<10)); st != http.StatusBadRequest {
		t.Fatalf("expected 400 over a 1 KiB limit, got %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return send(t, req)
}

func doReqAuth(t *testing.T, baseURL, path, token string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, baseURL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
