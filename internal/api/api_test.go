package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/explore"
	"github.com/forgelab/gamegen-go/internal/pipeline"
	"github.com/forgelab/gamegen-go/internal/store"
)

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(db, log, opts).Routes()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func testChoices() choices.ChoiceVector {
	return choices.ChoiceVector{
		Genre:      choices.GenreCard,
		Verbs:      []string{"draw", "play"},
		WorldKey:   choices.WorldMirrorWorld,
		Archetype:  choices.ArchetypeGuardian,
		Difficulty: choices.DifficultySteady,
		Pace:       choices.PaceMedium,
		ChaosLevel: 35,
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, Options{})
	rec := get(h, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
	var body struct {
		Status  string   `json:"status"`
		Version string   `json:"version"`
		Uptime  string   `json:"uptime"`
		Genres  []string `json:"genres"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version != Version || body.Uptime == "" {
		t.Errorf("unexpected health body: %+v", body)
	}
	if len(body.Genres) != 6 || body.Genres[0] != "action" {
		t.Errorf("health should list all six genres, action first: %v", body.Genres)
	}
}

func TestScenarioEndpointNormalizesAnswers(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := postJSON(t, h, "/api/v1/scenario", choices.ScenarioAnswers{
		choices.QuestionShape:  "card",
		choices.QuestionPowers: "draw, play",
		choices.QuestionMood:   "electric",
		choices.QuestionRole:   "protector",
		choices.QuestionGround: "floaty",
		choices.QuestionWild:   "35",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("scenario returned %d: %s", rec.Code, rec.Body.String())
	}
	var res GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Spec == nil {
		t.Fatal("scenario returned no spec")
	}
	if res.Spec.GenreData == nil || res.Spec.GenreData.Card == nil {
		t.Error("card answer should produce card data")
	}
	if res.Spec.Chaos.Level != 35 {
		t.Errorf("chaos level %d, want 35", res.Spec.Chaos.Level)
	}

	// The result is persisted like any other generation.
	rec = get(h, "/api/v1/specs/"+res.Spec.SeedCode)
	var fetched GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(res.Spec)
	b, _ := json.Marshal(fetched.Spec)
	if string(a) != string(b) {
		t.Error("scenario spec not stable across fetches")
	}
}

func TestGenerateThenFetchStoredSpec(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := postJSON(t, h, "/api/v1/generate", testChoices())
	if rec.Code != http.StatusOK {
		t.Fatalf("generate returned %d: %s", rec.Code, rec.Body.String())
	}

	var generated GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &generated); err != nil {
		t.Fatal(err)
	}
	if generated.Spec == nil || generated.Spec.SeedCode == "" {
		t.Fatal("generate returned no spec or seed code")
	}
	if generated.Spec.GenreData == nil || generated.Spec.GenreData.Card == nil {
		t.Error("card genre should produce card data")
	}

	rec = get(h, "/api/v1/specs/"+generated.Spec.SeedCode)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch returned %d", rec.Code)
	}
	var fetched GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.Fallback {
		t.Error("stored spec served as fallback")
	}

	a, _ := json.Marshal(generated.Spec)
	b, _ := json.Marshal(fetched.Spec)
	if string(a) != string(b) {
		t.Error("fetched spec differs from the generated one")
	}
}

func TestFetchUnstoredCodeReplays(t *testing.T) {
	h := newTestServer(t, Options{})

	// Mint a valid code without storing anything.
	cv := choices.ChoiceVector{
		Verbs:      []string{"jump"},
		Gravity:    choices.GravityLow,
		WorldKey:   choices.WorldTimeLoop,
		ChaosLevel: 10,
	}.Normalize()
	code := engine.EncodeSeedCode(cv, 424242)

	rec := get(h, "/api/v1/specs/"+code)
	if rec.Code != http.StatusOK {
		t.Fatalf("replay returned %d", rec.Code)
	}
	var res GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Fallback {
		t.Error("valid code should replay, not fall back")
	}
	if res.Spec.Seed != 424242 {
		t.Errorf("replayed seed %d, want 424242", res.Spec.Seed)
	}

	// The replay path stores its result; replaying the generated document's
	// own code now hits the stored copy and matches byte for byte.
	rec2 := get(h, "/api/v1/specs/"+res.Spec.SeedCode)
	var res2 GenerateResponse
	if err := json.Unmarshal(rec2.Body.Bytes(), &res2); err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(res.Spec)
	b, _ := json.Marshal(res2.Spec)
	if string(a) != string(b) {
		t.Error("replayed spec not stable across fetches")
	}
}

func TestMalformedCodeServesFallback(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := get(h, "/api/v1/specs/not-a-real-code")
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback returned %d, want 200", rec.Code)
	}
	var res GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Fallback {
		t.Error("malformed code should be served as fallback")
	}
	want, _ := json.Marshal(pipeline.DefaultSpec())
	got, _ := json.Marshal(res.Spec)
	if string(want) != string(got) {
		t.Error("fallback should be the default minimal specification")
	}
}

func TestDecodeEndpoint(t *testing.T) {
	h := newTestServer(t, Options{})

	cv := testChoices().Normalize()
	code := engine.EncodeSeedCode(cv, 99)

	rec := postJSON(t, h, "/api/v1/decode", DecodeRequest{Code: code})
	if rec.Code != http.StatusOK {
		t.Fatalf("decode returned %d", rec.Code)
	}
	var res DecodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.Seed != 99 || res.Chaos != 35 || res.Verb != "draw" {
		t.Errorf("decode mismatch: %+v", res)
	}

	rec = postJSON(t, h, "/api/v1/decode", DecodeRequest{Code: "garbage"})
	var bad DecodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &bad); err != nil {
		t.Fatal(err)
	}
	if bad.OK || bad.Seed != 0 {
		t.Errorf("garbage code should decode to the sentinel, got %+v", bad)
	}
}

func TestExploreEndpoint(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := postJSON(t, h, "/api/v1/explore", explore.Request{
		Choices:   testChoices(),
		SeedStart: 0,
		SeedEnd:   49,
		Metric:    explore.MetricNodeCount,
		TargetOp:  explore.OpGreater,
		TargetVal: 0,
		Limit:     3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("explore returned %d: %s", rec.Code, rec.Body.String())
	}
	var res explore.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Summary.TotalEvaluated != 50 {
		t.Errorf("evaluated %d, want 50", res.Summary.TotalEvaluated)
	}
	if len(res.Hits) > 3 {
		t.Errorf("limit ignored: %d hits kept", len(res.Hits))
	}
}

func TestExploreRejectsOversizedRange(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := postJSON(t, h, "/api/v1/explore", explore.Request{
		Choices:   testChoices(),
		SeedStart: 0,
		SeedEnd:   explore.MaxRange * 2,
		Metric:    explore.MetricNodeCount,
		TargetOp:  explore.OpGreater,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized range returned %d, want 400", rec.Code)
	}
}

func TestListSpecsValidatesLimit(t *testing.T) {
	h := newTestServer(t, Options{})

	if rec := get(h, "/api/v1/specs?limit=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit returned %d, want 400", rec.Code)
	}
	if rec := get(h, "/api/v1/specs?limit=500"); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized limit returned %d, want 400", rec.Code)
	}
	if rec := get(h, "/api/v1/specs"); rec.Code != http.StatusOK {
		t.Errorf("default listing returned %d", rec.Code)
	}
}

func TestRateLimitKicksIn(t *testing.T) {
	h := newTestServer(t, Options{RateRPS: 1, RateBurst: 1})

	first := get(h, "/api/v1/specs")
	if first.Code != http.StatusOK {
		t.Fatalf("first request returned %d", first.Code)
	}
	second := get(h, "/api/v1/specs")
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request returned %d, want 429", second.Code)
	}
}

func TestGenerateRejectsBadJSON(t *testing.T) {
	h := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON returned %d, want 400", rec.Code)
	}
}
