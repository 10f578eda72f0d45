package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"digital-garden/internal/adapters/species/perenual"
	mem "digital-garden/internal/adapters/storage/memory"
	"digital-garden/internal/domain/images"
	"digital-garden/internal/domain/plants"
	"digital-garden/internal/platform/logger"
	"digital-garden/internal/router"
)

// offlineProber simula una red caída: ninguna etapa remota valida.
type offlineProber struct{}

func (offlineProber) Probe(context.Context, string) error { return errors.New("network unreachable") }

// onlineProber acepta cualquier candidato.
type onlineProber struct{}

func (onlineProber) Probe(context.Context, string) error { return nil }

type plantJSON struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	AcquisitionDate string `json:"acquisition_date"`
	Category        string `json:"category"`
	CareNotes       string `json:"care_notes"`
	ImageRef        string `json:"image_ref"`
	Enriched        bool   `json:"enriched"`
	ScientificName  string `json:"scientific_name"`
	Toxicity        string `json:"toxicity"`
	ExternalID      int    `json:"external_id"`
}

type noticeJSON struct {
	Level          string `json:"level"`
	Message        string `json:"message"`
	DismissAfterMS int64  `json:"dismiss_after_ms"`
}

type createJSON struct {
	Plant      plantJSON   `json:"plant"`
	Plants     []plantJSON `json:"plants"`
	Persisted  bool        `json:"persisted"`
	Enriched   bool        `json:"enriched"`
	ImageStage string      `json:"image_stage"`
	Notice     noticeJSON  `json:"notice"`
}

type listJSON struct {
	Items        []plantJSON `json:"items"`
	Total        int         `json:"total"`
	EmptyMessage string      `json:"empty_message"`
}

func newOfflineServer(t *testing.T, slots *mem.Slots) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Slots:  slots,
		Prober: offlineProber{},
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_AddPlantWithNetworkDown(t *testing.T) {
	slots := mem.NewSlots()
	ts := newOfflineServer(t, slots)

	st, body := doReq(t, ts.URL, "POST", "/plants", map[string]any{
		"name":             "Rosa",
		"acquisition_date": "2024-03-01",
		"category":         "Outdoor",
		"care_notes":       "",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var out createJSON
	mustDecode(t, body, &out)

	if out.Plant.ID != 1 || out.Plant.Name != "Rosa" || out.Plant.Category != "Outdoor" {
		t.Fatalf("unexpected plant: %+v", out.Plant)
	}
	if out.Plant.CareNotes != plants.DefaultCareNotes {
		t.Fatalf("expected default care notes, got %q", out.Plant.CareNotes)
	}
	if out.ImageStage != images.StagePlaceholder {
		t.Fatalf("expected placeholder stage, got %q", out.ImageStage)
	}
	if !strings.HasPrefix(out.Plant.ImageRef, "data:image/svg+xml") || !strings.Contains(out.Plant.ImageRef, "Rosa") {
		t.Fatalf("expected inline svg mentioning Rosa, got %q", out.Plant.ImageRef)
	}
	if out.Enriched || out.Plant.Enriched {
		t.Fatalf("expected basic record without enrichment")
	}
	if !out.Persisted {
		t.Fatalf("expected persisted=true")
	}
	if out.Notice.Level != "success" || out.Notice.DismissAfterMS != 3000 {
		t.Fatalf("unexpected notice: %+v", out.Notice)
	}
	if out.Notice.Message != `Plant "Rosa" added with basic data` {
		t.Fatalf("unexpected notice message: %q", out.Notice.Message)
	}

	// el slot guarda la colección completa con claves camelCase
	raw, err := slots.Get(context.Background(), plants.CollectionKey)
	if err != nil {
		t.Fatalf("slot not written: %v", err)
	}
	if !bytes.Contains(raw, []byte(`"acquisitionDate":"2024-03-01"`)) {
		t.Fatalf("unexpected slot content: %s", string(raw))
	}

	// sin cuidados no se guarda preferencia
	if _, err := slots.Get(context.Background(), plants.PreferenceKey); err == nil {
		t.Fatalf("expected no preference saved for blank care notes")
	}
}

func TestHTTP_FutureDateRejected(t *testing.T) {
	ts := newOfflineServer(t, mem.NewSlots())

	st, body := doReq(t, ts.URL, "POST", "/plants", map[string]any{
		"name":             "Ficus",
		"acquisition_date": "2999-01-01",
		"category":         "Indoor",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	var out struct {
		Field  string     `json:"field"`
		Notice noticeJSON `json:"notice"`
	}
	mustDecode(t, body, &out)
	if out.Field != "acquisition_date" {
		t.Fatalf("expected acquisition_date field, got %q", out.Field)
	}
	if out.Notice.Level != "error" || out.Notice.DismissAfterMS != 3000 {
		t.Fatalf("unexpected notice: %+v", out.Notice)
	}

	list := listPlants(t, ts.URL, "")
	if list.Total != 0 {
		t.Fatalf("rejected draft must not be stored, got %d plants", list.Total)
	}
}

func TestHTTP_ValidationOrder(t *testing.T) {
	ts := newOfflineServer(t, mem.NewSlots())

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"blank name", map[string]any{"name": "  ", "acquisition_date": "", "category": ""}, "name"},
		{"missing date", map[string]any{"name": "Ficus", "acquisition_date": "", "category": ""}, "acquisition_date"},
		{"missing category", map[string]any{"name": "Ficus", "acquisition_date": "2024-01-01", "category": ""}, "category"},
		{"bad category", map[string]any{"name": "Ficus", "acquisition_date": "2024-01-01", "category": "Garage"}, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/plants", tc.body)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", st)
			}
			var out struct {
				Field string `json:"field"`
			}
			mustDecode(t, body, &out)
			if out.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, out.Field)
			}
		})
	}
}

func TestHTTP_DeleteRenumbers(t *testing.T) {
	slots := mem.NewSlots()
	ts := newOfflineServer(t, slots)

	for _, n := range []string{"A", "B", "C"} {
		createPlant(t, ts.URL, n)
	}

	st, body := doReq(t, ts.URL, "DELETE", "/plants/2", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	var out struct {
		Deleted   int         `json:"deleted"`
		Plants    []plantJSON `json:"plants"`
		Persisted bool        `json:"persisted"`
		Notice    noticeJSON  `json:"notice"`
	}
	mustDecode(t, body, &out)

	if len(out.Plants) != 2 {
		t.Fatalf("expected 2 plants, got %d", len(out.Plants))
	}
	if out.Plants[0].ID != 1 || out.Plants[0].Name != "A" || out.Plants[1].ID != 2 || out.Plants[1].Name != "C" {
		t.Fatalf("unexpected renumbering: %+v", out.Plants)
	}
	if !out.Persisted || out.Notice.Message != "Plant removed from the garden" {
		t.Fatalf("unexpected delete result: %+v", out)
	}

	// el id 3 ya no existe
	if st, _ := doReq(t, ts.URL, "GET", "/plants/3", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for stale id, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/plants/99", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting unknown id, got %d", st)
	}

	// el slot refleja la renumeración
	raw, err := slots.Get(context.Background(), plants.CollectionKey)
	if err != nil {
		t.Fatalf("slot not written: %v", err)
	}
	var stored []plants.Plant
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if len(stored) != 2 || stored[1].ID != 2 || stored[1].Name != "C" {
		t.Fatalf("unexpected slot after delete: %+v", stored)
	}
}

func TestHTTP_SearchAndEmptyStates(t *testing.T) {
	ts := newOfflineServer(t, mem.NewSlots())

	empty := listPlants(t, ts.URL, "")
	if empty.Total != 0 || empty.EmptyMessage != "No plants registered in your digital garden yet" {
		t.Fatalf("unexpected empty garden response: %+v", empty)
	}

	createPlant(t, ts.URL, "Monstera")
	createPlant(t, ts.URL, "Cactus")

	got := listPlants(t, ts.URL, "mon")
	if got.Total != 1 || got.Items[0].Name != "Monstera" {
		t.Fatalf("unexpected search result: %+v", got)
	}

	// la categoría también matchea
	if got := listPlants(t, ts.URL, "INDOOR"); got.Total != 2 {
		t.Fatalf("expected both plants by category, got %d", got.Total)
	}

	none := listPlants(t, ts.URL, "zzz")
	if none.Total != 0 || none.EmptyMessage != "No plants match your search" {
		t.Fatalf("unexpected empty search response: %+v", none)
	}

	// buscar no modifica la colección
	if all := listPlants(t, ts.URL, ""); all.Total != 2 {
		t.Fatalf("search must not mutate collection, got %d", all.Total)
	}
}

func TestHTTP_SeedSamplesAndWelcome(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Prober:      offlineProber{},
		SeedSamples: true,
	}))
	defer ts.Close()

	list := listPlants(t, ts.URL, "")
	if list.Total != 2 || list.Items[0].Name != "Pothos" || list.Items[1].Name != "Rosa" {
		t.Fatalf("unexpected samples: %+v", list.Items)
	}

	st, body := doReq(t, ts.URL, "GET", "/welcome", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var wl struct {
		Message string `json:"message"`
		Total   int    `json:"total"`
	}
	mustDecode(t, body, &wl)
	if wl.Message != "Welcome to your digital garden! You have 2 plants" {
		t.Fatalf("unexpected welcome: %q", wl.Message)
	}

	st, body = doReq(t, ts.URL, "POST", "/plants", map[string]any{
		"name":             "Lavanda",
		"acquisition_date": "2024-04-10",
		"category":         "Outdoor",
		"care_notes":       "Poco riego",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	_, body = doReq(t, ts.URL, "GET", "/welcome", nil)
	mustDecode(t, body, &wl)
	if wl.Message != "Welcome to your digital garden (3 plants) - Last care notes: Poco riego" {
		t.Fatalf("unexpected welcome after create: %q", wl.Message)
	}
}

func TestHTTP_BootstrapFromSlot(t *testing.T) {
	slots := mem.NewSlots()
	seed := `[{"id":1,"name":"Aloe","acquisitionDate":"2023-05-01","category":"Indoor","careNotes":"poca agua","imageRef":"x"}]`
	if err := slots.Put(context.Background(), plants.CollectionKey, []byte(seed)); err != nil {
		t.Fatalf("put: %v", err)
	}
	ts := newOfflineServer(t, slots)

	st, body := doReq(t, ts.URL, "GET", "/plants/1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var p plantJSON
	mustDecode(t, body, &p)
	if p.Name != "Aloe" || p.AcquisitionDate != "2023-05-01" || p.CareNotes != "poca agua" {
		t.Fatalf("unexpected plant from slot: %+v", p)
	}

	// el siguiente alta continúa la numeración
	created := createPlant(t, ts.URL, "Menta")
	if created.ID != 2 {
		t.Fatalf("expected id 2, got %d", created.ID)
	}
}

func TestHTTP_CorruptSlotFallsBackToEmpty(t *testing.T) {
	slots := mem.NewSlots()
	_ = slots.Put(context.Background(), plants.CollectionKey, []byte("{not json"))
	ts := newOfflineServer(t, slots)

	if got := listPlants(t, ts.URL, ""); got.Total != 0 {
		t.Fatalf("expected empty collection, got %d", got.Total)
	}
}

func TestHTTP_EnrichedPlantAndDetails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			http.Error(w, "bad key", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/species-list":
			_, _ = io.WriteString(w, `{"data":[{"id":7,"common_name":"rose","scientific_name":["Rosa rubiginosa"],
				"cycle":"Perennial","watering":"Average","sunlight":["full sun"],"poisonous_to_humans":0,"care_level":"Medium"}]}`)
		case "/species/details/7":
			_, _ = io.WriteString(w, `{"description":"Sweet briar","watering_general_benchmark":{"value":"\"7-10\"","unit":"days"},
				"sunlight":["full sun"],"hardiness":{"min":"5","max":"9"},"pest_susceptibility":["aphids"]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Prober:  offlineProber{},
		Species: perenual.NewClient(perenual.Config{BaseURL: upstream.URL, APIKey: "test-key"}),
	}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/plants", map[string]any{
		"name":             "Rosa",
		"acquisition_date": "2024-03-01",
		"category":         "Outdoor",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var out createJSON
	mustDecode(t, body, &out)

	if !out.Enriched || out.Plant.ExternalID != 7 || out.Plant.ScientificName != "Rosa rubiginosa" {
		t.Fatalf("expected enriched plant, got %+v", out.Plant)
	}
	if out.Plant.Toxicity != "non-toxic" {
		t.Fatalf("unexpected toxicity: %q", out.Plant.Toxicity)
	}
	if out.Plant.CareNotes != plants.EnrichedCareNotes {
		t.Fatalf("expected enriched care notes, got %q", out.Plant.CareNotes)
	}
	if out.Notice.Message != `Plant "Rosa" added with full information from the species database` {
		t.Fatalf("unexpected notice: %q", out.Notice.Message)
	}

	st, body = doReq(t, ts.URL, "GET", "/plants/1/details", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var det struct {
		Enriched    bool   `json:"enriched"`
		Description string `json:"description"`
		Care        struct {
			Watering    string `json:"watering"`
			Temperature string `json:"temperature"`
			Humidity    string `json:"humidity"`
		} `json:"care"`
		Pests  []string   `json:"pests"`
		Notice noticeJSON `json:"notice"`
	}
	mustDecode(t, body, &det)
	if det.Notice.Level != "info" || det.Notice.DismissAfterMS != 2000 {
		t.Fatalf("unexpected details notice: %+v", det.Notice)
	}
	if !det.Enriched || det.Description != "Sweet briar" {
		t.Fatalf("unexpected details: %+v", det)
	}
	if det.Care.Watering != "7-10" || det.Care.Temperature != "5°C - 9°C" || det.Care.Humidity != "not available" {
		t.Fatalf("unexpected care: %+v", det.Care)
	}
	if len(det.Pests) != 1 || det.Pests[0] != "aphids" {
		t.Fatalf("unexpected pests: %v", det.Pests)
	}
}

func TestHTTP_ResolveImage(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Prober: onlineProber{}}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/images/resolve", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/images/resolve?name=Rosa", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var out struct {
		Ref      string `json:"ref"`
		Stage    string `json:"stage"`
		Attempts []struct {
			Stage string `json:"stage"`
		} `json:"attempts"`
	}
	mustDecode(t, body, &out)
	if out.Stage != images.StagePhotoSearch || len(out.Attempts) != 1 {
		t.Fatalf("expected first stage to win, got %+v", out)
	}
	if out.Ref != "https://source.unsplash.com/400x300/?Rosa+plant" {
		t.Fatalf("unexpected ref: %q", out.Ref)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newOfflineServer(t, mem.NewSlots())
	createPlant(t, ts.URL, "Helecho")

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	for _, want := range []string{
		"garden_plants 1",
		`garden_image_resolutions_total{stage="placeholder"} 1`,
		`garden_image_stage_attempts_total{outcome="error",stage="photo_search"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

// panickingResolver rompe el handler de /images/resolve.
type panickingResolver struct{}

func (panickingResolver) Resolve(context.Context, string) images.Resolution {
	panic("resolver exploded")
}

// logBuffer junta las líneas JSON del logger; el server escribe desde otra goroutine.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) entries(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("log line is not json: %q", line)
		}
		out = append(out, e)
	}
	return out
}

// waitForLog espera a que aparezca una línea que cumpla match; la línea de
// acceso se escribe después de mandar la respuesta.
func waitForLog(t *testing.T, b *logBuffer, match func(map[string]any) bool) map[string]any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		for _, e := range b.entries(t) {
			if match(e) {
				return e
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("log line not found; got %+v", b.entries(t))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func accessLogFor(path string, status int) func(map[string]any) bool {
	return func(e map[string]any) bool {
		st, _ := e["status"].(float64)
		return e["msg"] == "http request" && e["path"] == path && int(st) == status
	}
}

func TestHTTP_PanicRecoveredAndLogLevels(t *testing.T) {
	logs := &logBuffer{}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Resolver: panickingResolver{},
		Logger:   logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: logs}),
	}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/images/resolve?name=Rosa", nil)
	if st != http.StatusInternalServerError || !strings.Contains(string(body), "internal error") {
		t.Fatalf("expected 500 after panic, got %d %s", st, string(body))
	}
	panicLine := waitForLog(t, logs, func(e map[string]any) bool { return e["msg"] == "panic recovered" })
	if panicLine["level"] != "error" || panicLine["panic"] != "resolver exploded" {
		t.Fatalf("unexpected panic log: %+v", panicLine)
	}
	if e := waitForLog(t, logs, accessLogFor("/images/resolve", 500)); e["level"] != "error" {
		t.Fatalf("5xx must log as error, got %+v", e)
	}

	// el server sigue vivo después del panic
	if st, _ := doReq(t, ts.URL, "GET", "/plants/99", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	if e := waitForLog(t, logs, accessLogFor("/plants/99", 404)); e["level"] != "warn" {
		t.Fatalf("4xx must log as warn, got %+v", e)
	}

	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	e := waitForLog(t, logs, accessLogFor("/health", 200))
	if e["level"] != "info" || e["request_id"] == "" {
		t.Fatalf("2xx must log as info with request id, got %+v", e)
	}
}

// -------------------------
// Helpers
// -------------------------

func createPlant(t *testing.T, baseURL, name string) plantJSON {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/plants", map[string]any{
		"name":             name,
		"acquisition_date": "2024-01-10",
		"category":         "Indoor",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating %s, got %d body=%s", name, st, string(body))
	}
	var out createJSON
	mustDecode(t, body, &out)
	return out.Plant
}

func listPlants(t *testing.T, baseURL, q string) listJSON {
	t.Helper()
	path := "/plants"
	if q != "" {
		path += "?q=" + q
	}
	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing plants, got %d", st)
	}
	var out listJSON
	mustDecode(t, body, &out)
	return out
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
