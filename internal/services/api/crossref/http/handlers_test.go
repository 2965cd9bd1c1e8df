package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"telejoin/internal/core/schema"
	perr "telejoin/internal/platform/errors"
	phttp "telejoin/internal/platform/net/http"
	"telejoin/internal/platform/testkit"
	crossrefhttp "telejoin/internal/services/api/crossref/http"
	crossrefsvc "telejoin/internal/services/api/crossref/service"
	pipesvc "telejoin/internal/services/pipeline/service"

	"github.com/go-chi/chi/v5"
)

var (
	telHeader   = []string{"Data Comunicação", "Endereços"}
	visitHeader = []string{"Data de Início", "Referente a", "Status da Atividade", "Proprietário"}
)

type runBody struct {
	RunID    string `json:"run_id"`
	Source   string `json:"source"`
	Total    int    `json:"total"`
	Filtered int    `json:"filtered"`
	Rows     []struct {
		Date    string `json:"date"`
		Owner   string `json:"owner"`
		Address string `json:"address"`
	} `json:"rows"`
	Options struct {
		Dates  []string `json:"dates"`
		Owners []string `json:"owners"`
	} `json:"options"`
}

type envelope struct {
	Code    perr.ErrorCode `json:"code"`
	Error   string         `json:"error"`
	Warning string         `json:"warning"`
	Data    json.RawMessage
}

func newRouter(t *testing.T, maxUpload int64) phttp.Router {
	t.Helper()
	dir := t.TempDir()
	tel := testkit.WriteXLSX(t, dir, "DataFrame.xlsx", telHeader,
		[]any{"05/01/2024", "Rua A"},
		[]any{"06/01/2024", "Rua B"},
	)
	pipe := pipesvc.New(pipesvc.Config{Sources: []string{tel}, Schema: schema.Default(), Cache: true})
	r := phttp.AdaptChi(chi.NewRouter())
	crossrefhttp.Register(r, crossrefsvc.New(pipe, pipe), maxUpload)
	return r
}

func upload(t *testing.T, payload []byte, fields map[string]string) *stdhttp.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if payload != nil {
		fw, err := mw.CreateFormFile(crossrefhttp.FileField, "visitas.xlsx")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(payload)
	}
	_ = mw.Close()
	req := httptest.NewRequest(stdhttp.MethodPost, "/run", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(t *testing.T, r phttp.Router, req *stdhttp.Request) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func visits(t *testing.T) []byte {
	return testkit.XLSX(t, visitHeader,
		[]any{"2024-01-05", "Poda", "Concluída", "João"},
		[]any{"2024-01-06", "Corte", "CONCLUIDO", "Ana"},
		[]any{"2024-01-06", "Corte", "Pendente", "Bia"},
	)
}

func TestRun_AllRows(t *testing.T) {
	r := newRouter(t, 0)
	status, env := do(t, r, upload(t, visits(t), nil))
	if status != stdhttp.StatusOK || env.Warning != "" {
		t.Fatalf("%d %+v", status, env)
	}
	var out runBody
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Source != "visitas.xlsx" || out.Total != 2 || out.Filtered != 2 || out.RunID == "" {
		t.Fatalf("out %+v", out)
	}
	if len(out.Options.Dates) != 2 || out.Options.Dates[0] != "05/01/2024" {
		t.Fatalf("dates %v", out.Options.Dates)
	}
	if len(out.Options.Owners) != 2 || out.Options.Owners[0] != "Ana" {
		t.Fatalf("owners %v", out.Options.Owners)
	}
}

func TestRun_Selection(t *testing.T) {
	r := newRouter(t, 0)
	status, env := do(t, r, upload(t, visits(t), map[string]string{"date": "06/01/2024", "owner": "Ana"}))
	if status != stdhttp.StatusOK {
		t.Fatalf("%d %+v", status, env)
	}
	var out runBody
	_ = json.Unmarshal(env.Data, &out)
	if out.Total != 2 || out.Filtered != 1 || out.Rows[0].Address != "Rua B" || out.Rows[0].Date != "06/01/2024" {
		t.Fatalf("out %+v", out)
	}
	if len(out.Options.Owners) != 2 {
		t.Fatalf("options must describe the full join: %v", out.Options.Owners)
	}
}

func TestRun_OwnerMatchesExactly(t *testing.T) {
	r := newRouter(t, 0)
	payload := testkit.XLSX(t, visitHeader,
		[]any{"2024-01-05", "Poda", "Concluída", "Ana "},
		[]any{"2024-01-06", "Corte", "Concluída", "Ana"},
	)

	status, env := do(t, r, upload(t, payload, map[string]string{"owner": "Ana "}))
	if status != stdhttp.StatusOK || env.Warning != "" {
		t.Fatalf("%d %+v", status, env)
	}
	var out runBody
	_ = json.Unmarshal(env.Data, &out)
	if out.Filtered != 1 || out.Rows[0].Owner != "Ana " || out.Rows[0].Address != "Rua A" {
		t.Fatalf("out %+v", out)
	}

	status, env = do(t, r, upload(t, payload, map[string]string{"owner": "Ana", "date": " 06/01/2024 "}))
	if status != stdhttp.StatusOK {
		t.Fatalf("%d %+v", status, env)
	}
	_ = json.Unmarshal(env.Data, &out)
	if out.Filtered != 1 || out.Rows[0].Owner != "Ana" || out.Rows[0].Address != "Rua B" {
		t.Fatalf("out %+v", out)
	}
}

func TestRun_EmptyJoinWarns(t *testing.T) {
	r := newRouter(t, 0)
	payload := testkit.XLSX(t, visitHeader, []any{"2024-03-01", "Poda", "Concluída", "João"})
	status, env := do(t, r, upload(t, payload, nil))
	if status != stdhttp.StatusOK || env.Code != perr.ErrorCodeEmptyResult || env.Warning == "" {
		t.Fatalf("%d %+v", status, env)
	}
	var out runBody
	_ = json.Unmarshal(env.Data, &out)
	if out.Total != 0 || out.Rows == nil {
		t.Fatalf("out %+v", out)
	}
}

func TestRun_Errors(t *testing.T) {
	r := newRouter(t, 0)

	status, env := do(t, r, upload(t, nil, nil))
	if status != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("missing file: %d %+v", status, env)
	}

	status, env = do(t, r, upload(t, visits(t), map[string]string{"date": "2024-01-06"}))
	if status != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("bad date: %d %+v", status, env)
	}

	bad := testkit.XLSX(t, []string{"Data de Início", "Referente a"}, []any{"2024-01-05", "Poda"})
	status, env = do(t, r, upload(t, bad, nil))
	if status != stdhttp.StatusUnprocessableEntity || env.Code != perr.ErrorCodeFileFormat {
		t.Fatalf("missing columns: %d %+v", status, env)
	}
	testkit.MustContain(t, env.Error, "Proprietário")

	status, env = do(t, r, upload(t, []byte("not a workbook"), nil))
	if status != stdhttp.StatusUnprocessableEntity || env.Code != perr.ErrorCodeFileFormat {
		t.Fatalf("garbage: %d %+v", status, env)
	}
}

func TestRun_BrokenTelemetryIsServerSide(t *testing.T) {
	tel := testkit.WriteXLSX(t, t.TempDir(), "DataFrame.xlsx", []string{"Data Comunicação"}, []any{"05/01/2024"})
	pipe := pipesvc.New(pipesvc.Config{Sources: []string{tel}, Schema: schema.Default()})
	r := phttp.AdaptChi(chi.NewRouter())
	crossrefhttp.Register(r, crossrefsvc.New(pipe, pipe), 0)

	status, env := do(t, r, upload(t, visits(t), nil))
	if status != stdhttp.StatusServiceUnavailable || env.Code != perr.ErrorCodeUnavailable {
		t.Fatalf("run: %d %+v", status, env)
	}
	testkit.MustContain(t, env.Error, "Endereços")

	status, env = do(t, r, httptest.NewRequest(stdhttp.MethodGet, "/telemetry", nil))
	if status != stdhttp.StatusServiceUnavailable {
		t.Fatalf("telemetry: %d %+v", status, env)
	}
}

func TestRun_UploadCap(t *testing.T) {
	r := newRouter(t, 64)
	status, env := do(t, r, upload(t, visits(t), nil))
	if status != stdhttp.StatusRequestEntityTooLarge || env.Code != perr.ErrorCodeTooLarge {
		t.Fatalf("%d %+v", status, env)
	}
}

func TestTelemetryAndCache(t *testing.T) {
	r := newRouter(t, 0)

	status, env := do(t, r, httptest.NewRequest(stdhttp.MethodGet, "/telemetry", nil))
	if status != stdhttp.StatusOK {
		t.Fatalf("%d %+v", status, env)
	}
	var sum struct {
		Records int    `json:"records"`
		Dates   int    `json:"dates"`
		First   string `json:"first"`
	}
	_ = json.Unmarshal(env.Data, &sum)
	if sum.Records != 2 || sum.Dates != 2 || sum.First != "05/01/2024" {
		t.Fatalf("summary %+v", sum)
	}

	status, env = do(t, r, httptest.NewRequest(stdhttp.MethodGet, "/cache", nil))
	if status != stdhttp.StatusOK {
		t.Fatalf("%d %+v", status, env)
	}
	var c struct {
		Caches map[string]struct {
			Entries int `json:"entries"`
		} `json:"caches"`
	}
	_ = json.Unmarshal(env.Data, &c)
	if c.Caches["telemetry"].Entries == 0 {
		t.Fatalf("telemetry cache should hold the summary load: %s", env.Data)
	}

	status, _ = do(t, r, httptest.NewRequest(stdhttp.MethodPost, "/cache/purge", nil))
	if status != stdhttp.StatusNoContent {
		t.Fatalf("purge %d", status)
	}
}
