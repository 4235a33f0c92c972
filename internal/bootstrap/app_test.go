package bootstrap

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/generation"
	"saarthi-backend/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:               "dev",
		UploadDir:         t.TempDir(),
		MaxUploadBytes:    20 << 20,
		CORSAllowOrigin:   []string{"*"},
		LLMProvider:       config.ProviderOpenAI,
		LLMModel:          "gpt-4o-mini",
		MockDelayDisabled: true,
	}
}

func buildApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func upload(t *testing.T, app *App, name, contentType string, data []byte) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	return resp
}

func postJSON(app *App, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestBuildWithoutCredentialUsesMock(t *testing.T) {
	app := buildApp(t, testConfig(t))
	if app.Generation.Live() {
		t.Fatalf("expected mock generation without a credential")
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(rec.Body.String(), `"mode":"mock"`) {
		t.Fatalf("health = %s", rec.Body.String())
	}
}

func TestBuildWithCredentialUsesModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIAPIKey = "sk-test"
	app := buildApp(t, cfg)
	if !app.Generation.Live() {
		t.Fatalf("expected model generation with a credential")
	}

	cfg.MockMode = true
	if buildApp(t, cfg).Generation.Live() {
		t.Fatalf("MOCK_MODE must force the mock")
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLMProvider = "acme"
	cfg.OpenAIAPIKey = "key"
	cfg.GeminiAPIKey = "key"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestUploadThenGenerateAndExport(t *testing.T) {
	app := buildApp(t, testConfig(t))
	text := "The mitochondria is the powerhouse of the cell."

	resp := upload(t, app, "cell.txt", "text/plain", []byte(text))
	if resp["textExtracted"] != true || resp["extractedTextSnippet"] != text {
		t.Fatalf("upload response = %v", resp)
	}
	fileID, _ := resp["fileId"].(string)

	rec := postJSON(app, "/api/quiz", `{"fileId":"`+fileID+`","options":{"numQuestions":25}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("quiz status = %d body=%s", rec.Code, rec.Body.String())
	}
	var quiz artifacts.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if len(quiz.Questions) != artifacts.MaxQuestions {
		t.Fatalf("questions = %d", len(quiz.Questions))
	}

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/"+fileID+"/export?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n"); len(lines) != artifacts.MaxQuestions+1 {
		t.Fatalf("csv lines = %d", len(lines))
	}

	rec = postJSON(app, "/api/chat", `{"fileId":"`+fileID+`","message":"What is the powerhouse?"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Mock AI") {
		t.Fatalf("chat status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestExportBeforeQuizAndUnknownDocument(t *testing.T) {
	app := buildApp(t, testConfig(t))
	resp := upload(t, app, "notes.txt", "text/plain", []byte("Atoms bond to form molecules."))
	fileID, _ := resp["fileId"].(string)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/"+fileID+"/export", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "no_quiz") {
		t.Fatalf("export status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = postJSON(app, "/api/summarize", `{"fileId":"does-not-exist"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "not_found") {
		t.Fatalf("summarize status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestEmptyUploadBlocksGeneration(t *testing.T) {
	app := buildApp(t, testConfig(t))
	resp := upload(t, app, "blank.txt", "text/plain", []byte("   \n\t "))
	if resp["textExtracted"] != false {
		t.Fatalf("expected failed extraction: %v", resp)
	}
	fileID, _ := resp["fileId"].(string)

	rec := postJSON(app, "/api/quiz", `{"fileId":"`+fileID+`"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "No extractable text") {
		t.Fatalf("quiz status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestForcedMockSummaryWithinDelayBound(t *testing.T) {
	cfg := testConfig(t)
	cfg.MockDelayDisabled = false
	app := buildApp(t, cfg)
	resp := upload(t, app, "bio.txt", "text/plain", []byte("Photosynthesis converts light energy into chemical energy."))
	fileID, _ := resp["fileId"].(string)

	start := time.Now()
	rec := postJSON(app, "/api/summarize?mock=true", `{"fileId":"`+fileID+`"}`)
	elapsed := time.Since(start)

	if rec.Code != http.StatusOK {
		t.Fatalf("summarize status = %d", rec.Code)
	}
	if elapsed < 500*time.Millisecond || elapsed > 2*time.Second {
		t.Fatalf("elapsed = %s", elapsed)
	}
	if rec.Header().Get("X-Generation-Mode") != string(generation.ModeMock) {
		t.Fatalf("mode header = %q", rec.Header().Get("X-Generation-Mode"))
	}
}
