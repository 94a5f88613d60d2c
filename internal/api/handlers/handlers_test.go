package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/providers/ai"
	"github.com/JillPatel28/medical-translator-app/internal/repositories/memory"
	"github.com/JillPatel28/medical-translator-app/internal/services"
	"github.com/JillPatel28/medical-translator-app/internal/storage"
)

// stubProvider is a canned ai.Provider that records what it was asked.
type stubProvider struct {
	translation string
	transcript  string
	summary     string
	err         error

	translateCalls int
	summarizeCalls int
	lastRole       string
	lastText       string
	lastLines      []ai.TranscriptLine
}

func (s *stubProvider) Translate(_ context.Context, role, text string) (string, error) {
	s.translateCalls++
	s.lastRole, s.lastText = role, text
	return s.translation, s.err
}

func (s *stubProvider) Transcribe(_ context.Context, _ string, _ []byte) (string, error) {
	return s.transcript, s.err
}

func (s *stubProvider) Summarize(_ context.Context, lines []ai.TranscriptLine) (string, error) {
	s.summarizeCalls++
	s.lastLines = lines
	return s.summary, s.err
}

type testEnv struct {
	router   *gin.Engine
	messages *memory.MessageRepo
	audio    *memory.AudioMessageRepo
	provider *stubProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		messages: memory.NewMessageRepo(),
		audio:    memory.NewAudioMessageRepo(),
		provider: &stubProvider{
			translation: "high blood pressure",
			transcript:  "my chest hurts when I breathe",
			summary:     "Patient reported chest pain.",
		},
	}

	messageSvc := services.NewMessageService(env.messages, env.provider)
	audioSvc := services.NewAudioService(env.audio, env.messages, env.provider, storage.NewLocalUploader(t.TempDir()))

	r := gin.New()
	r.POST("/api/translate/", NewMessageHandler(messageSvc).Translate)
	r.GET("/api/messages/", NewMessageHandler(messageSvc).List)
	r.POST("/api/search/", NewMessageHandler(messageSvc).Search)
	r.POST("/api/summarize/", NewMessageHandler(messageSvc).Summarize)
	r.POST("/api/audio/", NewAudioHandler(audioSvc).Upload)
	r.GET("/api/audio-messages/", NewAudioHandler(audioSvc).List)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

type translateResponse struct {
	Status  string `json:"status"`
	Message struct {
		ID          string    `json:"id"`
		Role        string    `json:"role"`
		Text        string    `json:"text"`
		Translation string    `json:"translation"`
		Timestamp   time.Time `json:"timestamp"`
	} `json:"message"`
}

func TestTranslatePersistsAndReturnsTranslation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/translate/", map[string]string{
		"role": "doctor",
		"text": "hypertension",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[translateResponse](t, w)
	if resp.Message.Text != "hypertension" {
		t.Errorf("message.text = %q, want %q", resp.Message.Text, "hypertension")
	}
	if resp.Message.Role != "doctor" {
		t.Errorf("message.role = %q, want doctor", resp.Message.Role)
	}
	if resp.Message.Translation == "" {
		t.Error("message.translation is empty")
	}
	if resp.Message.ID == "" || resp.Message.Timestamp.IsZero() {
		t.Error("server-assigned id/timestamp missing")
	}

	rows, _ := env.messages.ListAll(context.Background())
	if len(rows) != 1 {
		t.Fatalf("persisted %d messages, want 1", len(rows))
	}
	if rows[0].Role != "doctor" || rows[0].Text != "hypertension" {
		t.Errorf("persisted row = %+v", rows[0])
	}
}

func TestTranslateMissingTextRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/translate/", map[string]string{"role": "patient"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	resp := decode[APIError](t, w)
	if resp.Error != "Text is required" {
		t.Errorf("error = %q, want %q", resp.Error, "Text is required")
	}

	rows, _ := env.messages.ListAll(context.Background())
	if len(rows) != 0 {
		t.Errorf("persisted %d messages, want 0", len(rows))
	}
	if env.provider.translateCalls != 0 {
		t.Errorf("provider called %d times, want 0", env.provider.translateCalls)
	}
}

func TestTranslateRoleDefaultsToDoctor(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/translate/", map[string]string{"text": "take two tablets daily"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	rows, _ := env.messages.ListAll(context.Background())
	if rows[0].Role != models.RoleDoctor {
		t.Errorf("role = %q, want doctor", rows[0].Role)
	}
}

func TestTranslateRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/translate/", map[string]string{
		"role": "nurse",
		"text": "bp 140/90",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTranslateDownstreamFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = errors.New("rate limited")

	w := env.do(t, http.MethodPost, "/api/translate/", map[string]string{
		"role": "doctor",
		"text": "hypertension",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	resp := decode[APIError](t, w)
	if resp.Error == "" {
		t.Error("error body is empty")
	}
}

func TestListMessagesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two", "three"} {
		env.messages.Insert(context.Background(), &models.Message{
			ID: text, Role: "doctor", Text: text, Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}

	w := env.do(t, http.MethodGet, "/api/messages/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	resp := decode[struct {
		Messages []models.Message `json:"messages"`
	}](t, w)
	if len(resp.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(resp.Messages))
	}
	for i, want := range []string{"three", "two", "one"} {
		if resp.Messages[i].ID != want {
			t.Errorf("messages[%d] = %q, want %q", i, resp.Messages[i].ID, want)
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ts := time.Now().UTC()
	env.messages.Insert(context.Background(), &models.Message{ID: "m1", Text: "severe Headache since Monday", Timestamp: ts})
	env.messages.Insert(context.Background(), &models.Message{ID: "m2", Text: "sore throat", Timestamp: ts})

	w := env.do(t, http.MethodPost, "/api/search/", map[string]string{"keyword": "headache"})
	resp := decode[struct {
		Messages []models.Message `json:"messages"`
	}](t, w)
	if len(resp.Messages) != 1 || resp.Messages[0].ID != "m1" {
		t.Fatalf("got %+v, want just m1", resp.Messages)
	}

	// Empty keyword matches everything.
	w = env.do(t, http.MethodPost, "/api/search/", map[string]string{})
	resp = decode[struct {
		Messages []models.Message `json:"messages"`
	}](t, w)
	if len(resp.Messages) != 2 {
		t.Fatalf("empty keyword: got %d messages, want 2", len(resp.Messages))
	}
}

func TestSummarizeEmptySelectionRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/summarize/", map[string]any{"message_ids": []string{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	resp := decode[APIError](t, w)
	if resp.Error != "No messages selected" {
		t.Errorf("error = %q, want %q", resp.Error, "No messages selected")
	}
	if env.provider.summarizeCalls != 0 {
		t.Errorf("provider called %d times, want 0", env.provider.summarizeCalls)
	}
}

func TestSummarizePreservesSelectionOrder(t *testing.T) {
	env := newTestEnv(t)
	ts := time.Now().UTC()
	env.messages.Insert(context.Background(), &models.Message{ID: "m1", Role: "patient", Text: "I feel dizzy", Timestamp: ts})
	env.messages.Insert(context.Background(), &models.Message{ID: "m2", Role: "doctor", Text: "Any nausea?", Timestamp: ts})

	w := env.do(t, http.MethodPost, "/api/summarize/", map[string]any{
		"message_ids": []string{"m2", "m1", "unknown"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[struct {
		Summary string `json:"summary"`
	}](t, w)
	if resp.Summary == "" {
		t.Error("summary is empty")
	}

	lines := env.provider.lastLines
	if len(lines) != 2 {
		t.Fatalf("provider got %d lines, want 2", len(lines))
	}
	if lines[0].Role != "doctor" || lines[0].Text != "Any nausea?" {
		t.Errorf("lines[0] = %+v, want the doctor message first", lines[0])
	}
	if lines[1].Role != "patient" || lines[1].Text != "I feel dizzy" {
		t.Errorf("lines[1] = %+v, want the patient message second", lines[1])
	}
}

func multipartAudio(t *testing.T, role string, audio []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "clip.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(audio); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if role != "" {
		if err := mw.WriteField("role", role); err != nil {
			t.Fatalf("write role: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestAudioUploadChain(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartAudio(t, "patient", []byte("not really webm"))
	req := httptest.NewRequest(http.MethodPost, "/api/audio/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[struct {
		Message models.Message `json:"message"`
	}](t, w)
	if resp.Message.Text != env.provider.transcript {
		t.Errorf("message.text = %q, want the transcript", resp.Message.Text)
	}
	if resp.Message.Role != "patient" {
		t.Errorf("message.role = %q, want patient", resp.Message.Role)
	}

	audioRows, _ := env.audio.ListAll(context.Background())
	if len(audioRows) != 1 {
		t.Fatalf("persisted %d audio messages, want 1", len(audioRows))
	}
	if audioRows[0].Transcript != env.provider.transcript {
		t.Errorf("audio transcript = %q, want %q", audioRows[0].Transcript, env.provider.transcript)
	}
	if audioRows[0].AudioPath == "" {
		t.Error("audio_path is empty, bytes were not stored")
	}
	if !strings.Contains(audioRows[0].AudioPath, "audio_messages/") &&
		!strings.Contains(audioRows[0].AudioPath, "audio_messages\\") {
		t.Errorf("audio_path = %q, want it under audio_messages/", audioRows[0].AudioPath)
	}

	msgRows, _ := env.messages.ListAll(context.Background())
	if len(msgRows) != 1 || msgRows[0].Text != env.provider.transcript {
		t.Errorf("companion message rows = %+v", msgRows)
	}
}

func TestAudioUploadMissingFileRejected(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("role", "doctor")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/audio/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decode[APIError](t, w)
	if resp.Error != "Audio file is required" {
		t.Errorf("error = %q, want %q", resp.Error, "Audio file is required")
	}

	audioRows, _ := env.audio.ListAll(context.Background())
	if len(audioRows) != 0 {
		t.Errorf("persisted %d audio messages, want 0", len(audioRows))
	}
}

func TestAudioTranscriptionFailureLeavesPartialState(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = errors.New("whisper unavailable")

	body, contentType := multipartAudio(t, "doctor", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/audio/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	// The AudioMessage row stays, without a transcript and without a
	// companion text message.
	audioRows, _ := env.audio.ListAll(context.Background())
	if len(audioRows) != 1 || audioRows[0].Transcript != "" {
		t.Errorf("audio rows = %+v", audioRows)
	}
	msgRows, _ := env.messages.ListAll(context.Background())
	if len(msgRows) != 0 {
		t.Errorf("companion messages = %d, want 0", len(msgRows))
	}
}

func TestListAudioMessages(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.audio.Insert(context.Background(), &models.AudioMessage{ID: "a1", Role: "doctor", Transcript: "older", Timestamp: base})
	env.audio.Insert(context.Background(), &models.AudioMessage{ID: "a2", Role: "patient", Transcript: "newer", Timestamp: base.Add(time.Minute)})

	w := env.do(t, http.MethodGet, "/api/audio-messages/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	resp := decode[struct {
		AudioMessages []models.AudioMessage `json:"audio_messages"`
	}](t, w)
	if len(resp.AudioMessages) != 2 {
		t.Fatalf("got %d rows, want 2", len(resp.AudioMessages))
	}
	if resp.AudioMessages[0].ID != "a2" {
		t.Errorf("first row = %q, want the newer one", resp.AudioMessages[0].ID)
	}
}
