package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mental_support/internal/assessment"
	"github.com/Vovarama1992/mental_support/internal/emotion"
	"github.com/Vovarama1992/mental_support/internal/kb"
	"github.com/Vovarama1992/mental_support/internal/manifest"
	"github.com/Vovarama1992/mental_support/internal/orchestrator"
	"github.com/Vovarama1992/mental_support/internal/ports"
	"github.com/Vovarama1992/mental_support/internal/safety"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type fakeOrchestrator struct {
	result orchestrator.ProcessResult
	calls  []string
}

func (f *fakeOrchestrator) ProcessMessage(_ context.Context, userID, branch, text string) (orchestrator.ProcessResult, error) {
	f.calls = append(f.calls, branch+":"+text)
	return f.result, nil
}

func (f *fakeOrchestrator) GetEmotionalTrends(context.Context, string) (emotion.Trend, error) {
	return emotion.Trend{MostCommonEmotion: "sad", AverageIntensity: 4.5}, nil
}

func (f *fakeOrchestrator) GetSafetySummary(context.Context, string) (safety.Summary, error) {
	return safety.Summary{CurrentRiskLevel: safety.RiskLow}, nil
}

type fakeRecords struct {
	added []string // role:text
}

func (f *fakeRecords) AddText(_ context.Context, _, role, text string) (int64, error) {
	f.added = append(f.added, role+":"+text)
	return int64(len(f.added)), nil
}

func (f *fakeRecords) AddVoice(_ context.Context, _, role, text, _ string) (int64, error) {
	f.added = append(f.added, role+":"+text)
	return int64(len(f.added)), nil
}

func (f *fakeRecords) GetHistory(context.Context, string) ([]ports.Record, error) {
	return []ports.Record{}, nil
}

func (f *fakeRecords) GetFittingHistory(context.Context, string) ([]ports.Record, error) {
	return nil, nil
}

func (f *fakeRecords) RecalcHistoryState(context.Context, string) error { return nil }

func (f *fakeRecords) ListUsers(context.Context) ([]string, error) {
	return []string{"user_1"}, nil
}

func (f *fakeRecords) DeleteUserHistory(context.Context, string) error { return nil }

func TestChatHandlerSavesRecordsAfterReply(t *testing.T) {
	orch := &fakeOrchestrator{result: orchestrator.ProcessResult{Response: "I hear you."}}
	records := &fakeRecords{}
	h := NewChatHandler(orch, records, testLogger())

	body := `{"user_id": "user_1", "message": "feeling
down today"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp orchestrator.ProcessResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "I hear you.", resp.Response)

	// сырой перевод строки внутри message не должен ломать декодинг
	require.Len(t, orch.calls, 1)
	assert.Equal(t, "text:feeling down today", orch.calls[0])

	require.Len(t, records.added, 2)
	assert.Equal(t, "user:feeling down today", records.added[0])
	assert.Equal(t, "assistant:I hear you.", records.added[1])
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(&fakeOrchestrator{}, &fakeRecords{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"user_id":"u"}`))
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChatHandlerTrends(t *testing.T) {
	h := NewChatHandler(&fakeOrchestrator{}, &fakeRecords{}, testLogger())

	r := chi.NewRouter()
	r.Get("/trends/{user_id}", h.GetTrends)

	req := httptest.NewRequest(http.MethodGet, "/trends/user_1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var trend emotion.Trend
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trend))
	assert.Equal(t, "sad", trend.MostCommonEmotion)
}

type fakeUserService struct {
	reset []string
}

func (f *fakeUserService) ResetUser(_ context.Context, userID string) error {
	f.reset = append(f.reset, userID)
	return nil
}

func TestHistoryHandlerDelete(t *testing.T) {
	users := &fakeUserService{}
	h := NewHistoryHandler(&fakeRecords{}, users, testLogger())

	r := chi.NewRouter()
	r.Delete("/history/{user_id}", h.DeleteHistory)

	req := httptest.NewRequest(http.MethodDelete, "/history/user_1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"user_1"}, users.reset)
}

type fakeAssessment struct {
	result assessment.Result
}

func (f *fakeAssessment) Questions() []string { return []string{"q1", "q2"} }

func (f *fakeAssessment) Submit(_ context.Context, _ string, answers []int) (assessment.Result, error) {
	if len(answers) != 2 {
		return assessment.Result{}, assert.AnError
	}
	return f.result, nil
}

func (f *fakeAssessment) History(context.Context, string, int) ([]assessment.Record, error) {
	return nil, nil
}

func TestAssessmentHandlerSubmit(t *testing.T) {
	h := NewAssessmentHandler(&fakeAssessment{result: assessment.Result{Score: 4, Severity: assessment.SeverityMild}}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/assessment",
		strings.NewReader(`{"user_id":"u","answers":[1,3]}`))
	rr := httptest.NewRecorder()

	h.Submit(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res assessment.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, assessment.SeverityMild, res.Severity)
}

func TestAssessmentHandlerRejectsWrongAnswerCount(t *testing.T) {
	h := NewAssessmentHandler(&fakeAssessment{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/assessment",
		strings.NewReader(`{"user_id":"u","answers":[1]}`))
	rr := httptest.NewRecorder()

	h.Submit(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type fakeKB struct{}

func (f *fakeKB) AddDocument(_ context.Context, content, _ string) (string, error) {
	return "doc_123", nil
}

func (f *fakeKB) Search(context.Context, string, int) ([]kb.Document, error) {
	return []kb.Document{{ID: "doc_123", Content: "sleep hygiene"}}, nil
}

func (f *fakeKB) Snippets(context.Context, string, int) ([]string, error) { return nil, nil }

type fakeCrawler struct{}

func (f *fakeCrawler) Crawl(context.Context, string) (string, error) { return "", nil }

func (f *fakeCrawler) CrawlIntoKB(context.Context, string) (int, error) { return 3, nil }

func (f *fakeCrawler) RefreshKB(context.Context) (int, error) { return 0, nil }

func TestKBHandlerSearch(t *testing.T) {
	h := NewKBHandler(&fakeKB{}, &fakeCrawler{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/kb/search",
		strings.NewReader(`{"query":"how to sleep better"}`))
	rr := httptest.NewRecorder()

	h.Search(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sleep hygiene")
}

func TestKBHandlerSearchRequiresQuery(t *testing.T) {
	h := NewKBHandler(&fakeKB{}, &fakeCrawler{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/kb/search", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.Search(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestKBHandlerCrawl(t *testing.T) {
	h := NewKBHandler(&fakeKB{}, &fakeCrawler{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/kb/crawl",
		strings.NewReader(`{"query":"anxiety coping"}`))
	rr := httptest.NewRecorder()

	h.Crawl(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"added":3}`, rr.Body.String())
}

func TestManifestHandlerRequirements(t *testing.T) {
	reqs, err := manifest.Parse(strings.NewReader("# asr\nopenai-whisper>=20231117\n"))
	require.NoError(t, err)

	h := NewManifestHandler(&manifest.Manifest{Path: "requirements.txt", Requirements: reqs}, "call 988")

	rr := httptest.NewRecorder()
	h.GetRequirements(rr, httptest.NewRequest(http.MethodGet, "/requirements", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var man manifest.Manifest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &man))
	require.Len(t, man.Requirements, 1)
	assert.Equal(t, "openai-whisper", man.Requirements[0].Name)
	assert.Equal(t, "20231117", man.Requirements[0].Version)
}

func TestManifestHandlerResources(t *testing.T) {
	h := NewManifestHandler(nil, "call 988")

	rr := httptest.NewRecorder()
	h.GetResources(rr, httptest.NewRequest(http.MethodGet, "/resources", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "call 988")
}

type fakeAuth struct{}

func (f *fakeAuth) Login(context.Context, string) (string, error) { return "token", nil }

func (f *fakeAuth) ValidateToken(_ context.Context, token string) (bool, error) {
	return token == "valid-token", nil
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := AuthMiddleware(&fakeAuth{})(next)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr = httptest.NewRecorder()
	mw.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr = httptest.NewRecorder()
	mw.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
