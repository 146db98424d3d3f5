package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuestions = []string{
	"Have you been feeling down or depressed?",
	"Do you have trouble sleeping or sleeping too much?",
	"Have you lost interest in activities you used to enjoy?",
	"Do you feel anxious or worried most of the time?",
	"Have you had thoughts of harming yourself?",
}

const testResources = "Call 988"

type fakeRepo struct {
	saved []Record
}

func (f *fakeRepo) Save(_ context.Context, _ string, r Record) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRepo) Recent(_ context.Context, _ string, limit int) ([]Record, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[len(f.saved)-limit:], nil
}

type fakeNotifier struct {
	alerts chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{alerts: make(chan string, 4)}
}

func (f *fakeNotifier) Notify(_ context.Context, _ error, _ string) error { return nil }
func (f *fakeNotifier) Alert(_ context.Context, text string) error {
	f.alerts <- text
	return nil
}

func TestQuestions(t *testing.T) {
	svc := NewService(testQuestions, testResources, &fakeRepo{}, newFakeNotifier())
	assert.Len(t, svc.Questions(), 5)
}

func TestSubmitMinimal(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(testQuestions, testResources, repo, newFakeNotifier())

	res, err := svc.Submit(context.Background(), "u1", []int{0, 1, 0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Score)
	assert.Equal(t, SeverityMinimal, res.Severity)
	assert.False(t, res.Escalated)
	assert.Empty(t, res.Resources)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, []int{0, 1, 0, 1, 0}, repo.saved[0].Answers)
}

func TestSubmitSevere(t *testing.T) {
	svc := NewService(testQuestions, testResources, &fakeRepo{}, newFakeNotifier())

	res, err := svc.Submit(context.Background(), "u1", []int{3, 3, 3, 3, 0})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Score)
	assert.Equal(t, SeveritySevere, res.Severity)
	assert.False(t, res.Escalated)
}

func TestSubmitSelfHarmEscalates(t *testing.T) {
	notifier := newFakeNotifier()
	svc := NewService(testQuestions, testResources, &fakeRepo{}, notifier)

	res, err := svc.Submit(context.Background(), "u1", []int{1, 1, 1, 1, 2})
	require.NoError(t, err)

	assert.True(t, res.Escalated)
	assert.Equal(t, testResources, res.Resources)

	select {
	case alert := <-notifier.alerts:
		assert.Contains(t, alert, "u1")
	case <-time.After(time.Second):
		t.Fatal("expected admin alert")
	}
}

func TestSubmitWrongAnswerCount(t *testing.T) {
	svc := NewService(testQuestions, testResources, &fakeRepo{}, newFakeNotifier())

	_, err := svc.Submit(context.Background(), "u1", []int{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 answers")
}

func TestSubmitAnswerOutOfRange(t *testing.T) {
	svc := NewService(testQuestions, testResources, &fakeRepo{}, newFakeNotifier())

	_, err := svc.Submit(context.Background(), "u1", []int{0, 0, 0, 0, 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSeverityThresholds(t *testing.T) {
	// 5 вопросов → максимум 15
	assert.Equal(t, SeverityMinimal, severity(0, 5))
	assert.Equal(t, SeverityMinimal, severity(3, 5))
	assert.Equal(t, SeverityMild, severity(4, 5))
	assert.Equal(t, SeverityMild, severity(7, 5))
	assert.Equal(t, SeverityModerate, severity(8, 5))
	assert.Equal(t, SeverityModerate, severity(11, 5))
	assert.Equal(t, SeveritySevere, severity(12, 5))
	assert.Equal(t, SeveritySevere, severity(15, 5))
}
