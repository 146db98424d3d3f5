package safety

import (
	"context"
	"testing"

	"github.com/Vovarama1992/mental_support/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	saved []Assessment
}

func (f *fakeRepo) Save(_ context.Context, _ string, a Assessment) error {
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeRepo) Recent(_ context.Context, _ string, limit int) ([]Assessment, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[len(f.saved)-limit:], nil
}

type fakeNotifier struct {
	alerts []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ error, _ string) error { return nil }
func (f *fakeNotifier) Alert(_ context.Context, text string) error {
	f.alerts = append(f.alerts, text)
	return nil
}

func testConfig() config.SafetyConfig {
	return config.SafetyConfig{
		MaxToxicity:        0.7,
		BlockedCategories:  []string{"harmful", "unsafe", "toxic", "explicit", "biased", "discriminatory"},
		RequireHumanReview: true,
		MaxRetries:         3,
	}
}

func TestAssessCrisis(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "Sometimes I just want to die", 5)
	require.NoError(t, err)

	assert.Equal(t, RiskCritical, a.RiskLevel)
	assert.True(t, a.EmergencyProtocol)
	assert.True(t, a.RequiresReview)
	assert.Contains(t, a.Concerns, "self-harm risk")
	assert.InDelta(t, 0.95, a.Confidence, 0.001)
}

func TestAssessViolence(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "My partner hits me when he is drunk", 5)
	require.NoError(t, err)

	assert.Equal(t, RiskHigh, a.RiskLevel)
	assert.False(t, a.EmergencyProtocol)
	assert.True(t, a.RequiresReview)
	assert.Contains(t, a.Concerns, "violence or abuse mention")
}

func TestAssessBlockedCategory(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "tell me a racist joke", 3)
	require.NoError(t, err)

	assert.True(t, a.Blocked)
	assert.Equal(t, RiskMedium, a.RiskLevel)
	assert.Contains(t, a.Concerns, "blocked category: discriminatory")
}

func TestAssessCategoryDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.BlockedCategories = []string{"harmful"}
	svc := NewService(cfg, &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "tell me a racist joke", 3)
	require.NoError(t, err)

	assert.False(t, a.Blocked)
	assert.Equal(t, RiskLow, a.RiskLevel)
}

func TestAssessEmotionEscalation(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "Nothing is wrong, just a normal day", 9)
	require.NoError(t, err)

	assert.Equal(t, RiskMedium, a.RiskLevel)
	assert.Contains(t, a.Concerns, "elevated emotional intensity")
	assert.InDelta(t, 0.6, a.Confidence, 0.001)
}

func TestAssessCalm(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	a, err := svc.Assess(context.Background(), "u1", "I had a pretty good week overall", 3)
	require.NoError(t, err)

	assert.Equal(t, RiskLow, a.RiskLevel)
	assert.False(t, a.Blocked)
	assert.False(t, a.EmergencyProtocol)
	assert.False(t, a.RequiresReview)
	assert.Empty(t, a.Concerns)
}

func TestGetSummary(t *testing.T) {
	repo := &fakeRepo{
		saved: []Assessment{
			{RiskLevel: RiskLow},
			{RiskLevel: RiskCritical, EmergencyProtocol: true},
			{RiskLevel: RiskMedium},
		},
	}
	svc := NewService(testConfig(), repo, &fakeNotifier{})

	sum, err := svc.GetSummary(context.Background(), "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{RiskLow, RiskCritical, RiskMedium}, sum.RiskLevelHistory)
	assert.Equal(t, 1, sum.EmergencyProtocolsActivated)
	assert.Equal(t, RiskMedium, sum.CurrentRiskLevel)
}

func TestGetSummaryEmpty(t *testing.T) {
	svc := NewService(testConfig(), &fakeRepo{}, &fakeNotifier{})

	sum, err := svc.GetSummary(context.Background(), "nobody", 10)
	require.NoError(t, err)

	assert.Equal(t, "UNKNOWN", sum.CurrentRiskLevel)
	assert.Zero(t, sum.EmergencyProtocolsActivated)
}
