package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"banrai-schools/app/models"
)

// stubMatcher is a canned AIMatcher that counts invocations.
type stubMatcher struct {
	name       string
	confidence float64
	err        error
	calls      int
}

func (m *stubMatcher) MatchName(_ context.Context, _ string, _ []string) (string, float64, error) {
	m.calls++
	return m.name, m.confidence, m.err
}

func newTestResolver(ai AIMatcher) *Resolver {
	return NewResolver(DefaultResolverConfig(), testRef().NameToID, ai)
}

func TestResolveExactStopsAtTierOne(t *testing.T) {
	ai := &stubMatcher{}
	r := newTestResolver(ai)
	simCalls := 0
	r.similarity = func(a, b string) float64 {
		simCalls++
		return similarityRatio(a, b)
	}

	m := r.Resolve(context.Background(), "Kru Somchai")

	assert.Equal(t, "T01", m.TeacherID)
	assert.Equal(t, models.TierExact, m.Tier)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Zero(t, simCalls, "exact match must not reach the fuzzy tier")
	assert.Zero(t, ai.calls, "exact match must not reach the AI tier")
}

func TestResolveNormalizedHonorific(t *testing.T) {
	ai := &stubMatcher{}
	r := newTestResolver(ai)

	// "Teacher Somchai" strips to "somchai", matching "Kru Somchai".
	m := r.Resolve(context.Background(), "Teacher Somchai")

	assert.Equal(t, "T01", m.TeacherID)
	assert.Equal(t, models.TierNormalized, m.Tier)
	assert.Equal(t, 0.95, m.Confidence)
	assert.Zero(t, ai.calls)
}

func TestResolveFuzzyTypo(t *testing.T) {
	ai := &stubMatcher{}
	r := newTestResolver(ai)

	// One inserted character: distance 1 over 12 runes, ratio ~0.917.
	m := r.Resolve(context.Background(), "Kru Somchaii")

	assert.Equal(t, "T01", m.TeacherID)
	assert.Equal(t, models.TierFuzzy, m.Tier)
	assert.GreaterOrEqual(t, m.Confidence, 0.85)
	assert.Less(t, m.Confidence, 1.0)
	assert.Zero(t, ai.calls, "fuzzy hit must not reach the AI tier")
}

func TestResolveFuzzyThresholdIsInclusive(t *testing.T) {
	r := newTestResolver(nil)
	r.similarity = func(a, b string) float64 { return 0.85 }

	m := r.Resolve(context.Background(), "anything")
	assert.Equal(t, models.TierFuzzy, m.Tier)
	assert.Equal(t, 0.85, m.Confidence)

	r.similarity = func(a, b string) float64 { return 0.8499 }
	m = r.Resolve(context.Background(), "anything")
	assert.Equal(t, models.TierNone, m.Tier)
	assert.False(t, m.Resolved())
}

func TestResolveAITier(t *testing.T) {
	ai := &stubMatcher{name: "Kru Pimol", confidence: 0.9}
	r := newTestResolver(ai)

	m := r.Resolve(context.Background(), "the math teacher, P. something")

	assert.Equal(t, "T02", m.TeacherID)
	assert.Equal(t, models.TierAI, m.Tier)
	assert.Equal(t, 0.9, m.Confidence)
	assert.Equal(t, 1, ai.calls)
}

func TestResolveAIFailuresAreTierMisses(t *testing.T) {
	cases := []struct {
		label string
		ai    *stubMatcher
	}{
		{"error", &stubMatcher{err: errors.New("upstream timeout")}},
		{"below confidence floor", &stubMatcher{name: "Kru Pimol", confidence: 0.4}},
		{"unknown name returned", &stubMatcher{name: "Kru Nobody", confidence: 0.95}},
	}
	for _, tc := range cases {
		r := newTestResolver(tc.ai)
		m := r.Resolve(context.Background(), "zzzz qqqq")
		assert.False(t, m.Resolved(), tc.label)
		assert.Equal(t, models.TierNone, m.Tier, tc.label)
		assert.Equal(t, 1, tc.ai.calls, tc.label)
	}
}

func TestResolveUnresolvedWithoutAI(t *testing.T) {
	r := newTestResolver(nil)

	m := r.Resolve(context.Background(), "zzzz qqqq")
	assert.False(t, m.Resolved())
	assert.Equal(t, "", m.TeacherID)

	m = r.Resolve(context.Background(), "   ")
	assert.False(t, m.Resolved())
}

func TestResolveIsIdempotent(t *testing.T) {
	ai := &stubMatcher{name: "Kru Wanida", confidence: 0.8}
	r := newTestResolver(ai)

	for _, raw := range []string{"Kru Somchai", "Teacher Somchai", "Kru Somchaii", "zzzz qqqq"} {
		first := r.Resolve(context.Background(), raw)
		second := r.Resolve(context.Background(), raw)
		assert.Equal(t, first, second, raw)
	}
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarityRatio("Kru Somchai", "kru somchai"))
	assert.Equal(t, 1.0, similarityRatio("", ""))
	assert.InDelta(t, 1.0-1.0/12.0, similarityRatio("Kru Somchai", "Kru Somchaii"), 1e-9)
	assert.Less(t, similarityRatio("Kru Somchai", "Kru Duangjai"), 0.85)
}
