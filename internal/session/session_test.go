package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/session"
)

func TestHistoryOrdering(t *testing.T) {
	sess := session.New(domain.UserProfile{Name: "Asha"}, domain.Country{ID: "IND", Name: "India"})

	assert.Empty(t, sess.History())

	sess.RecordAnalysis(domain.SituationAnalysis{RiskScore: 40})
	sess.RecordAnalysis(domain.SituationAnalysis{RiskScore: 80})

	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, 40, history[0].RiskScore)
	assert.Equal(t, 80, history[1].RiskScore)
}

func TestTranslationCache(t *testing.T) {
	sess := session.New(domain.UserProfile{}, domain.Country{})

	_, ok := sess.CachedTranslation("help|English|Hindi")
	assert.False(t, ok)

	result := domain.TranslationResult{TranslatedText: "Madad kijiye"}
	sess.CacheTranslation("help|English|Hindi", result)

	cached, ok := sess.CachedTranslation("help|English|Hindi")
	require.True(t, ok)
	assert.Equal(t, result, cached)
}
