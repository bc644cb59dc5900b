// Package session holds per-session state: the traveler profile, the
// active destination country, the analysis history, and the translation
// cache. State lives in process memory only and is never persisted.
//
// A Session is an explicit object passed by pointer into each handler;
// there are no process-wide singletons. The single-user synchronous
// execution model means no locking is required.
package session

import "github.com/safewonder/safewonder/internal/domain"

// Session is the per-session context object.
type Session struct {
	Profile domain.UserProfile
	Country domain.Country

	history      []domain.SituationAnalysis
	translations map[string]domain.TranslationResult
}

// New creates a session for the given profile and destination country.
func New(profile domain.UserProfile, country domain.Country) *Session {
	return &Session{
		Profile:      profile,
		Country:      country,
		translations: make(map[string]domain.TranslationResult),
	}
}

// RecordAnalysis appends an analysis to the in-memory history.
func (s *Session) RecordAnalysis(analysis domain.SituationAnalysis) {
	s.history = append(s.history, analysis)
}

// History returns all analyses recorded this session, oldest first.
func (s *Session) History() []domain.SituationAnalysis {
	return s.history
}

// CacheTranslation stores a translation result to avoid redundant API calls.
func (s *Session) CacheTranslation(key string, result domain.TranslationResult) {
	s.translations[key] = result
}

// CachedTranslation retrieves a cached translation if available.
func (s *Session) CachedTranslation(key string) (domain.TranslationResult, bool) {
	result, ok := s.translations[key]
	return result, ok
}
