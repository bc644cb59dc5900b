package knowledge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safewonder/safewonder/internal/knowledge"
)

const sampleDocument = `{
  "countries": [
    {
      "id": "IND",
      "name": "India",
      "emergency_numbers": {"police": "100", "ambulance": "102"},
      "common_scams": [
        {
          "name": "Taxi Overcharge",
          "description": "Drivers quote inflated fares to tourists",
          "situation_keywords": ["taxi", "auto", "fare"],
          "normal_rate": "₹150-200",
          "scam_rate": "₹800+",
          "advice": "Insist on the meter or use a ride-hailing app"
        }
      ],
      "harassment_patterns": {
        "examples": [
          {
            "name": "Persistent Follower",
            "description": "Stranger follows and refuses to leave",
            "threat_level": "high",
            "immediate_actions": ["Move to a crowded area", "Call 100"]
          }
        ]
      },
      "culture": {"greetings": "Namaste", "dos": ["Remove shoes in temples"], "donts": ["Public displays of affection"]},
      "local_phrases": {"help": "Madad karo"},
      "price_reference": {"bottled water": "₹20"}
    },
    {
      "id": "JPN",
      "name": "Japan",
      "emergency_numbers": {}
    }
  ]
}`

func TestLoadMissingFileFails(t *testing.T) {
	_, err := knowledge.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read knowledge base")
}

func TestLoadMalformedJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := knowledge.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse knowledge base")
}

func TestParseAndLookup(t *testing.T) {
	base, err := knowledge.Parse([]byte(sampleDocument))
	require.NoError(t, err)

	require.Len(t, base.Countries(), 2)

	india, ok := base.CountryByID("ind")
	require.True(t, ok, "lookup should be case-insensitive")
	assert.Equal(t, "India", india.Name)
	require.Len(t, india.CommonScams, 1)
	assert.Equal(t, "₹150-200", india.CommonScams[0].NormalRate)
	require.Len(t, india.HarassmentPatterns.Examples, 1)

	_, ok = base.CountryByID("USA")
	assert.False(t, ok)

	japan, ok := base.CountryByName("japan")
	require.True(t, ok)
	assert.Equal(t, "JPN", japan.ID)
}

func TestResolveByIDThenName(t *testing.T) {
	base, err := knowledge.Parse([]byte(sampleDocument))
	require.NoError(t, err)

	byID, ok := base.Resolve("JPN")
	require.True(t, ok)
	assert.Equal(t, "Japan", byID.Name)

	byName, ok := base.Resolve("India")
	require.True(t, ok)
	assert.Equal(t, "IND", byName.ID)
}

func TestEmptyEmergencyNumbersFlowThrough(t *testing.T) {
	base, err := knowledge.Parse([]byte(sampleDocument))
	require.NoError(t, err)

	japan, ok := base.CountryByID("JPN")
	require.True(t, ok)
	// Empty maps are legal; the presentation layer owns the fallback text.
	assert.Empty(t, japan.EmergencyNumbers)
}
