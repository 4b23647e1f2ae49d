package configfiles_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
)

func TestSchemaInfo_URL(t *testing.T) {
	s := configfiles.NewSchemaInfo("rules", 3)
	assert.Equal(t,
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/v3/rules.schema.json",
		s.URL())

	s.Branch = "dev"
	assert.Equal(t,
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/dev/schemas/v3/rules.schema.json",
		s.URL())

	// A zero Branch still renders a usable URL.
	zero := configfiles.SchemaInfo{Type: "settings", Version: 2}
	assert.Equal(t,
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/v2/settings.schema.json",
		zero.URL())
}

func TestParseSchemaInfo(t *testing.T) {
	s, err := configfiles.ParseSchemaInfo(
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/v3/rules.schema.json")
	require.NoError(t, err)
	assert.Equal(t, configfiles.SchemaInfo{Type: "rules", Version: 3, Branch: "master"}, s)

	for _, url := range []string{
		"",
		"not a url",
		"https://example.com/schemas/v3/rules.schema.json",
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/vX/rules.schema.json",
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/v3/rules.json",
	} {
		_, err := configfiles.ParseSchemaInfo(url)
		assert.Error(t, err, "url %q", url)
	}
}

func TestSchemaInfo_RoundTrip(t *testing.T) {
	original := configfiles.NewSchemaInfo("playerlist", 3)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t,
		`"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/master/schemas/v3/playerlist.schema.json"`,
		string(data))

	var parsed configfiles.SchemaInfo
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)

	require.Error(t, json.Unmarshal([]byte(`"https://example.com/x"`), &parsed))
	require.Error(t, json.Unmarshal([]byte(`42`), &parsed))
}
