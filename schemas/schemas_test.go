package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestProfileSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(ProfileSchemaFile)
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, "ProfileRecord", v["title"])
}

func TestProfileSchema_EmbeddedMatchesFile(t *testing.T) {
	data, err := os.ReadFile(ProfileSchemaFile)
	require.NoError(t, err)
	assert.Equal(t, string(data), Profile)
}

func TestProfileSchema_Compiles(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(Profile))
	assert.NoError(t, err)
}
