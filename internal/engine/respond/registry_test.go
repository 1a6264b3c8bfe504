package respond

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-assistant/internal/common/errors"
	"estate-assistant/internal/models"
)

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultRegistry_CoversAllIntents(t *testing.T) {
	reg := DefaultRegistry()

	for _, intent := range models.AllIntents() {
		tpl := reg.Template(intent)
		assert.Equal(t, intent, tpl.Intent)
		assert.NotEmpty(t, tpl.Text)
		assert.NotEmpty(t, tpl.Actions, "every template must attach actions")
	}
}

func TestRegistry_UnknownIntentFallsBackToGeneral(t *testing.T) {
	reg := DefaultRegistry()

	tpl := reg.Template(models.Intent("no_such_intent"))

	assert.Equal(t, models.IntentGeneral, tpl.Intent)
}

func TestLoadRegistry_OverridesWording(t *testing.T) {
	path := writeRegistryFile(t, `[
		{
			"intent": "general",
			"text": "Namaste! Ask me anything about your next home.",
			"actions": [
				{"kind": "schedule_consultation", "label": "Free Consultation"},
				{"kind": "view_services", "label": "Explore Services"},
				{"kind": "submit_requirements", "label": "Submit Requirements"}
			]
		}
	]`)

	reg, err := LoadRegistry(path)

	require.NoError(t, err)
	assert.Equal(t, "Namaste! Ask me anything about your next home.", reg.Template(models.IntentGeneral).Text)
	// intents not present in the file keep their defaults
	assert.Equal(t, "Get Cost Estimation", reg.Template(models.IntentBudgetInquiry).Actions[0].Label)
}

func TestLoadRegistry_RejectsUnknownActionKind(t *testing.T) {
	path := writeRegistryFile(t, `[
		{
			"intent": "general",
			"text": "hello",
			"actions": [{"kind": "launch_rocket", "label": "Go"}]
		}
	]`)

	_, err := LoadRegistry(path)

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeTemplateRegistryInvalid, stdErr.Code)
}

func TestLoadRegistry_RejectsMissingActions(t *testing.T) {
	path := writeRegistryFile(t, `[{"intent": "general", "text": "hello"}]`)

	_, err := LoadRegistry(path)

	assert.Error(t, err)
}

func TestLoadRegistry_RejectsMalformedJSON(t *testing.T) {
	path := writeRegistryFile(t, `{not json`)

	_, err := LoadRegistry(path)

	assert.Error(t, err)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))

	assert.Error(t, err)
}
