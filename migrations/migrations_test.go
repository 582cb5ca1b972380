package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptsComeInPairs(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected script name %q", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestSourceParsesVersions(t *testing.T) {
	src, err := iofs.New(FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	body, _, err := src.ReadUp(first)
	require.NoError(t, err)
	defer body.Close()
}

func TestSchemaCoversSiteTables(t *testing.T) {
	raw, err := FS.ReadFile("000001_init_schema.up.sql")
	require.NoError(t, err)
	schema := string(raw)
	for _, table := range []string{
		"users", "audit_logs", "announcements", "important_dates", "personnel",
		"historical_personnel", "organizations", "organization_members",
		"about_content", "home_content", "contact_messages",
	} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	// Activation flags stay nullable; NULL reads as active.
	assert.Contains(t, schema, "is_active  BOOLEAN,")
}
