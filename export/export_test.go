package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskstore/database"
	"taskstore/models"
	"taskstore/store"
)

func newTestExporter(t *testing.T) (*Exporter, *store.TaskStore) {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.NewTaskStore(db)
	return NewExporter(st), st
}

func TestExportJSON(t *testing.T) {
	ex, st := newTestExporter(t)
	ctx := context.Background()

	_, err := st.Add(ctx, "Buy milk", "2%")
	require.NoError(t, err)

	b, err := ex.Export(ctx, "json")
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(b, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestExportCSV(t *testing.T) {
	ex, st := newTestExporter(t)
	ctx := context.Background()

	_, err := st.Add(ctx, "Buy milk", "2%")
	require.NoError(t, err)

	b, err := ex.Export(ctx, "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "title", "description", "completed", "created_at"}, records[0])
	assert.Equal(t, "Buy milk", records[1][1])
	assert.Equal(t, "false", records[1][3])
}

func TestExportPDF(t *testing.T) {
	ex, st := newTestExporter(t)
	ctx := context.Background()

	_, err := st.Add(ctx, "Buy milk", "")
	require.NoError(t, err)

	b, err := ex.Export(ctx, "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}

func TestExportUnknownFormat(t *testing.T) {
	ex, _ := newTestExporter(t)

	_, err := ex.Export(context.Background(), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
