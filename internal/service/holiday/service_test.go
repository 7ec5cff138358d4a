package holiday

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryRepo struct {
	nextID int64
	rows   map[string]holiday.Holiday
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]holiday.Holiday)}
}

func (m *memoryRepo) ListBetween(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range m.rows {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memoryRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	key := h.Date.Format("2006-01-02")
	if _, ok := m.rows[key]; ok {
		return holiday.Holiday{}, holiday.ErrHolidayDateExists
	}
	m.nextID++
	h.ID = m.nextID
	m.rows[key] = h
	return h, nil
}

func (m *memoryRepo) Upsert(ctx context.Context, h holiday.Holiday) error {
	key := h.Date.Format("2006-01-02")
	if existing, ok := m.rows[key]; ok {
		existing.Name = h.Name
		m.rows[key] = existing
		return nil
	}
	_, err := m.Create(ctx, h)
	return err
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	for k, h := range m.rows {
		if h.ID == id {
			delete(m.rows, k)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (m *memoryRepo) ExistsByDate(_ context.Context, date time.Time) (bool, error) {
	_, ok := m.rows[date.Format("2006-01-02")]
	return ok, nil
}

var (
	hrCaller    = auth.AuthContext{UserID: 10, Role: user.RoleHR}
	staffCaller = auth.AuthContext{UserID: 1, Role: user.RoleEmployee}
)

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
holidays:
  - date: 2026-12-25
    name: Christmas Day
  - date: 2026-12-26
    name: Boxing Day
`), 0o600))

	repo := newMemoryRepo()
	svc := NewHolidayService(passthroughTx{}, repo, zaptest.NewLogger(t))

	result, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	// re-import is an upsert
	result, err = svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, repo.rows, 2)

	set, err := svc.HolidaySet(context.Background(),
		time.Date(2026, 12, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)))

	_, err = svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCreateAndDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewHolidayService(passthroughTx{}, repo, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, staffCaller, holiday.CreateHolidayRequest{Date: "2026-07-04", Name: "Independence Day"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	created, err := svc.Create(ctx, hrCaller, holiday.CreateHolidayRequest{Date: "2026-07-04", Name: "Independence Day"})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04", created.Date)

	_, err = svc.Create(ctx, hrCaller, holiday.CreateHolidayRequest{Date: "2026-07-04", Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	list, err := svc.List(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, hrCaller, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, hrCaller, created.ID), holiday.ErrHolidayNotFound)
}
