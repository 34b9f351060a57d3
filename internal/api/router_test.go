package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/application/tuning"
	"github.com/younwookim/platfight/internal/domain/entity"
)

// mockSnapshots implements SnapshotSource
type mockSnapshots struct {
	snap match.Snapshot
}

func (m *mockSnapshots) Snapshot() match.Snapshot {
	return m.snap
}

// mockTuning implements TuningStore over plain maps
type mockTuning struct {
	mu        sync.Mutex
	movement  map[string]entity.Tunables
	attack    map[string]entity.AttackTunables
	submitted int
}

func newMockTuning(names ...string) *mockTuning {
	m := &mockTuning{
		movement: make(map[string]entity.Tunables),
		attack:   make(map[string]entity.AttackTunables),
	}
	for _, n := range names {
		m.movement[n] = entity.DefaultTunables()
		m.attack[n] = entity.DefaultAttackTunables()
	}
	return m
}

func (m *mockTuning) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.movement))
	for n := range m.movement {
		names = append(names, n)
	}
	return names
}

func (m *mockTuning) Movement(name string) (entity.Tunables, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.movement[name]
	if !ok {
		return entity.Tunables{}, fmt.Errorf("%w: %q", tuning.ErrUnknownCharacter, name)
	}
	return t, nil
}

func (m *mockTuning) Attack(name string) (entity.AttackTunables, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attack[name]
	if !ok {
		return entity.AttackTunables{}, fmt.Errorf("%w: %q", tuning.ErrUnknownCharacter, name)
	}
	return a, nil
}

func (m *mockTuning) SubmitMovement(name string, t entity.Tunables) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movement[name]; !ok {
		return fmt.Errorf("%w: %q", tuning.ErrUnknownCharacter, name)
	}
	m.movement[name] = t
	m.submitted++
	return nil
}

func (m *mockTuning) SubmitAttack(name string, a entity.AttackTunables) error {
	if err := a.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attack[name]; !ok {
		return fmt.Errorf("%w: %q", tuning.ErrUnknownCharacter, name)
	}
	m.attack[name] = a
	m.submitted++
	return nil
}

func newTestRouter(t *testing.T, snaps *mockSnapshots, store *mockTuning) http.Handler {
	t.Helper()
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000})
	t.Cleanup(rl.Stop)
	return NewRouter(RouterConfig{
		Snapshots:      snaps,
		Tuning:         store,
		RateLimiter:    rl,
		DisableLogging: true,
	})
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, &mockSnapshots{snap: match.Snapshot{Tick: 42}}, newMockTuning())

	rec := doRequest(h, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 42.0, body["tick"])
}

func TestRouter_State(t *testing.T) {
	snaps := &mockSnapshots{snap: match.Snapshot{
		Tick: 7,
		Characters: []match.CharacterView{
			{ID: 1, Name: "player", Phase: "Grounded", Touch: "Floor", Position: entity.Vec2{X: 10, Y: -250}},
		},
	}}
	h := newTestRouter(t, snaps, newMockTuning())

	rec := doRequest(h, http.MethodGet, "/api/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got match.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(7), got.Tick)
	require.Len(t, got.Characters, 1)
	assert.Equal(t, "Grounded", got.Characters[0].Phase)
	assert.Equal(t, entity.Vec2{X: 10, Y: -250}, got.Characters[0].Position)
}

func TestRouter_ListCharacters(t *testing.T) {
	h := newTestRouter(t, &mockSnapshots{}, newMockTuning("player"))

	rec := doRequest(h, http.MethodGet, "/api/characters", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Characters []string `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"player"}, body.Characters)
}

func TestRouter_GetTunables(t *testing.T) {
	h := newTestRouter(t, &mockSnapshots{}, newMockTuning("player"))

	rec := doRequest(h, http.MethodGet, "/api/characters/player/tunables", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.Tunables
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, entity.DefaultTunables(), got)
}

func TestRouter_PutTunables(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{"partial edit", "/api/characters/player/tunables", `{"jumpBoost": 1500}`, http.StatusAccepted},
		{"unknown character", "/api/characters/ghost/tunables", `{"jumpBoost": 1500}`, http.StatusNotFound},
		{"invalid value", "/api/characters/player/tunables", `{"maxAirJumps": -1}`, http.StatusUnprocessableEntity},
		{"malformed body", "/api/characters/player/tunables", `{"jumpBoost":`, http.StatusBadRequest},
		{"unknown field", "/api/characters/player/tunables", `{"warp": 9}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockTuning("player")
			h := newTestRouter(t, &mockSnapshots{}, store)

			rec := doRequest(h, http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusAccepted {
				assert.Equal(t, 0, store.submitted)
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestRouter_PutTunablesKeepsOtherFields(t *testing.T) {
	store := newMockTuning("player")
	h := newTestRouter(t, &mockSnapshots{}, store)

	rec := doRequest(h, http.MethodPut, "/api/characters/player/tunables", `{"jumpBoost": 1500, "canWalljump": false}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	got, err := store.Movement("player")
	require.NoError(t, err)
	want := entity.DefaultTunables()
	want.JumpBoost = 1500
	want.CanWalljump = false
	assert.Equal(t, want, got)
}

func TestRouter_Attack(t *testing.T) {
	store := newMockTuning("player")
	h := newTestRouter(t, &mockSnapshots{}, store)

	rec := doRequest(h, http.MethodPut, "/api/characters/player/attack", `{"damage": 35, "knockback": {"x": 200, "y": 800}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doRequest(h, http.MethodGet, "/api/characters/player/attack", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.AttackTunables
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 35.0, got.Damage)
	assert.Equal(t, entity.Vec2{X: 200, Y: 800}, got.Knockback)
	assert.Equal(t, entity.DefaultAttackTunables().Lifetime, got.Lifetime)

	rec = doRequest(h, http.MethodPut, "/api/characters/player/attack", `{"lifetime": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(h, http.MethodGet, "/api/characters/ghost/attack", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t, &mockSnapshots{}, newMockTuning("player"))
	RecordJump(true)

	rec := doRequest(h, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `platfight_jumps_total{kind="walljump"}`)
}

func TestRouter_RateLimited(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	defer rl.Stop()
	h := NewRouter(RouterConfig{
		Snapshots:      &mockSnapshots{},
		Tuning:         newMockTuning(),
		RateLimiter:    rl,
		DisableLogging: true,
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doRequest(h, http.MethodGet, "/health", "").Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, uint64(1), rl.GetStats()["rejected"])
}
