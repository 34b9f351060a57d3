package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platfight/internal/domain/entity"
)

func TestFrameInput_OmitsIdleFields(t *testing.T) {
	data, err := json.Marshal(NewFrameInput(3, entity.Intent{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"f":3}`, string(data))
}

func TestFrameInput_Intent(t *testing.T) {
	in := entity.Intent{DesiredX: -0.5, Jump: true, Fastfall: true, Attack: true}

	fi := NewFrameInput(7, in)

	assert.Equal(t, 7, fi.F)
	assert.Equal(t, in, fi.Intent())
}

func TestReplayData_DT(t *testing.T) {
	assert.InDelta(t, 1.0/120.0, ReplayData{TPS: 120}.DT(), 1e-12)
	assert.InDelta(t, 1.0/60.0, ReplayData{}.DT(), 1e-12, "defaults to 60 TPS")
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		TPS:     60,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, X: -1},
			{F: 1, X: 1, J: true},
			{F: 2, FF: true, A: true},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, -1.0, input.DesiredX)
	assert.False(t, input.Jump)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, 1.0, input.DesiredX)
	assert.True(t, input.Jump)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Fastfall)
	assert.True(t, input.Attack)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5, entity.Intent{}))

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_TotalFramesAndStage(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(10, entity.Intent{}))

	assert.Equal(t, 10, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Stage())
	assert.InDelta(t, 1.0/60.0, replayer.DT(), 1e-12)
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(3, entity.Intent{DesiredX: 1}))

	// Advance to end
	replayer.GetInput()
	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	// Should be able to read again
	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.Equal(t, 1.0, input.DesiredX)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, entity.Intent{DesiredX: 1})

	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, 60, data.TPS)
	assert.Equal(t, "test", data.Stage)
	assert.Equal(t, 60, len(data.Frames))

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, 1.0, frame.X)
	}
}

func TestReadReplay(t *testing.T) {
	data, err := ReadReplay(strings.NewReader(`{"version":"2.0","tps":60,"stage":"battlefield","frames":[{"f":0,"x":1},{"f":1,"j":true}]}`))
	require.NoError(t, err)

	assert.Equal(t, "battlefield", data.Stage)
	require.Len(t, data.Frames, 2)
	assert.True(t, data.Frames[1].J)

	_, err = ReadReplay(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	raw, err := json.Marshal(CreateTestReplayData(4, entity.Intent{Attack: true}))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 4)
	assert.True(t, data.Frames[2].A)

	_, err = LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
