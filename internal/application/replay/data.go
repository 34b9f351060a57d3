package replay

import "github.com/younwookim/platfight/internal/domain/entity"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records the player's normalized intent for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	X  float64 `json:"x,omitempty"`  // DesiredX
	J  bool    `json:"j,omitempty"`  // Jump
	FF bool    `json:"ff,omitempty"` // Fastfall
	A  bool    `json:"a,omitempty"`  // Attack
}

// NewFrameInput captures an intent as frame f
func NewFrameInput(f int, in entity.Intent) FrameInput {
	return FrameInput{
		F:  f,
		X:  in.DesiredX,
		J:  in.Jump,
		FF: in.Fastfall,
		A:  in.Attack,
	}
}

// Intent returns the recorded intent
func (fi FrameInput) Intent() entity.Intent {
	return entity.Intent{
		DesiredX: fi.X,
		Jump:     fi.J,
		Fastfall: fi.FF,
		Attack:   fi.A,
	}
}

// ReplayData contains all data needed to replay a fight.
// The simulation has no randomness, so the stage and tick rate pin it down.
type ReplayData struct {
	Version   string       `json:"version"`
	TPS       int          `json:"tps"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// DT returns the fixed step the recording was made with
func (d ReplayData) DT() float64 {
	if d.TPS <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(d.TPS)
}
