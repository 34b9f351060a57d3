package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display    DisplayConfig    `json:"display"`
	World      WorldConfig      `json:"world"`
	Classifier ClassifierConfig `json:"classifier"`
	Input      InputConfig      `json:"input"`
	Camera     CameraConfig     `json:"camera"`
	Editor     EditorConfig     `json:"editor"`
	API        APIConfig        `json:"api"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"` // simulation ticks per second
}

// WorldConfig configures the physics space
type WorldConfig struct {
	Gravity    float64 `json:"gravity"` // downward acceleration per unit of gravity scale
	Iterations int     `json:"iterations"`
	Friction   float64 `json:"friction"`
}

// ClassifierConfig configures how contact forces become touch signals
type ClassifierConfig struct {
	WallVerticalTolerance float64 `json:"wallVerticalTolerance"`
}

// InputConfig configures gamepad stick handling
type InputConfig struct {
	FastfallThreshold float64 `json:"fastfallThreshold"` // stick Y below -threshold
	StickFlickSpeed   float64 `json:"stickFlickSpeed"`   // per second
}

// DefaultInputConfig returns the stock stick thresholds
func DefaultInputConfig() InputConfig {
	return InputConfig{
		FastfallThreshold: 0.5,
		StickFlickSpeed:   0.1,
	}
}

type CameraConfig struct {
	DefaultPadding float64 `json:"defaultPadding"`
	MinWidth       float64 `json:"minWidth"`
}

type EditorConfig struct {
	PickRadius float64 `json:"pickRadius"`
}

// APIConfig configures the tuning and inspection server
type APIConfig struct {
	Enabled         bool     `json:"enabled"`
	Addr            string   `json:"addr"`
	RateLimit       float64  `json:"rateLimit"` // requests per second per client
	RateBurst       int      `json:"rateBurst"`
	AllowedOrigins  []string `json:"allowedOrigins"`
	SnapshotEveryMs int      `json:"snapshotEveryMs"`
}
