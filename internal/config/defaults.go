package config

const (
	defaultDataDir             = "~/.local/share/herdscore/data"
	defaultLogDir              = "~/.local/share/herdscore/logs"
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
	defaultMarkerSizeCm        = 10.0
	defaultConfidenceThreshold = 0.10
	defaultPoseEndpoint        = "http://127.0.0.1:5000/predict"
	defaultPoseTimeoutSeconds  = 30
	defaultOverlayEnabled      = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DataDir:   defaultDataDir,
		LogDir:    defaultLogDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		Marker: Marker{
			SizeCm: defaultMarkerSizeCm,
		},
		Keypoints: Keypoints{
			ConfidenceThreshold: defaultConfidenceThreshold,
		},
		Pose: Pose{
			Endpoint:       defaultPoseEndpoint,
			TimeoutSeconds: defaultPoseTimeoutSeconds,
		},
		Overlay: Overlay{
			Enabled: defaultOverlayEnabled,
		},
	}
}
