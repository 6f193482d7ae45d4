package pool

// Config controls optional pool features. Pass nil to New to use
// DefaultConfig.
type Config struct {
	// TrackStats enables usage accounting (used/peak/need/real bytes,
	// allocation and failure counts). Disabled by default; the counters
	// cost a few adds per operation but are rarely needed outside
	// diagnostics.
	TrackStats bool
}

// DefaultConfig is the configuration used when New receives a nil Config.
var DefaultConfig = Config{
	TrackStats: false,
}
