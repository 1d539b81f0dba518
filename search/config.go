package search

// Config configures the alpha-beta search.
type Config struct {
	Depth         int  `json:"depth"`           // plies searched by ChooseMove callers that use the configured depth
	Trace         bool `json:"trace"`           // record the explored tree of the last search
	MaxTraceNodes int  `json:"max_trace_nodes"` // tracer stops recording past this many nodes
}

func DefaultConfig() Config {
	return Config{
		Depth:         2,
		MaxTraceNodes: 5000,
	}
}

func (c Config) IsValid() bool {
	return c.Depth >= 0 && c.MaxTraceNodes >= 0
}
