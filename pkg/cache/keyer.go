package cache

// ViewKeyOpts holds every setting besides the scene that changes a view's
// pixels.
type ViewKeyOpts struct {
	View        string `json:"view"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Margin      int    `json:"margin"`
	LegendWidth int    `json:"legend_width"`
	Font        string `json:"font,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ViewKey returns the key of one rendered view of a scene.
	ViewKey(sceneHash string, opts ViewKeyOpts) string
}

// DefaultKeyer produces "view:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ViewKey hashes the scene hash together with opts.
func (DefaultKeyer) ViewKey(sceneHash string, opts ViewKeyOpts) string {
	return hashKey("view", sceneHash, opts)
}
