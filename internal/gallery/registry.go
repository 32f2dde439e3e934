package gallery

import (
	"html/template"
	"sort"
)

// DefaultKey is the animation shown when a requested one is unknown
const DefaultKey = "multiaxis"

// Animation describes one visualization of the gallery
type Animation struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	DataSources    []string        `json:"data_sources"`
	CustomMeta     map[string]any  `json:"custom_meta"`
	CustomOverlays []template.HTML `json:"custom_overlays,omitempty"`
}

const tempoSlider template.HTML = `
<!-- Tempo Slider -->
<label for="tempo-slider">Tempo:</label>
<input id="tempo-slider" type="range" min="0.25" max="2.0" value="1" step="0.01"/>
<span id="tempo-value">1.00x</span>
`

var animations = map[string]Animation{
	"multiaxis": {
		Name:        "Multiaxis",
		DataSources: []string{"data"},
	},
	"music": {
		Name:           "Music",
		DataSources:    []string{"music"},
		CustomMeta:     map[string]any{"music": true},
		CustomOverlays: []template.HTML{tempoSlider},
	},
	"adventure": {
		Name:           "Adventure",
		DataSources:    []string{"adventure"},
		CustomOverlays: []template.HTML{AdventureNavigationOverlay},
	},
	"room": {
		Name:           "Room",
		CustomOverlays: []template.HTML{WalkingControlsToggle},
	},
	"cayley": {
		Name:        "Cayley",
		DataSources: []string{"cayley"},
	},
	"force": {
		Name:        "Force",
		DataSources: []string{"force"},
	},
}

// Lookup returns the animation registered under key
func Lookup(key string) (Animation, bool) {
	a, ok := animations[key]
	if !ok {
		return Animation{}, false
	}
	a.Key = key
	if a.DataSources == nil {
		a.DataSources = []string{}
	}
	if a.CustomMeta == nil {
		a.CustomMeta = map[string]any{}
	}
	return a, true
}

// Resolve returns the animation for key, or the default one
func Resolve(key string) Animation {
	if a, ok := Lookup(key); ok {
		return a
	}
	a, _ := Lookup(DefaultKey)
	return a
}

// Keys lists the registered animations in name order
func Keys() []string {
	keys := make([]string, 0, len(animations))
	for k := range animations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
