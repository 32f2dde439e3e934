package gallery

import (
	"bytes"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	a, ok := Lookup("music")
	if !ok {
		t.Fatal("music not registered")
	}
	if a.Key != "music" || a.Name != "Music" {
		t.Errorf("animation = %+v", a)
	}
	if a.CustomMeta["music"] != true {
		t.Errorf("custom meta = %v", a.CustomMeta)
	}

	if _, ok := Lookup("nope"); ok {
		t.Error("unexpected animation for unknown key")
	}
}

func TestResolveFallsBack(t *testing.T) {
	if got := Resolve("nope").Key; got != DefaultKey {
		t.Errorf("Resolve(nope) = %q, want %q", got, DefaultKey)
	}
	if got := Resolve("force").Key; got != "force" {
		t.Errorf("Resolve(force) = %q", got)
	}
	room := Resolve("room")
	if room.DataSources == nil || len(room.DataSources) != 0 {
		t.Errorf("room data sources = %#v, want empty", room.DataSources)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	want := []string{"adventure", "cayley", "force", "multiaxis", "music", "room"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, Page{
		SmallHeader:    true,
		Fullscreen:     true,
		CSS:            SmallHeaderCSS,
		ThreeJSVersion: "0.169.0",
		Drawing:        Resolve("adventure"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<meta name="threejs_drawing_name" content="adventure">`,
		`<meta name="data_selected" content="adventure">`,
		`three@0.169.0`,
		`<header>`,
		`id="overlayTextContent"`,
		`flex-direction: column`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderEmbeddedPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, Page{CSS: EmbeddedCSS, ThreeJSVersion: "0.169.0", Drawing: Resolve("music")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<header>") {
		t.Error("embedded page should not have a header")
	}
	if !strings.Contains(out, `id="tempo-slider"`) {
		t.Error("music overlay missing")
	}
	if !strings.Contains(out, `<meta name="music" content="true">`) {
		t.Error("custom meta missing")
	}
}
