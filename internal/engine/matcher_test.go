package engine

import (
	"testing"

	"golang.org/x/net/html"

	"muffle/internal/dom"
	"muffle/internal/media"
	"muffle/internal/rules"
)

func TestSupportedNodeFirstMatchWins(t *testing.T) {
	f := newFixture(t, `<div class="subs other"><p>hi</p></div>`, []*rules.Rule{
		{Mode: rules.ModeElement, Element: &rules.ElementConfig{Tag: "div", Class: "subs"}},
		{Mode: rules.ModeElement, Element: &rules.ElementConfig{Tag: "div", Class: "other"}},
	})
	node := dom.Query(f.doc, "div.subs")
	if node == nil {
		t.Fatal("test fixture missing div.subs")
	}

	if got := f.state.SupportedNode(node); got != 0 {
		t.Fatalf("expected first rule to win, got %d", got)
	}
}

func TestSupportedNodeNoMatch(t *testing.T) {
	f := newFixture(t, `<div class="plain"></div>`, []*rules.Rule{elementRule(rules.MuteVideo)})
	node := dom.Query(f.doc, "div.plain")

	if got := f.state.SupportedNode(node); got != NoRule {
		t.Fatalf("expected NoRule, got %d", got)
	}
	if got := f.state.SupportedNode(nil); got != NoRule {
		t.Fatalf("expected NoRule for nil node, got %d", got)
	}
	if len(f.messenger.Sent()) != 0 {
		t.Fatal("no match must not report captions found")
	}
}

func TestSupportedNodeSkipsDisabledRules(t *testing.T) {
	f := newFixture(t, `<div class="subs"></div>`, []*rules.Rule{
		{Mode: rules.ModeElement}, // missing config, disabled at init
		elementRule(rules.MuteVideo),
	})
	node := dom.Query(f.doc, "div.subs")

	if got := f.state.SupportedNode(node); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
}

func TestSupportedNodeReportsCaptionsFoundOnce(t *testing.T) {
	f := newFixture(t, `<div class="subs"></div>`, []*rules.Rule{elementRule(rules.MuteVideo)})
	node := dom.Query(f.doc, "div.subs")

	f.state.SupportedNode(node)
	f.state.SupportedNode(node)
	f.state.SupportedNode(node)

	sent := f.messenger.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one captions-found message, got %d", len(sent))
	}
	if sent[0].Status != media.StatusCaptionsFound {
		t.Fatalf("unexpected status %q", sent[0].Status)
	}

	// Losing the captions resets the latch.
	f.state.ReportCaptionsLost()
	f.state.SupportedNode(node)
	sent = f.messenger.Sent()
	if len(sent) != 3 {
		t.Fatalf("expected found/lost/found, got %d messages", len(sent))
	}
	if sent[1].Status != media.StatusCaptionsLost || sent[2].Status != media.StatusCaptionsFound {
		t.Fatalf("unexpected message sequence %q, %q", sent[1].Status, sent[2].Status)
	}
}

func TestMatchElementPredicates(t *testing.T) {
	fragment := `<div class="subs" data-purpose="captions"><span></span><span></span><i class="inner"></i></div>`
	tests := []struct {
		name string
		cfg  rules.ElementConfig
		want bool
	}{
		{"tag and class", rules.ElementConfig{Tag: "div", Class: "subs"}, true},
		{"tag case insensitive", rules.ElementConfig{Tag: "DIV", Class: "subs"}, true},
		{"wrong class", rules.ElementConfig{Tag: "div", Class: "captions"}, false},
		{"data attribute", rules.ElementConfig{Tag: "div", DataAttr: "purpose"}, true},
		{"missing data attribute", rules.ElementConfig{Tag: "div", DataAttr: "role"}, false},
		{"child count", rules.ElementConfig{Tag: "div", ChildCount: intp(3)}, true},
		{"wrong child count", rules.ElementConfig{Tag: "div", ChildCount: intp(2)}, false},
		{"contains", rules.ElementConfig{Tag: "div", Contains: "i.inner"}, true},
		{"missing contains", rules.ElementConfig{Tag: "div", Contains: "i.outer"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, fragment, []*rules.Rule{
				{Mode: rules.ModeElement, Element: &tc.cfg},
			})
			node := dom.Query(f.doc, "div.subs")
			got := f.state.SupportedNode(node) == 0
			if got != tc.want {
				t.Fatalf("expected match=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestMatchElementChild(t *testing.T) {
	f := newFixture(t, `<div class="player"><span class="line">hi</span></div><span class="stray"></span>`, []*rules.Rule{
		{Mode: rules.ModeElementChild, ElementChild: &rules.ElementChildConfig{
			Tag:     "span",
			Parents: []string{"div.other", "div.player"},
		}},
	})

	inside := dom.Query(f.doc, "span.line")
	if got := f.state.SupportedNode(inside); got != 0 {
		t.Fatalf("expected span under div.player to match, got %d", got)
	}
	stray := dom.Query(f.doc, "span.stray")
	if got := f.state.SupportedNode(stray); got != NoRule {
		t.Fatalf("expected stray span to miss, got %d", got)
	}
}

func TestMatchTextNode(t *testing.T) {
	f := newFixture(t, `<p class="caption">some words</p><p class="prose">other words</p>`, []*rules.Rule{
		{Mode: rules.ModeText, Text: &rules.TextConfig{Parent: "p.caption"}},
	})

	caption := dom.Query(f.doc, "p.caption")
	textNode := caption.FirstChild
	if textNode == nil || textNode.Type != html.TextNode {
		t.Fatal("fixture missing text node")
	}
	if got := f.state.SupportedNode(textNode); got != 0 {
		t.Fatalf("expected text node under p.caption to match, got %d", got)
	}

	// The element itself is not a text node.
	if got := f.state.SupportedNode(caption); got != NoRule {
		t.Fatalf("expected element node to miss a text rule, got %d", got)
	}

	prose := dom.Query(f.doc, "p.prose").FirstChild
	if got := f.state.SupportedNode(prose); got != NoRule {
		t.Fatalf("expected text under other parent to miss, got %d", got)
	}
}

func TestMatchWatcherNode(t *testing.T) {
	f := newFixture(t, `<div class="area"><span class="w">text</span></div>`, []*rules.Rule{
		{Mode: rules.ModeWatcher, Watcher: &rules.WatcherConfig{ParentSelector: "div.area"}},
	})

	node := dom.Query(f.doc, "span.w")
	if got := f.state.SupportedNode(node); got != 0 {
		t.Fatalf("expected node inside watcher container to match, got %d", got)
	}
}

func TestDynamicRuleResolvesOnMarker(t *testing.T) {
	f := newFixture(t, `<div id="boot">player-ready</div><div class="subs">later</div>`, []*rules.Rule{
		{
			Mode:       rules.ModeDynamic,
			MuteMethod: rules.MuteVolume,
			Dynamic: &rules.DynamicConfig{
				Marker: "player-ready",
				Target: &rules.Rule{
					Mode:    rules.ModeElement,
					Element: &rules.ElementConfig{Tag: "div", Class: "subs"},
				},
			},
		},
	})

	marker := dom.Query(f.doc, "#boot")
	if got := f.state.SupportedNode(marker); got != 0 {
		t.Fatalf("expected marker node to trigger the dynamic rule, got %d", got)
	}

	resolved := f.state.Rule(0)
	if resolved.Mode != rules.ModeElement {
		t.Fatalf("expected rule replaced with its target, mode is %q", resolved.Mode)
	}
	if resolved.MuteMethod != rules.MuteVolume {
		t.Fatalf("expected target to inherit the mute method, got %q", resolved.MuteMethod)
	}

	// The replacement dispatches like any element rule from here on.
	subs := dom.Query(f.doc, "div.subs")
	if got := f.state.SupportedNode(subs); got != 0 {
		t.Fatalf("expected resolved rule to match caption container, got %d", got)
	}
}

func TestDynamicRuleWithoutTargetIsDisabled(t *testing.T) {
	f := newFixture(t, `<div id="boot">player-ready</div>`, []*rules.Rule{
		{Mode: rules.ModeDynamic, Dynamic: &rules.DynamicConfig{Marker: "player-ready"}},
	})

	if len(f.state.Sets().Enabled) != 0 {
		t.Fatal("dynamic rule without a target must be disabled at init")
	}
	marker := dom.Query(f.doc, "#boot")
	if got := f.state.SupportedNode(marker); got != NoRule {
		t.Fatalf("expected disabled dynamic rule to never match, got %d", got)
	}
}

func intp(v int) *int { return &v }
