package router

import (
	"strings"
	"testing"
)

func buildTree(t *testing.T, patterns ...string) *node {
	t.Helper()
	root := &node{}
	for _, raw := range patterns {
		mustInsert(t, root, raw)
	}
	return root
}

func TestMatchLiteralExact(t *testing.T) {
	root := buildTree(t, "/", "/foo", "/foo/bar")

	tests := []struct {
		path      string
		wantMatch bool
		wantRoute string
	}{
		{"/", true, "/"},
		{"/foo", true, "/foo"},
		{"/foo/bar", true, "/foo/bar"},
		{"/FOO", false, ""},
		{"/foo/", false, ""},
		{"/foo/bar/baz", false, ""},
		{"/fo", false, ""},
	}

	for _, tt := range tests {
		rt, _, ok := root.match(tt.path, nil, nil)
		if ok != tt.wantMatch {
			t.Errorf("match(%q) = %v, want %v", tt.path, ok, tt.wantMatch)
			continue
		}
		if ok && rt.pattern.raw != tt.wantRoute {
			t.Errorf("match(%q) hit %q, want %q", tt.path, rt.pattern.raw, tt.wantRoute)
		}
	}
}

func TestMatchTypedValues(t *testing.T) {
	root := buildTree(t, "/foo/%s/%i")

	rt, vals, ok := root.match("/foo/johndoe/59", nil, nil)
	if !ok {
		t.Fatal("no match")
	}
	if rt.pattern.raw != "/foo/%s/%i" {
		t.Errorf("matched %q", rt.pattern.raw)
	}
	if len(vals) != 2 {
		t.Fatalf("len(vals) = %d, want 2", len(vals))
	}
	if vals[0].Str() != "johndoe" {
		t.Errorf("vals[0] = %q, want johndoe", vals[0].Str())
	}
	if vals[1].Int() != 59 {
		t.Errorf("vals[1] = %d, want 59", vals[1].Int())
	}
}

func TestMatchPlaceholderRejection(t *testing.T) {
	root := buildTree(t, "/post/%i")

	tests := []struct {
		path      string
		wantMatch bool
	}{
		{"/post/2", true},
		{"/post/-2", true},
		{"/post/two", false},
		{"/post/2x", false},
		{"/post/", false},
		{"/post/9223372036854775808", false}, // predicate passes, conversion overflows
	}

	for _, tt := range tests {
		if _, _, ok := root.match(tt.path, nil, nil); ok != tt.wantMatch {
			t.Errorf("match(%q) = %v, want %v", tt.path, ok, tt.wantMatch)
		}
	}
}

func TestMatchLiteralBeforePlaceholder(t *testing.T) {
	root := buildTree(t, "/api/%i", "/api/test")

	rt, _, ok := root.match("/api/test", nil, nil)
	if !ok || rt.pattern.raw != "/api/test" {
		t.Errorf("match(/api/test) hit %v, want the literal route", rt)
	}

	rt, vals, ok := root.match("/api/42", nil, nil)
	if !ok || rt.pattern.raw != "/api/%i" {
		t.Fatalf("match(/api/42) hit %v, want the placeholder route", rt)
	}
	if vals[0].Int() != 42 {
		t.Errorf("captured %d, want 42", vals[0].Int())
	}
}

func TestMatchBacktracksToPlaceholder(t *testing.T) {
	// The literal subtree under /a/b/c/ consumes the path greedily; when it
	// dead-ends, the search must resume at the placeholder declared on /a/.
	root := buildTree(t, "/a/b/c/x", "/a/b/c/y", "/a/%s/c/z")

	rt, vals, ok := root.match("/a/b/c/z", nil, nil)
	if !ok {
		t.Fatal("no match: search did not backtrack out of the literal subtree")
	}
	if rt.pattern.raw != "/a/%s/c/z" {
		t.Errorf("matched %q, want /a/%%s/c/z", rt.pattern.raw)
	}
	if len(vals) != 1 || vals[0].Str() != "b" {
		t.Errorf("vals = %v, want [b]", vals)
	}

	// The literal leaves stay reachable.
	for _, path := range []string{"/a/b/c/x", "/a/b/c/y"} {
		if rt, _, ok := root.match(path, nil, nil); !ok || rt.pattern.raw != path {
			t.Errorf("match(%q) = %v, %v; want the literal leaf", path, rt, ok)
		}
	}
}

func TestMatchDeclarationOrderIndependence(t *testing.T) {
	patterns := []string{"/a/b/c/x", "/a/%s/c/z", "/api/test", "/api/%i", "/v2/admin", "/v2/admin2"}
	reversed := make([]string, len(patterns))
	for i, p := range patterns {
		reversed[len(patterns)-1-i] = p
	}

	forward := buildTree(t, patterns...)
	backward := buildTree(t, reversed...)

	paths := []string{
		"/a/b/c/x", "/a/q/c/z", "/a/b/c/z",
		"/api/test", "/api/7", "/api/x",
		"/v2/admin", "/v2/admin2", "/v2/admin3",
	}
	for _, path := range paths {
		rt1, _, ok1 := forward.match(path, nil, nil)
		rt2, _, ok2 := backward.match(path, nil, nil)
		if ok1 != ok2 {
			t.Errorf("match(%q): forward %v, backward %v", path, ok1, ok2)
			continue
		}
		if ok1 && rt1.pattern.raw != rt2.pattern.raw {
			t.Errorf("match(%q): forward hit %q, backward hit %q", path, rt1.pattern.raw, rt2.pattern.raw)
		}
	}
}

func TestMatchCharPlaceholder(t *testing.T) {
	root := buildTree(t, "/grade/%c")

	rt, vals, ok := root.match("/grade/A", nil, nil)
	if !ok || rt.pattern.raw != "/grade/%c" {
		t.Fatalf("match(/grade/A) = %v, %v", rt, ok)
	}
	if vals[0].Char() != 'A' {
		t.Errorf("captured %q, want A", vals[0].Char())
	}

	// %c consumes exactly one character; two characters leave a remainder.
	if _, _, ok := root.match("/grade/AB", nil, nil); ok {
		t.Error("match(/grade/AB) succeeded, want failure")
	}
}

func TestMatchInlinePlaceholder(t *testing.T) {
	// Placeholders are tokens inside a text run, not whole segments: a
	// pattern may mix literal text and a %c in one segment.
	root := buildTree(t, "/rev/%c-build")

	rt, vals, ok := root.match("/rev/7-build", nil, nil)
	if !ok || rt.pattern.raw != "/rev/%c-build" {
		t.Fatalf("match(/rev/7-build) = %v, %v", rt, ok)
	}
	if vals[0].Char() != '7' {
		t.Errorf("captured %q, want 7", vals[0].Char())
	}
}

func TestMatchTraceSink(t *testing.T) {
	root := buildTree(t, "/api/test", "/api/%i")

	var lines []string
	trace := func(line string) { lines = append(lines, line) }

	if _, _, ok := root.match("/api/42", nil, trace); !ok {
		t.Fatal("no match")
	}
	if len(lines) == 0 {
		t.Fatal("trace sink received no lines")
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "captured") {
		t.Errorf("trace output missing capture line:\n%s", joined)
	}
}
