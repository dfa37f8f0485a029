package agent

import (
	"strings"
	"testing"
)

func TestParseDirective(t *testing.T) {
	name, params := ParseDirective("ProvideHealthAdvice: severity=high, duration=3天")
	if name != "ProvideHealthAdvice" {
		t.Errorf("expected action name ProvideHealthAdvice, got %q", name)
	}
	if params["severity"] != "high" {
		t.Errorf("expected severity=high, got %q", params["severity"])
	}
	if params["duration"] != "3天" {
		t.Errorf("expected duration=3天, got %q", params["duration"])
	}
}

func TestParseDirectiveNoParams(t *testing.T) {
	name, params := ParseDirective("SuggestFollowUpAction")
	if name != "SuggestFollowUpAction" {
		t.Errorf("expected bare action name, got %q", name)
	}
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}
}

func TestParseDirectiveIgnoresSegmentsWithoutEquals(t *testing.T) {
	name, params := ParseDirective("Action: key1=value1, garbage, key2=value2")
	if name != "Action" {
		t.Errorf("expected Action, got %q", name)
	}
	if len(params) != 2 {
		t.Errorf("expected 2 params, got %v", params)
	}
}

func TestParseDirectiveTrimsWhitespace(t *testing.T) {
	name, params := ParseDirective("  Action  :  key = value ")
	if name != "Action" {
		t.Errorf("expected trimmed name, got %q", name)
	}
	if params["key"] != "value" {
		t.Errorf("expected trimmed value, got %q", params["key"])
	}
}

func TestParseDirectiveValueContainingEquals(t *testing.T) {
	_, params := ParseDirective("Action: note=a=b")
	if params["note"] != "a=b" {
		t.Errorf("expected split on first equals only, got %q", params["note"])
	}
}

func TestDispatchInvokesRegisteredAction(t *testing.T) {
	d := NewActionDispatcher()
	var received map[string]string
	if err := d.Register("Echo", func(params map[string]string) string {
		received = params
		return "echoed"
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result := d.Dispatch("Echo: a=1")
	if result != "echoed" {
		t.Errorf("expected handler result, got %q", result)
	}
	if received["a"] != "1" {
		t.Errorf("expected parsed params passed to handler, got %v", received)
	}
}

func TestDispatchUnknownActionSoftFailure(t *testing.T) {
	d := NewActionDispatcher()
	result := d.Dispatch("DoesNotExist: a=1")
	if !strings.HasPrefix(result, "Error:") {
		t.Errorf("expected error-labeled string, got %q", result)
	}
	if !strings.Contains(result, "DoesNotExist") {
		t.Errorf("expected action name in error, got %q", result)
	}
}

func TestDispatchFirstMatchInRegistrationOrder(t *testing.T) {
	d := NewActionDispatcher()
	d.Register("A", func(map[string]string) string { return "first" })
	d.Register("B", func(map[string]string) string { return "second" })

	if got := d.Dispatch("B"); got != "second" {
		t.Errorf("expected exact-name match, got %q", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	d := NewActionDispatcher()
	if err := d.Register("", func(map[string]string) string { return "" }); err == nil {
		t.Error("expected error for empty action name")
	}
	if err := d.Register("X", nil); err == nil {
		t.Error("expected error for nil handler")
	}
	if err := d.Register("X", func(map[string]string) string { return "" }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Register("X", func(map[string]string) string { return "" }); err == nil {
		t.Error("expected error for duplicate registration")
	}
}
