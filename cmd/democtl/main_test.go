package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEMO_GENERATOR", "none")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return out.String(), err
}

func TestScenarios(t *testing.T) {
	out, err := execute(t, "", "scenarios")
	if err != nil {
		t.Fatalf("scenarios: %v\n%s", err, out)
	}
	for _, want := range []string{"INDEX", "webinar_invite", "demo_booking", "win_back"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlay(t *testing.T) {
	out, err := execute(t, "", "play", "--scenario=0", "--log")
	if err != nil {
		t.Fatalf("play: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Webinar Invitation Follow-up") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Activity:") || !strings.Contains(out, "Session started") {
		t.Errorf("missing activity log:\n%s", out)
	}
}

func TestPlayUnknownScenario(t *testing.T) {
	if _, err := execute(t, "", "play", "--scenario=99"); err == nil {
		t.Fatalf("expected error for unknown scenario")
	}
}

func TestChatSelectsOptionByNumber(t *testing.T) {
	out, err := execute(t, "1\n/log\n/quit\n", "chat", "--scenario=0", "--latency=1ms")
	if err != nil {
		t.Fatalf("chat: %v\n%s", err, out)
	}
	for _, want := range []string{
		"user: Yes, count me in!",
		"Fantastic! Your seat is reserved.",
		"1) Add to my calendar",
		"Option selected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestChatRejectsFreeTextWhileOptionsPending(t *testing.T) {
	out, err := execute(t, "hello there\n/quit\n", "chat", "--scenario=0", "--latency=1ms")
	if err != nil {
		t.Fatalf("chat: %v\n%s", err, out)
	}
	if !strings.Contains(out, "(not accepted right now)") {
		t.Errorf("expected rejection notice:\n%s", out)
	}
}

func TestChatFallsBackToClassifier(t *testing.T) {
	// "Not interested" ends the script, so the next line goes to the classifier.
	out, err := execute(t, "3\nhow much does it cost?\n/quit\n", "chat", "--scenario=0", "--latency=1ms")
	if err != nil {
		t.Fatalf("chat: %v\n%s", err, out)
	}
	if !strings.Contains(out, "user: how much does it cost?") {
		t.Errorf("free text not echoed:\n%s", out)
	}
}
