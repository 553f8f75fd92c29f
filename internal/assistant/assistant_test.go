package assistant

import (
	"strings"
	"testing"
)

var testCtx = Context{WorkOrderType: "Repair", ServiceLevel: "Gold"}

func TestRespondMatchesSafetyKeywords(t *testing.T) {
	for _, input := range []string{"What about safety?", "Any PRECAUTION needed?"} {
		got := Respond(TopicProcedures, input, testCtx)
		if !strings.Contains(got, "safety protocols") {
			t.Fatalf("Respond(%q) = %q, expected procedures safety answer", input, got)
		}
		if !strings.Contains(got, "Repair") {
			t.Fatalf("expected work order type woven in, got %q", got)
		}
	}
}

func TestRespondMatchesScheduleKeywordsPerTopic(t *testing.T) {
	cases := []struct {
		topic Topic
		want  string
	}{
		{TopicProcedures, "4-8 hours"},
		{TopicExperiences, "24-48 hour"},
		{TopicPerformance, "time-boxing"},
	}
	for _, tc := range cases {
		got := Respond(tc.topic, "how long is the schedule?", testCtx)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("topic %s: got %q, want substring %q", tc.topic, got, tc.want)
		}
	}
}

func TestRespondMatchesToolsKeywords(t *testing.T) {
	got := Respond(TopicExperiences, "which equipment do I need?", testCtx)
	if !strings.Contains(got, "ext. 4532") {
		t.Fatalf("expected experiences tooling answer, got %q", got)
	}
}

func TestRespondFallbackNamesTopic(t *testing.T) {
	got := Respond(TopicPerformance, "tell me a joke", testCtx)
	if !strings.Contains(got, "Human Performance Tools") {
		t.Fatalf("fallback should name the topic, got %q", got)
	}
	if !strings.Contains(got, "safety protocols, scheduling, or required tools") {
		t.Fatalf("fallback should list supported subjects, got %q", got)
	}
}

func TestGreetingPerTopic(t *testing.T) {
	if got := Greeting(TopicProcedures, testCtx); !strings.Contains(got, "Repair work orders") {
		t.Fatalf("unexpected procedures greeting %q", got)
	}
	if got := Greeting(TopicExperiences, testCtx); !strings.Contains(got, "Gold service level") {
		t.Fatalf("unexpected experiences greeting %q", got)
	}
	if got := Greeting(TopicPerformance, testCtx); !strings.Contains(got, "Human Performance Tools") {
		t.Fatalf("unexpected performance greeting %q", got)
	}
}
