// Package assistant answers canned, keyword-matched questions about work
// order procedures. It is a pure function of (topic, input); there is no
// model behind it and no network call.
package assistant

import (
	"fmt"
	"strings"
)

type Topic string

const (
	TopicProcedures  Topic = "procedures"
	TopicExperiences Topic = "experiences"
	TopicPerformance Topic = "performance"
)

var Topics = []Topic{TopicProcedures, TopicExperiences, TopicPerformance}

func (t Topic) Label() string {
	switch t {
	case TopicProcedures:
		return "Standard Operating Procedures Summary"
	case TopicExperiences:
		return "Operating Experiences Summary"
	case TopicPerformance:
		return "Human Performance Tools"
	default:
		return string(t)
	}
}

// Context carries the work-order attributes woven into the canned answers.
type Context struct {
	WorkOrderType string
	ServiceLevel  string
}

// Greeting returns the opening assistant message for a topic.
func Greeting(topic Topic, ctx Context) string {
	switch topic {
	case TopicProcedures:
		return fmt.Sprintf("Welcome! I'm here to help you with Standard Operating Procedures for %s work orders. What would you like to know?", ctx.WorkOrderType)
	case TopicExperiences:
		return fmt.Sprintf("Welcome! I'm here to help you with Operating Experiences for %s service level work orders. What would you like to know?", ctx.ServiceLevel)
	case TopicPerformance:
		return "Welcome! I'm here to help you with Human Performance Tools related to this work order. What would you like to know?"
	default:
		return "Welcome! What would you like to know?"
	}
}

// Respond matches the input against a small set of keyword groups and
// returns a topic-flavored canned answer, or a fallback naming the
// supported subjects.
func Respond(topic Topic, input string, ctx Context) string {
	normalized := strings.ToLower(input)

	switch {
	case strings.Contains(normalized, "safety") || strings.Contains(normalized, "precaution"):
		switch topic {
		case TopicProcedures:
			return fmt.Sprintf("For %s work orders, safety protocols include wearing appropriate PPE, following lockout/tagout procedures, and ensuring proper ventilation in confined spaces.", ctx.WorkOrderType)
		case TopicExperiences:
			return fmt.Sprintf("Based on previous %s service level experiences, we recommend double-checking all safety equipment before starting work and ensuring a safety supervisor is present during critical operations.", ctx.ServiceLevel)
		case TopicPerformance:
			return "Human performance tools related to safety include pre-job briefings, three-way communication for critical steps, and the STAR method (Stop, Think, Act, Review) when encountering unexpected conditions."
		}
	case strings.Contains(normalized, "time") || strings.Contains(normalized, "schedule") || strings.Contains(normalized, "duration"):
		switch topic {
		case TopicProcedures:
			return fmt.Sprintf("Standard procedures for %s typically require 4-8 hours to complete, depending on complexity and system accessibility.", ctx.WorkOrderType)
		case TopicExperiences:
			return fmt.Sprintf("For %s service level, work orders are typically scheduled with a 24-48 hour completion window, with priority given to safety-critical systems.", ctx.ServiceLevel)
		case TopicPerformance:
			return "To optimize time management, we recommend using time-boxing techniques, establishing clear milestones, and using the 'take a minute' tool before rushing critical decisions."
		}
	case strings.Contains(normalized, "tools") || strings.Contains(normalized, "equipment"):
		switch topic {
		case TopicProcedures:
			return fmt.Sprintf("%s work orders require calibrated measurement tools, inspection equipment, and specialized tooling that must be requested 24 hours in advance.", ctx.WorkOrderType)
		case TopicExperiences:
			return fmt.Sprintf("For %s service level work, we maintain dedicated toolkits in the service center. Contact logistics at ext. 4532 to reserve the required equipment.", ctx.ServiceLevel)
		case TopicPerformance:
			return "Tool management is critical for human performance. We recommend using tool control logs, pre-staged tool layouts, and verification processes to ensure all tools are accounted for."
		}
	}
	return fmt.Sprintf("I don't have specific information about that for %s. Could you please ask something about safety protocols, scheduling, or required tools?", topic.Label())
}
