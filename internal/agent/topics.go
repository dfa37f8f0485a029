// Package agent implements the consultation agent: topic classification,
// prompt composition, action dispatch and per-user turn handling.
package agent

import (
	"log/slog"
	"strings"
)

// Consultation topic labels.
const (
	TopicHeadache       = "headache problem"
	TopicDigestive      = "digestive problem"
	TopicColdFever      = "cold and fever"
	TopicSkin           = "skin problem"
	TopicCardiovascular = "cardiovascular problem"
	TopicMedication     = "medication consultation"
	TopicReport         = "report interpretation"
	TopicGeneral        = "general consultation"
)

type topicRule struct {
	keywords []string
	topic    string
}

// topicTable is scanned in order; the first rule with a matching keyword
// wins. Keywords are lowercase, matched as case-insensitive substrings.
var topicTable = []topicRule{
	{[]string{"头痛", "头疼", "偏头痛", "headache", "migraine"}, TopicHeadache},
	{[]string{"肚子", "胃", "腹泻", "恶心", "消化", "stomach", "diarrhea", "nausea", "digest"}, TopicDigestive},
	{[]string{"感冒", "发烧", "发热", "咳嗽", "cold", "fever", "cough", "flu"}, TopicColdFever},
	{[]string{"皮肤", "瘙痒", "皮疹", "湿疹", "skin", "rash", "itch"}, TopicSkin},
	{[]string{"心脏", "胸闷", "心悸", "血压", "heart", "chest", "blood pressure"}, TopicCardiovascular},
	{[]string{"药", "用药", "服药", "medication", "medicine", "drug", "dosage"}, TopicMedication},
	{[]string{"报告", "化验", "检查", "指标", "report", "test result", "lab"}, TopicReport},
}

// ClassifyTopic maps free-text instruction to a consultation topic using a
// first-match keyword scan. Unmatched instructions fall back to the general
// consultation topic.
func ClassifyTopic(instruction string) string {
	lowered := strings.ToLower(instruction)
	for _, rule := range topicTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				slog.Debug("agent.ClassifyTopic: keyword matched", "keyword", keyword, "topic", rule.topic)
				return rule.topic
			}
		}
	}
	slog.Debug("agent.ClassifyTopic: no keyword matched, using default", "topic", TopicGeneral)
	return TopicGeneral
}
