package responder

import "strings"

// Topic names a canned reply family.
type Topic string

const (
	TopicSQL         Topic = "sql"
	TopicData        Topic = "data"
	TopicTable       Topic = "table"
	TopicPerformance Topic = "performance"
	TopicHello       Topic = "hello"
	TopicHi          Topic = "hi"
	TopicBigQuery    Topic = "bigquery"
	TopicQuery       Topic = "query"
	TopicHelp        Topic = "help"
	TopicCapability  Topic = "what can you do"
	TopicQuestion    Topic = "question"
	TopicDefault     Topic = "default"
)

// Stage tells which pass of the matcher a rule belongs to.
type Stage string

const (
	StagePriority Stage = "priority"
	StageKeyword  Stage = "keyword"
	StageQuestion Stage = "question"
	StageDefault  Stage = "default"
)

// Rule maps a set of lowercase substrings to a reply. A rule matches when any
// trigger occurs in the lowercased input.
type Rule struct {
	Topic    Topic    `json:"topic"`
	Stage    Stage    `json:"stage"`
	Triggers []string `json:"triggers"`
	Response string   `json:"response"`
}

func (r Rule) matches(normalized string) bool {
	for _, trigger := range r.Triggers {
		if strings.Contains(normalized, trigger) {
			return true
		}
	}
	return false
}

// Order is load-bearing: the first matching rule wins, priority groups shadow
// the keyword table, and within the table earlier keywords shadow later ones.
var rules = []Rule{
	{Topic: TopicSQL, Stage: StagePriority, Triggers: []string{"sql", "select", "query"}, Response: SQLResponse},
	{Topic: TopicData, Stage: StagePriority, Triggers: []string{"data", "analyze", "analysis"}, Response: DataResponse},
	{Topic: TopicTable, Stage: StagePriority, Triggers: []string{"table", "schema", "dataset"}, Response: TableResponse},
	{Topic: TopicPerformance, Stage: StagePriority, Triggers: []string{"performance", "optimize", "cost"}, Response: PerformanceResponse},

	{Topic: TopicHello, Stage: StageKeyword, Triggers: []string{"hello"}, Response: HelloResponse},
	{Topic: TopicHi, Stage: StageKeyword, Triggers: []string{"hi"}, Response: HiResponse},
	{Topic: TopicBigQuery, Stage: StageKeyword, Triggers: []string{"bigquery"}, Response: BigQueryResponse},
	{Topic: TopicSQL, Stage: StageKeyword, Triggers: []string{"sql"}, Response: SQLResponse},
	{Topic: TopicQuery, Stage: StageKeyword, Triggers: []string{"query"}, Response: QueryResponse},
	{Topic: TopicData, Stage: StageKeyword, Triggers: []string{"data"}, Response: DataResponse},
	{Topic: TopicTable, Stage: StageKeyword, Triggers: []string{"table"}, Response: TableResponse},
	{Topic: TopicHelp, Stage: StageKeyword, Triggers: []string{"help"}, Response: HelpResponse},
	{Topic: TopicCapability, Stage: StageKeyword, Triggers: []string{"what can you do"}, Response: CapabilityResponse},

	{Topic: TopicQuestion, Stage: StageQuestion, Triggers: []string{"?", "what", "how", "why", "when"}, Response: QuestionResponse},
}

// Match returns the rule selected for input, and false when the default
// response applies.
func Match(input string) (Rule, bool) {
	normalized := strings.ToLower(input)
	for _, rule := range rules {
		if rule.matches(normalized) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Generate maps user text to its canned reply. It is pure and deterministic.
func Generate(input string) string {
	if rule, ok := Match(input); ok {
		return rule.Response
	}
	return DefaultResponse
}

// Rules lists the matcher table in evaluation order, followed by the default.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules)+1)
	for _, rule := range rules {
		rule.Triggers = append([]string(nil), rule.Triggers...)
		out = append(out, rule)
	}
	return append(out, Rule{Topic: TopicDefault, Stage: StageDefault, Response: DefaultResponse})
}
