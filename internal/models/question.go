package models

// MCQQuestion is one multiple-choice practice question. Options carry their
// "A) ".."D) " prefixes as generated; Correct is the bare letter.
type MCQQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
	Citation    string   `json:"citation"`
}

// ShortAnswerQuestion is one short-answer practice question with a model
// answer of a few sentences.
type ShortAnswerQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Citation string `json:"citation"`
}

// MCQSet is the strict-JSON payload expected back from the generator for
// multiple-choice mode.
type MCQSet struct {
	Questions []MCQQuestion `json:"questions"`
}

// ShortAnswerSet is the strict-JSON payload expected back from the generator
// for short-answer mode.
type ShortAnswerSet struct {
	Questions []ShortAnswerQuestion `json:"questions"`
}
