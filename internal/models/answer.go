package models

// Confidence is the coarse High/Medium/Low summary of average retrieval
// relevance for a query.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Message represents a single turn in a chat conversation.
type Message struct {
	// Role identifies the sender: "user" or "assistant"
	Role string `json:"role"`

	// Text contains the turn's content
	Text string `json:"text"`
}

// Citation points from an answer back to the chunk that justifies it.
// ChunkIndex is 1-based for display; Score is formatted to three decimals.
type Citation struct {
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunkIndex"`
	Score      string `json:"score"`
}

// Evidence is a short excerpt of a cited chunk's text, shown so the user can
// verify grounding. Text is capped at 200 characters plus an ellipsis marker.
type Evidence struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Chunk  int    `json:"chunk"` // 1-based
}

// AnswerPackage is the unit returned to the caller for one question.
// Citations and evidence always derive from the same retrieval result that
// grounded the answer; when retrieval yields nothing usable they are empty
// and the answer is the fixed not-found message.
type AnswerPackage struct {
	Answer     string     `json:"answer"`
	Confidence Confidence `json:"confidence"`
	Citations  []Citation `json:"citations"`
	Evidence   []Evidence `json:"evidence"`
}
