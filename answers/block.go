package answers

const (
	TypeQuery       = "QUERY"
	TypeQueryResult = "QUERY_RESULT"

	RelationshipAnswer = "ANSWER"
)

// Block is a node of the analysis result graph. The concrete variants are
// QueryBlock, QueryResultBlock and OtherBlock.
type Block interface {
	BlockID() string
}

type Relationship struct {
	Type string
	IDs  []string
}

// QueryBlock is the echo of a submitted query.
type QueryBlock struct {
	ID            string
	Alias         string
	Relationships []Relationship
}

// QueryResultBlock is one candidate answer.
type QueryResultBlock struct {
	ID         string
	Text       string
	Confidence float32
}

// OtherBlock stands for every block type the resolver does not look at
// (PAGE, LINE, WORD, ...).
type OtherBlock struct {
	ID   string
	Type string
}

func (b QueryBlock) BlockID() string       { return b.ID }
func (b QueryResultBlock) BlockID() string { return b.ID }
func (b OtherBlock) BlockID() string       { return b.ID }

// AnswerIDs returns the targets of all ANSWER relationships in order.
func (b QueryBlock) AnswerIDs() []string {
	var ids []string
	for _, rel := range b.Relationships {
		if rel.Type == RelationshipAnswer {
			ids = append(ids, rel.IDs...)
		}
	}
	return ids
}
