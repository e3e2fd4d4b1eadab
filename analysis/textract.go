package analysis

import (
	"context"

	tq "textractqueries"
	"textractqueries/answers"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// AnalyzeDocumentAPI is the part of the Textract client used here.
type AnalyzeDocumentAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// Analyzer runs named queries against a stored document and returns the
// resulting block graph.
type Analyzer interface {
	Analyze(ctx context.Context, bucket, document string, queries []tq.Query) ([]answers.Block, error)
}

type Client struct {
	api AnalyzeDocumentAPI
}

func New(api AnalyzeDocumentAPI) *Client {
	return &Client{api: api}
}

func NewFromConfig(cfg aws.Config) *Client {
	return New(textract.NewFromConfig(cfg))
}

func (c *Client) Analyze(ctx context.Context, bucket, document string, queries []tq.Query) ([]answers.Block, error) {
	log := tq.Logger
	input := &textract.AnalyzeDocumentInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(document),
			},
		},
		FeatureTypes:  []types.FeatureType{types.FeatureTypeQueries},
		QueriesConfig: &types.QueriesConfig{Queries: toTextractQueries(queries)},
	}
	log.Debug("AnalyzeDocument start", "bucket", bucket, "document", document, "queries", len(queries))
	out, err := c.api.AnalyzeDocument(ctx, input)
	if err != nil {
		log.Error("AnalyzeDocument failed", "bucket", bucket, "document", document, "error", err)
		return nil, err
	}
	log.Debug("AnalyzeDocument done", "blocks", len(out.Blocks))
	return Decode(out.Blocks), nil
}

func toTextractQueries(queries []tq.Query) []types.Query {
	out := make([]types.Query, 0, len(queries))
	for _, q := range queries {
		tqry := types.Query{Text: aws.String(q.Text)}
		if q.Alias != "" {
			tqry.Alias = aws.String(q.Alias)
		}
		if len(q.Pages) > 0 {
			tqry.Pages = q.Pages
		}
		out = append(out, tqry)
	}
	return out
}

// Decode turns Textract blocks into typed answers blocks. Missing optional
// fields become zero values.
func Decode(blocks []types.Block) []answers.Block {
	out := make([]answers.Block, 0, len(blocks))
	for _, b := range blocks {
		id := aws.ToString(b.Id)
		switch b.BlockType {
		case types.BlockTypeQuery:
			q := answers.QueryBlock{ID: id}
			if b.Query != nil {
				q.Alias = aws.ToString(b.Query.Alias)
			}
			for _, rel := range b.Relationships {
				q.Relationships = append(q.Relationships, answers.Relationship{
					Type: string(rel.Type),
					IDs:  rel.Ids,
				})
			}
			out = append(out, q)
		case types.BlockTypeQueryResult:
			out = append(out, answers.QueryResultBlock{
				ID:         id,
				Text:       aws.ToString(b.Text),
				Confidence: aws.ToFloat32(b.Confidence),
			})
		default:
			out = append(out, answers.OtherBlock{ID: id, Type: string(b.BlockType)})
		}
	}
	return out
}
