package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Store provides read-only indexed lookups over the ratings table.
type Store struct {
	client dynamodb.QueryAPIClient
	config Config
}

// New creates a new Store instance.
func New(client dynamodb.QueryAPIClient, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Config returns the effective configuration, defaults applied.
func (s *Store) Config() Config {
	return s.config
}

// ByNight returns every rating that aired on night (YYYY-MM-DD).
func (s *Store) ByNight(ctx context.Context, night string) (*QueryResult, error) {
	return s.Query(ctx, Lookup{
		IndexName: s.config.NightIndex,
		Attribute: AttrAiredOn,
		Value:     night,
	})
}

// ByYear returns every rating in a calendar year.
func (s *Store) ByYear(ctx context.Context, year int) (*QueryResult, error) {
	return s.Query(ctx, Lookup{
		IndexName: s.config.YearIndex,
		Attribute: AttrYear,
		Value:     year,
	})
}

// ByShow returns every rating for a show name.
func (s *Store) ByShow(ctx context.Context, show string) (*QueryResult, error) {
	return s.Query(ctx, Lookup{
		IndexName: s.config.ShowIndex,
		Attribute: AttrShow,
		Value:     show,
	})
}

// Query runs an equality key condition and follows pagination until the
// result set is exhausted. Any DynamoDB error is wrapped in ErrQueryFailed.
func (s *Store) Query(ctx context.Context, lookup Lookup) (*QueryResult, error) {
	queryInput, err := s.buildQuery(lookup)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Items: []Item{}}
	paginator := dynamodb.NewQueryPaginator(s.client, queryInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s on %s: %w", ErrQueryFailed, lookup.Attribute, s.indexLabel(lookup), err)
		}
		result.Items = append(result.Items, page.Items...)
		result.Count += int(page.Count)
	}

	return result, nil
}

// buildQuery converts a Lookup into a QueryInput.
func (s *Store) buildQuery(lookup Lookup) (*dynamodb.QueryInput, error) {
	if lookup.Attribute == "" || lookup.Value == nil {
		return nil, ErrInvalidLookup
	}

	keyCond := expression.Key(lookup.Attribute).Equal(expression.Value(lookup.Value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: build key condition: %w", ErrInvalidLookup, err)
	}

	queryInput := &dynamodb.QueryInput{
		TableName:                 aws.String(s.config.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if lookup.IndexName != "" {
		queryInput.IndexName = aws.String(lookup.IndexName)
	} else if s.config.ConsistentRead {
		queryInput.ConsistentRead = aws.Bool(true)
	}

	return queryInput, nil
}

func (s *Store) indexLabel(lookup Lookup) string {
	if lookup.IndexName == "" {
		return s.config.TableName
	}
	return s.config.TableName + "/" + lookup.IndexName
}
