package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/ratings/store"
)

// fakeClient returns canned pages in order and records every input it receives.
type fakeClient struct {
	pages  []*dynamodb.QueryOutput
	err    error
	inputs []*dynamodb.QueryInput
}

func (f *fakeClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.inputs) - 1
	if i >= len(f.pages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.pages[i], nil
}

func ratingItem(show, night string, year string) store.Item {
	return store.Item{
		"SHOW":                &types.AttributeValueMemberS{Value: show},
		"RATINGS_OCCURRED_ON": &types.AttributeValueMemberS{Value: night},
		"YEAR":                &types.AttributeValueMemberN{Value: year},
	}
}

// keyValue returns the single expression attribute value of a key condition.
func keyValue(t *testing.T, in *dynamodb.QueryInput) types.AttributeValue {
	t.Helper()
	if len(in.ExpressionAttributeValues) != 1 {
		t.Fatalf("expected 1 expression value, got %d", len(in.ExpressionAttributeValues))
	}
	for _, v := range in.ExpressionAttributeValues {
		return v
	}
	return nil
}

// keyName returns the single expression attribute name of a key condition.
func keyName(t *testing.T, in *dynamodb.QueryInput) string {
	t.Helper()
	if len(in.ExpressionAttributeNames) != 1 {
		t.Fatalf("expected 1 expression name, got %d", len(in.ExpressionAttributeNames))
	}
	for _, v := range in.ExpressionAttributeNames {
		return v
	}
	return ""
}

func TestNew_DefaultsApplied(t *testing.T) {
	s := store.New(&fakeClient{}, store.Config{})
	cfg := s.Config()

	if cfg.TableName != "prod_toonami_ratings" {
		t.Errorf("expected default table, got %q", cfg.TableName)
	}
	if cfg.YearIndex != "YEAR_ACCESS" {
		t.Errorf("expected YEAR_ACCESS, got %q", cfg.YearIndex)
	}
	if cfg.ShowIndex != "SHOW_ACCESS" {
		t.Errorf("expected SHOW_ACCESS, got %q", cfg.ShowIndex)
	}
	if cfg.NightIndex != "" {
		t.Errorf("expected base table for nights, got %q", cfg.NightIndex)
	}
}

func TestNew_OverrideTableName(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.TableName = "dev_toonami_ratings"

	client := &fakeClient{}
	s := store.New(client, cfg)
	if _, err := s.ByShow(context.Background(), "Naruto"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := aws.ToString(client.inputs[0].TableName); got != "dev_toonami_ratings" {
		t.Errorf("expected dev_toonami_ratings, got %q", got)
	}
}

func TestByYear_UsesYearIndexAndNumber(t *testing.T) {
	client := &fakeClient{pages: []*dynamodb.QueryOutput{{
		Items: []store.Item{ratingItem("Naruto", "2013-08-17", "2013")},
		Count: 1,
	}}}
	s := store.New(client, store.DefaultConfig())

	result, err := s.ByYear(context.Background(), 2013)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 1 || len(result.Items) != 1 {
		t.Errorf("expected 1 item, got count=%d len=%d", result.Count, len(result.Items))
	}

	in := client.inputs[0]
	if got := aws.ToString(in.IndexName); got != "YEAR_ACCESS" {
		t.Errorf("expected YEAR_ACCESS, got %q", got)
	}
	if got := keyName(t, in); got != "YEAR" {
		t.Errorf("expected key YEAR, got %q", got)
	}
	n, ok := keyValue(t, in).(*types.AttributeValueMemberN)
	if !ok || n.Value != "2013" {
		t.Errorf("expected N 2013, got %#v", keyValue(t, in))
	}
}

func TestByShow_UsesShowIndexAndString(t *testing.T) {
	client := &fakeClient{}
	s := store.New(client, store.DefaultConfig())

	if _, err := s.ByShow(context.Background(), "mock_show"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := client.inputs[0]
	if got := aws.ToString(in.IndexName); got != "SHOW_ACCESS" {
		t.Errorf("expected SHOW_ACCESS, got %q", got)
	}
	if got := keyName(t, in); got != "SHOW" {
		t.Errorf("expected key SHOW, got %q", got)
	}
	sv, ok := keyValue(t, in).(*types.AttributeValueMemberS)
	if !ok || sv.Value != "mock_show" {
		t.Errorf("expected S mock_show, got %#v", keyValue(t, in))
	}
}

func TestByNight_BaseTable(t *testing.T) {
	client := &fakeClient{}
	s := store.New(client, store.DefaultConfig())

	if _, err := s.ByNight(context.Background(), "2019-11-14"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := client.inputs[0]
	if in.IndexName != nil {
		t.Errorf("expected no index, got %q", aws.ToString(in.IndexName))
	}
	if got := keyName(t, in); got != "RATINGS_OCCURRED_ON" {
		t.Errorf("expected key RATINGS_OCCURRED_ON, got %q", got)
	}
}

func TestByNight_ConfiguredIndex(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.NightIndex = "NIGHT_ACCESS"
	cfg.ConsistentRead = true

	client := &fakeClient{}
	s := store.New(client, cfg)
	if _, err := s.ByNight(context.Background(), "2019-11-14"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := client.inputs[0]
	if got := aws.ToString(in.IndexName); got != "NIGHT_ACCESS" {
		t.Errorf("expected NIGHT_ACCESS, got %q", got)
	}
	if in.ConsistentRead != nil {
		t.Error("expected no consistent read on a GSI")
	}
}

func TestQuery_ZeroMatches(t *testing.T) {
	client := &fakeClient{pages: []*dynamodb.QueryOutput{{Items: []store.Item{}, Count: 0}}}
	s := store.New(client, store.DefaultConfig())

	result, err := s.ByYear(context.Background(), 2010)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("expected count 0, got %d", result.Count)
	}
	if result.Items == nil {
		t.Error("expected empty, non-nil items")
	}
}

func TestQuery_FollowsPages(t *testing.T) {
	client := &fakeClient{pages: []*dynamodb.QueryOutput{
		{
			Items:            []store.Item{ratingItem("A", "2019-12-15", "2019"), ratingItem("B", "2019-12-15", "2019")},
			Count:            2,
			LastEvaluatedKey: map[string]types.AttributeValue{"SHOW": &types.AttributeValueMemberS{Value: "B"}},
		},
		{
			Items: []store.Item{ratingItem("C", "2019-12-22", "2019")},
			Count: 1,
		},
	}}
	s := store.New(client, store.DefaultConfig())

	result, err := s.ByYear(context.Background(), 2019)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.inputs) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(client.inputs))
	}
	if client.inputs[1].ExclusiveStartKey == nil {
		t.Error("expected second call to carry ExclusiveStartKey")
	}
	if result.Count != 3 || len(result.Items) != 3 {
		t.Errorf("expected 3 items, got count=%d len=%d", result.Count, len(result.Items))
	}
}

func TestQuery_WrapsClientError(t *testing.T) {
	cause := errors.New("ProvisionedThroughputExceededException")
	s := store.New(&fakeClient{err: cause}, store.DefaultConfig())

	_, err := s.ByShow(context.Background(), "Naruto")
	if !errors.Is(err, store.ErrQueryFailed) {
		t.Errorf("expected ErrQueryFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestQuery_InvalidLookup(t *testing.T) {
	client := &fakeClient{}
	s := store.New(client, store.DefaultConfig())

	tests := []struct {
		name   string
		lookup store.Lookup
	}{
		{"no attribute", store.Lookup{Value: "x"}},
		{"no value", store.Lookup{Attribute: "SHOW"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Query(context.Background(), tt.lookup)
			if !errors.Is(err, store.ErrInvalidLookup) {
				t.Errorf("expected ErrInvalidLookup, got %v", err)
			}
		})
	}
	if len(client.inputs) != 0 {
		t.Errorf("expected no DynamoDB calls, got %d", len(client.inputs))
	}
}
