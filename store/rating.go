package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goccy/go-json"
)

// Attribute names in the ratings table.
const (
	AttrShow                   = "SHOW"
	AttrAiredOn                = "RATINGS_OCCURRED_ON"
	AttrYear                   = "YEAR"
	AttrTotalViewers           = "TOTAL_VIEWERS"
	AttrPercentageOfHouseholds = "PERCENTAGE_OF_HOUSEHOLDS"
	AttrTime                   = "TIME"
)

// IsRatingAttribute reports whether name is one of the attributes Rating
// decodes into a named field.
func IsRatingAttribute(name string) bool {
	switch name {
	case AttrShow, AttrAiredOn, AttrYear, AttrTotalViewers, AttrPercentageOfHouseholds, AttrTime:
		return true
	}
	return false
}

// Item is a raw DynamoDB item as returned by a query.
type Item = map[string]types.AttributeValue

// Text is an attribute rendered as a string regardless of whether it was
// stored as a DynamoDB number or string. Numbers keep the exact decimal text
// DynamoDB returned, so 2013 becomes "2013" and 0.50 stays "0.50".
type Text string

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (t *Text) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		*t = Text(v.Value)
	case *types.AttributeValueMemberS:
		*t = Text(v.Value)
	case *types.AttributeValueMemberNULL:
		*t = ""
	default:
		return fmt.Errorf("%w: unsupported attribute type %T", ErrMalformedRecord, av)
	}
	return nil
}

// Rating is one night's rating for one show.
type Rating struct {
	Show                   string `dynamodbav:"SHOW" json:"SHOW"`
	AiredOn                string `dynamodbav:"RATINGS_OCCURRED_ON" json:"RATINGS_OCCURRED_ON"`
	Year                   Text   `dynamodbav:"YEAR" json:"YEAR,omitempty"`
	TotalViewers           Text   `dynamodbav:"TOTAL_VIEWERS" json:"TOTAL_VIEWERS,omitempty"`
	PercentageOfHouseholds Text   `dynamodbav:"PERCENTAGE_OF_HOUSEHOLDS" json:"PERCENTAGE_OF_HOUSEHOLDS,omitempty"`
	Time                   string `dynamodbav:"TIME" json:"TIME,omitempty"`

	// Extra holds any other stored attributes, numbers as decimal text.
	// They are encoded alongside the named fields.
	Extra map[string]any `dynamodbav:"-" json:"-"`
}

// MarshalJSON encodes the named fields and Extra as one flat object.
func (r Rating) MarshalJSON() ([]byte, error) {
	type fields Rating
	base, err := json.Marshal(fields(r))
	if err != nil || len(r.Extra) == 0 {
		return base, err
	}
	extra, err := json.Marshal(r.Extra)
	if err != nil {
		return nil, err
	}

	// base always carries SHOW, so neither object is empty.
	out := make([]byte, 0, len(base)+len(extra))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out, nil
}

// Lookup is an exact-match query against one index.
type Lookup struct {
	// IndexName is the GSI to query. Empty queries the base table.
	IndexName string

	// Attribute is the key attribute compared for equality.
	Attribute string

	// Value is the key value. Strings are sent as S, integers as N.
	Value any
}

// QueryResult is the outcome of a Lookup.
type QueryResult struct {
	// Items are the matching items in index order.
	Items []Item

	// Count is the number of matches DynamoDB reported across all pages.
	Count int
}
