// Package shape turns raw ratings items into transport-ready values.
package shape

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/jacentio/ratings/store"
)

// SearchPath is the path the continuation link points at.
const SearchPath = "/search"

const dateLayout = "2006-01-02"

// Ratings decodes items into Ratings with every numeric attribute rendered as
// a string. Attributes without a Rating field are carried in Extra. Records
// without YEAR, TOTAL_VIEWERS or PERCENTAGE_OF_HOUSEHOLDS, whether absent or
// NULL, are kept and the omission is logged.
func Ratings(items []store.Item, logger *slog.Logger) ([]store.Rating, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ratings := make([]store.Rating, 0, len(items))
	for i, item := range items {
		var r store.Rating
		if err := attributevalue.UnmarshalMap(item, &r); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", store.ErrMalformedRecord, i, err)
		}

		if extra := unnamed(item); len(extra) > 0 {
			if err := attributevalue.UnmarshalMapWithOptions(extra, &r.Extra, useNumber); err != nil {
				return nil, fmt.Errorf("%w: item %d: %w", store.ErrMalformedRecord, i, err)
			}
		}

		if r.Year == "" {
			logger.Info("no year for rating", "show", r.Show, "airedOn", r.AiredOn)
		}
		if r.TotalViewers == "" {
			logger.Debug("no total viewers for rating", "show", r.Show, "airedOn", r.AiredOn)
		}
		if r.PercentageOfHouseholds == "" {
			logger.Debug("no household percentage for rating", "show", r.Show, "airedOn", r.AiredOn)
		}

		ratings = append(ratings, r)
	}
	return ratings, nil
}

// unnamed returns the attributes of item that Rating has no field for.
func unnamed(item store.Item) store.Item {
	var extra store.Item
	for name, av := range item {
		if store.IsRatingAttribute(name) {
			continue
		}
		if extra == nil {
			extra = store.Item{}
		}
		extra[name] = av
	}
	return extra
}

func useNumber(o *attributevalue.DecoderOptions) {
	o.UseNumber = true
}

// FilterDateRange keeps ratings whose air date is within [start, end], both
// inclusive. Dates are compared as YYYY-MM-DD strings, which sort the same as
// the dates they represent.
func FilterDateRange(ratings []store.Rating, start, end string) []store.Rating {
	kept := make([]store.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.AiredOn >= start && r.AiredOn <= end {
			kept = append(kept, r)
		}
	}
	return kept
}

// NextURL returns the search link for the year after start, or nil when there
// is no further page. A search only ever covers start's calendar year, so
// callers walk a multi-year range one year at a time. There is no next page
// when start and end share a year, or when end's year is after now's.
func NextURL(start, end, now time.Time) *string {
	if end.Year() > now.Year() {
		return nil
	}
	if end.Year() == start.Year() {
		return nil
	}

	nextStart := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	link := fmt.Sprintf("%s?startDate=%s&endDate=%s", SearchPath, nextStart.Format(dateLayout), end.Format(dateLayout))
	return &link
}
