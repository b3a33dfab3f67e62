// Package store provides read-only DynamoDB access to the Toonami ratings table.
//
// Every lookup is a single exact-match query against either the base table or
// one of its global secondary indexes:
//
//   - [Store.ByNight] - RATINGS_OCCURRED_ON on the base table (or Config.NightIndex)
//   - [Store.ByYear] - YEAR on the YEAR_ACCESS index
//   - [Store.ByShow] - SHOW on the SHOW_ACCESS index
//
// Results come back as raw items plus the match count DynamoDB reported. Decoding
// into [Rating] values is left to the caller so that numeric attributes can be
// rendered as strings (see [Text]).
//
// # Configuration
//
// Use [DefaultConfig] for the production table and override TableName for
// other environments:
//
//	cfg := store.DefaultConfig()
//	cfg.TableName = "dev_toonami_ratings"
//	s := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
// # Errors
//
//   - [ErrQueryFailed] - DynamoDB returned an error; the cause is wrapped
//   - [ErrInvalidLookup] - the lookup had no attribute or value
//   - [ErrMalformedRecord] - an item could not be decoded
package store
