// Package api provides the AWS Lambda handlers behind the ratings API.
//
// Each endpoint validates its parameters, issues one indexed lookup through a
// [Querier], shapes the matching ratings and returns an API Gateway v2 proxy
// response built by [Respond]:
//
//	GET /nights/{night}                    [Handler.Night]
//	GET /years/{year}                      [Handler.Year]
//	GET /shows/{show}                      [Handler.Show]
//	GET /search?startDate=...&endDate=...  [Handler.Search]
//
// # Responses
//
//   - 200 - a JSON array of ratings, or {"ratings": [...], "next": ...} for search
//   - 400 - a required parameter is missing
//   - 404 - a parameter is malformed, or nothing matched
//
// Error bodies are always {"message": "..."}. Numeric attributes are sent as
// strings.
//
// # Store failures
//
// A failed DynamoDB query is not turned into a response. The handler returns
// the error, the invocation fails, and API Gateway answers with its own 5xx.
package api
