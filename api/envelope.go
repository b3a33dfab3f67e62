package api

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
)

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// Respond builds an API Gateway v2 proxy response. The body is always JSON
// encoded, including error payloads and empty collections. Status and headers
// are passed through unchecked; a nil header map is sent as {}.
func Respond(statusCode int, headers map[string]string, body any) (events.APIGatewayV2HTTPResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, fmt.Errorf("encode response body: %w", err)
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode:      statusCode,
		Headers:         headers,
		Body:            string(encoded),
		IsBase64Encoded: false,
	}, nil
}
