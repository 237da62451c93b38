// Package handlers exposes the cart and shop engines over API Gateway
// proxy requests. The same handlers serve the Lambda entrypoint and
// the local HTTP server through an adapter.
package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

func successResponse(statusCode int, data interface{}) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]interface{}{
		"success": true,
		"data":    data,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}

func errorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   message,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}

func getSessionID(request events.APIGatewayProxyRequest) string {
	if sessionID := request.Headers["X-Session-ID"]; sessionID != "" {
		return sessionID
	}
	return request.Headers["x-session-id"]
}

func queryInt(request events.APIGatewayProxyRequest, key string, fallback int) int {
	raw := request.QueryStringParameters[key]
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryInt64(request events.APIGatewayProxyRequest, key string) int64 {
	n, err := strconv.ParseInt(request.QueryStringParameters[key], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func queryBool(request events.APIGatewayProxyRequest, key string) bool {
	switch strings.ToLower(request.QueryStringParameters[key]) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func queryList(request events.APIGatewayProxyRequest, key string) []string {
	raw := request.QueryStringParameters[key]
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
