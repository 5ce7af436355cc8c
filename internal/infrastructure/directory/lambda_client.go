package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/identity"
	"github.com/workhive/todos-backend/internal/domain/shared"
)

// lambdaInvoker is the subset of the Lambda API the client uses
type lambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// lambdaRequest is the API-gateway style event the directory function accepts
type lambdaRequest struct {
	HTTPMethod  string            `json:"httpMethod"`
	Path        string            `json:"path"`
	QueryParams map[string]string `json:"queryParams"`
	Body        json.RawMessage   `json:"body,omitempty"`
}

// lambdaResponse is the API-gateway style result the directory function returns
type lambdaResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// LambdaClient resolves managers by invoking the directory Lambda function
// directly, bypassing its HTTP front door.
type LambdaClient struct {
	invoker      lambdaInvoker
	functionName string
	logger       *zap.Logger
}

// NewLambdaClient creates a directory client backed by AWS Lambda. Static
// credentials take precedence when configured; otherwise the standard AWS
// environment chain applies.
func NewLambdaClient(ctx context.Context, functionName, region, accessKeyID, secretAccessKey string, logger *zap.Logger) (*LambdaClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &LambdaClient{
		invoker:      lambda.NewFromConfig(awsCfg),
		functionName: functionName,
		logger:       logger.Named("directory"),
	}, nil
}

// GetManagers fetches the full management chain for the given user through
// a synchronous Lambda invocation. Failure modes map to UPSTREAM_UNAVAILABLE
// the same way the HTTP transport does.
func (c *LambdaClient) GetManagers(ctx context.Context, userID string) ([]identity.DirectoryUser, error) {
	payload, err := json.Marshal(lambdaRequest{
		HTTPMethod:  http.MethodGet,
		Path:        fmt.Sprintf("/users/%s/managers", userID),
		QueryParams: map[string]string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode directory event: %w", err)
	}

	out, err := c.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: &c.functionName,
		Payload:      payload,
	})
	if err != nil {
		c.logger.Warn("Directory invocation failed", zap.String("user_id", userID), zap.Error(err))
		return nil, shared.ErrUpstreamUnavailable
	}
	if out.FunctionError != nil {
		c.logger.Warn("Directory function errored",
			zap.String("user_id", userID),
			zap.String("function_error", *out.FunctionError))
		return nil, shared.ErrUpstreamUnavailable
	}

	var resp lambdaResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		c.logger.Warn("Failed to decode directory payload", zap.String("user_id", userID), zap.Error(err))
		return nil, shared.ErrUpstreamUnavailable
	}
	if resp.StatusCode == http.StatusNotFound {
		return []identity.DirectoryUser{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Directory returned unexpected status",
			zap.String("user_id", userID),
			zap.Int("status", resp.StatusCode))
		return nil, shared.ErrUpstreamUnavailable
	}

	var managers []identity.DirectoryUser
	if err := json.Unmarshal(resp.Body, &managers); err != nil {
		return nil, shared.ErrUpstreamUnavailable
	}

	return managers, nil
}

var _ identity.DirectoryService = (*LambdaClient)(nil)
