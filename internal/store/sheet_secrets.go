package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/leads-dashboard/internal/errs"
)

const secretManagerService = "secret_manager"

// Secret path
// projects/{project}/secrets/{secretID}/versions/latest

// secretAccessor is the part of *secretmanager.Client used here.
type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type sheetSecretsStore struct {
	client    secretAccessor
	projectID string
}

func NewSheetSecretsStore(client secretAccessor, projectID string) *sheetSecretsStore {
	return &sheetSecretsStore{client: client, projectID: projectID}
}

func (s *sheetSecretsStore) versionName(secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, secretID)
}

// GetSheetID reads the spreadsheet id stored in secretID.
func (s *sheetSecretsStore) GetSheetID(ctx context.Context, secretID string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.versionName(secretID),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", errs.NewNotFoundError(fmt.Sprintf("secret %s not found", secretID))
		}
		return "", &errs.ExternalServiceError{
			ErrorMessage: errs.ErrorMessage{Message: "failed to read sheet id secret"},
			Service:      secretManagerService,
			Transient:    status.Code(err) == codes.Unavailable,
			Err:          err,
		}
	}

	id := strings.TrimSpace(string(res.GetPayload().GetData()))
	if id == "" {
		return "", errs.NewValidationError(fmt.Sprintf("secret %s is empty", secretID))
	}
	return id, nil
}
