package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const sheetSecretID = "leadsSheetId"

// SheetSecret holds the spreadsheet id the api resolves at startup.
type SheetSecret struct {
	// ID is the secret id to pass as SHEETIDSECRET.
	ID pulumi.StringOutput
	// Ready completes once the api account can read the latest version.
	Ready []pulumi.Resource
}

// SetupSheetSecret stores config sheet:id and lets apiSA read that one
// secret. No project-wide Secret Manager role is granted.
func SetupSheetSecret(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account) (*SheetSecret, error) {
	sheetID := config.New(ctx, "sheet").RequireSecret("id")

	api, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service: pulumi.String("secretmanager.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	s, err := secretmanager.NewSecret(ctx, "sheetIdSecret", &secretmanager.SecretArgs{
		SecretId: pulumi.String(sheetSecretID),
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{api}),
	)
	if err != nil {
		return nil, err
	}

	version, err := secretmanager.NewSecretVersion(ctx, "sheetIdSecretVersion", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: sheetID,
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	access, err := secretmanager.NewSecretIamMember(ctx, "sheetIdSecretAccessor", &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return &SheetSecret{
		ID:    s.SecretId,
		Ready: []pulumi.Resource{version, access},
	}, nil
}
