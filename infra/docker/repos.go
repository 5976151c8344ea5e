package docker

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/artifactregistry"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/leads-dashboard/infra/provider"
)

const (
	repositoryID = "leads"
	imageName    = "leads-api"
)

func CreateLeadsRepo(ctx *pulumi.Context, prov *gcp.Provider, s provider.Settings) (*artifactregistry.Repository, error) {
	return artifactregistry.NewRepository(ctx, "leadsRepository", &artifactregistry.RepositoryArgs{
		Format:       pulumi.String("DOCKER"),
		RepositoryId: pulumi.String(repositoryID),
		Location:     pulumi.String(s.Region),
		Description:  pulumi.String("Leads dashboard API images"),
	},
		pulumi.Provider(prov),
	)
}

// ImageName is the fully qualified leads-api image reference for tag.
func ImageName(s provider.Settings, tag string) string {
	return fmt.Sprintf("%s-docker.pkg.dev/%s/%s/%s:%s", s.Region, s.Project, repositoryID, imageName, tag)
}
